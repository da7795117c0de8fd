package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the interactive recruiter dashboard",
	Run: func(_ *cobra.Command, _ []string) {
		runDashboard()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard() {
	ctx := context.Background()
	env := setup()

	env.logger.Info("starting the recruit-dashboard",
		zap.String("version", version),
		zap.String("api_url", env.client.APIURL),
	)

	prompt := dashboard.PromptUI{Out: env.console}
	session := dashboard.NewSession(env.controller(), prompt, env.console, env.logger.Named("dashboard"), env.config.StrictFileTypes)
	if err := session.Run(ctx); err != nil {
		env.logger.Fatal("exiting", zap.Error(err))
	}
}

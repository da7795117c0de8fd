package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/dashboard"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings --job ID",
	Short: "Show the ranked candidates for a job",
	Run: func(cmd *cobra.Command, _ []string) {
		jobID, _ := cmd.Flags().GetString("job")
		rankings(jobID)
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)

	rankingsCmd.Flags().String("job", "", "id of the job to rank candidates for")
	rankingsCmd.Flags().Bool("blind", false, "mask candidate names and emails")
	rankingsCmd.MarkFlagRequired("job")

	viper.BindPFlag("blind-mode", rankingsCmd.Flags().Lookup("blind"))
}

func rankings(jobID string) {
	ctx := context.Background()
	env := setup()
	wf := env.controller()

	selectJob(ctx, env, wf, jobID)

	if err := env.console.Do(func(w io.Writer) error {
		return dashboard.RenderJob(w, wf.Snapshot())
	}); err != nil {
		env.logger.Fatal("rendering rankings", zap.Error(err))
	}
}

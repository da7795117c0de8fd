package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/dashboard"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs",
	Run: func(_ *cobra.Command, _ []string) {
		listJobs()
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		createJob(title, description)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsCreateCmd)

	jobsCreateCmd.Flags().StringP("title", "t", "", "job title")
	jobsCreateCmd.Flags().StringP("description", "D", "", "job description")
}

func listJobs() {
	ctx := context.Background()
	env := setup()
	wf := env.controller()

	if err := wf.LoadJobs(ctx); err != nil {
		env.logger.Fatal("loading jobs", zap.Error(err))
	}

	if err := env.console.Do(func(w io.Writer) error {
		return dashboard.RenderJobs(w, wf.Snapshot())
	}); err != nil {
		env.logger.Fatal("rendering jobs", zap.Error(err))
	}
}

func createJob(title, description string) {
	ctx := context.Background()
	env := setup()

	job, err := env.controller().CreateJob(ctx, title, description)
	if err != nil {
		env.logger.Fatal("creating a job", zap.Error(err))
	}

	fmt.Println(job.ID)
}

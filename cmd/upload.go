package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/cvfilter"
	"github.com/spigell/recruit-dashboard/internal/workflow"
)

var uploadCmd = &cobra.Command{
	Use:   "upload --job ID FILE...",
	Short: "Upload a batch of CVs for a job",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobID, _ := cmd.Flags().GetString("job")
		upload(jobID, args)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().String("job", "", "id of the job the CVs are for")
	uploadCmd.Flags().Bool("strict-file-types", false, "drop files that are not PDF or DOCX instead of warning")
	uploadCmd.MarkFlagRequired("job")

	viper.BindPFlag("strict-file-types", uploadCmd.Flags().Lookup("strict-file-types"))
}

func upload(jobID string, paths []string) {
	ctx := context.Background()
	env := setup()
	wf := env.controller()

	selectJob(ctx, env, wf, jobID)

	checked, err := cvfilter.Run(ctx, env.logger.Named("cvfilter"), cvfilter.Default(env.config.StrictFileTypes, env.logger), paths)
	if err != nil {
		env.logger.Fatal("checking cv files", zap.Error(err))
	}

	if err := wf.SelectFiles(checked.Files()); err != nil {
		env.logger.Fatal("selecting cv files", zap.Error(err))
	}

	result, err := wf.ConfirmUpload(ctx)
	if err != nil {
		env.logger.Fatal("uploading cvs", zap.Error(err))
	}

	env.logger.Info("cvs uploaded",
		zap.String("job_id", result.JobID),
		zap.String("submission_id", result.SubmissionID),
		zap.Int("count", result.Files),
	)
}

// selectJob loads the job list and selects jobID. A failed ranking fetch
// does not stop the command.
func selectJob(ctx context.Context, env *services, wf *workflow.Controller, jobID string) {
	if err := wf.LoadJobs(ctx); err != nil {
		env.logger.Fatal("loading jobs", zap.Error(err))
	}

	err := wf.SelectJob(ctx, jobID)
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		env.logger.Fatal("selecting a job", zap.String("job_id", jobID), zap.Error(err))
	case err != nil:
		env.logger.Warn("fetching rankings", zap.String("job_id", jobID), zap.Error(err))
	}
}

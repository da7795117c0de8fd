package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/recruit-dashboard/internal/dashboard"
	"github.com/spigell/recruit-dashboard/internal/recruit"
)

// reportConcurrency caps parallel ranking fetches against the service.
const reportConcurrency = 4

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print candidate counts and the top candidate for every job",
	Run: func(_ *cobra.Command, _ []string) {
		report()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func report() {
	ctx := context.Background()
	env := setup()

	rows, err := collectReport(ctx, env.client, env.config.BlindMode)
	if err != nil {
		env.logger.Fatal("building the report", zap.Error(err))
	}

	env.logger.Debug("report collected", zap.Int("jobs", len(rows)))

	if err := dashboard.RenderReport(os.Stdout, rows); err != nil {
		env.logger.Fatal("rendering the report", zap.Error(err))
	}
}

type reportSource interface {
	ListJobs(ctx context.Context) ([]recruit.Job, error)
	Rankings(ctx context.Context, jobID string, opts recruit.RankingOptions) ([]recruit.RankingEntry, error)
}

// collectReport fetches rankings for every job, keeping the job list order.
func collectReport(ctx context.Context, source reportSource, blind bool) ([]dashboard.ReportRow, error) {
	jobs, err := source.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dashboard.ReportRow, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)

	for i, job := range jobs {
		g.Go(func() error {
			entries, err := source.Rankings(ctx, job.ID, recruit.RankingOptions{Blind: blind})
			if err != nil {
				return err
			}
			rows[i] = dashboard.ReportRow{Job: job, Entries: entries}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

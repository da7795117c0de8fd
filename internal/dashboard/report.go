package dashboard

import (
	"fmt"
	"io"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

// ReportRow summarizes the rankings of one job.
type ReportRow struct {
	Job     recruit.Job
	Entries []recruit.RankingEntry
}

// RenderReport prints one line per job with its candidate count and top candidate.
func RenderReport(w io.Writer, rows []ReportRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, noJobsMessage)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCANDIDATES\tTOP CANDIDATE\tFINAL")
	for _, row := range rows {
		top, final := "-", "-"
		if len(row.Entries) > 0 {
			top = candidate(row.Entries[0])
			final = fmt.Sprintf("%.1f", row.Entries[0].FinalScore*100)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", row.Job.ID, row.Job.Title, len(row.Entries), top, final)
	}

	return tw.Flush()
}

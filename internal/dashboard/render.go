package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/recruit-dashboard/internal/recruit"
	"github.com/spigell/recruit-dashboard/internal/workflow"
)

const (
	noJobsMessage       = "No jobs created yet."
	noSelectionMessage  = "Select a job to view rankings"
	noCandidatesMessage = "No candidates processed for this job yet. Upload CVs to see rankings."

	loadingIndicator    = "Loading jobs..."
	creatingIndicator   = "Creating..."
	processingIndicator = "Processing..."
	refreshingIndicator = "Refreshing..."

	shownSkills = 3

	refreshedLayout = "15:04:05"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderJobs prints the job list. The selected job is marked with an asterisk.
func RenderJobs(w io.Writer, snap workflow.Snapshot) error {
	switch load := snap.Ops.JobsLoad; {
	case load.InFlight():
		fmt.Fprintln(w, loadingIndicator)
	case load.State == workflow.OpFailed && load.Err != nil:
		fmt.Fprintf(w, "Failed to load jobs: %v. Choose %q to retry.\n", load.Err, PromptReloadJobs)
	}

	if snap.Ops.JobCreate.InFlight() {
		fmt.Fprintln(w, creatingIndicator)
	}

	if len(snap.Jobs) == 0 {
		_, err := fmt.Fprintln(w, noJobsMessage)
		return err
	}

	selected := ""
	if snap.Selected != nil {
		selected = snap.Selected.ID
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "\tID\tTITLE")
	for _, job := range snap.Jobs {
		marker := ""
		if job.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, job.ID, job.Title)
	}

	return tw.Flush()
}

// RenderJob prints the selected job with its CV batch and rankings.
func RenderJob(w io.Writer, snap workflow.Snapshot) error {
	if snap.Selected == nil {
		_, err := fmt.Fprintln(w, noSelectionMessage)
		return err
	}

	job := snap.Selected
	fmt.Fprintf(w, "%s (job %s)\n", job.Title, job.ID)
	if job.Description != "" {
		fmt.Fprintln(w, job.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "CVs: %s\n", uploadLine(snap.Upload))

	header := "Candidate rankings"
	if snap.Ops.Rankings.InFlight() {
		header += " " + refreshingIndicator
	}
	fmt.Fprintln(w, header)

	if snap.Rankings.Loaded && !snap.Rankings.FetchedAt.IsZero() {
		fmt.Fprintf(w, "Last refreshed at %s\n", snap.Rankings.FetchedAt.Format(refreshedLayout))
	}

	return RenderRankings(w, snap.Rankings)
}

// RenderRankings prints the ranking table in the order the service returned it.
func RenderRankings(w io.Writer, view workflow.RankingView) error {
	if view.Status.State == workflow.OpFailed && view.Status.Err != nil {
		fmt.Fprintf(w, "Last refresh failed: %v\n", view.Status.Err)
	}

	if view.Empty() {
		_, err := fmt.Fprintln(w, noCandidatesMessage)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSIMILARITY\tEXPERIENCE\tFINAL\tMATCH")
	for _, entry := range view.Ranked() {
		fmt.Fprintf(tw, "#%d\t%s\t%.1f%%\t%s Yrs\t%.1f\t%s\n",
			entry.Rank,
			candidate(entry.RankingEntry),
			entry.SemanticScore*100,
			formatYears(entry.TotalExperience),
			entry.FinalScore*100,
			skills(entry.MatchedSkills),
		)
	}

	return tw.Flush()
}

func uploadLine(batch workflow.UploadBatch) string {
	switch batch.Status {
	case workflow.BatchSelecting:
		return fmt.Sprintf("%d file(s) selected, not uploaded yet", len(batch.Files))
	case workflow.BatchSubmitting:
		return fmt.Sprintf("%s %d file(s)", processingIndicator, len(batch.Files))
	case workflow.BatchSubmitted:
		return "uploaded, refresh rankings to see new candidates"
	case workflow.BatchFailed:
		return fmt.Sprintf("upload of %d file(s) failed: %v", len(batch.Files), batch.Err)
	default:
		return "none selected"
	}
}

func candidate(entry recruit.RankingEntry) string {
	name := entry.CandidateName
	if name == "" {
		name = entry.CandidateID
	}
	if entry.Email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, entry.Email)
}

func formatYears(years float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", years), "0"), ".")
}

func skills(matched []string) string {
	if len(matched) <= shownSkills {
		return strings.Join(matched, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(matched[:shownSkills], ", "), len(matched)-shownSkills)
}

package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

const (
	uploadAcceptedMessage = "CVs uploaded successfully! Processing in background. Please wait a moment and refresh rankings."
	noCandidatesMessage   = "No candidates processed for this job yet."
)

// Service is the external ranking service as seen by the workflow.
type Service interface {
	JobService
	RankingService
	UploadService
}

type State int

const (
	StateNoJobSelected State = iota
	StateJobSelected
)

func (s State) String() string {
	if s == StateJobSelected {
		return "job-selected"
	}
	return "no-job-selected"
}

type Options struct {
	// SemanticWeight is sent with new jobs; zero leaves the service default.
	SemanticWeight float64
	// Blind asks the service to mask candidate identities in rankings.
	Blind    bool
	Notifier Notifier
}

// Ops carries the three independent in-flight flags.
type Ops struct {
	JobsLoad  OpStatus
	JobCreate OpStatus
	Upload    OpStatus
	Rankings  OpStatus
}

type Snapshot struct {
	State    State
	Jobs     []recruit.Job
	Selected *recruit.Job
	Rankings RankingView
	Upload   UploadBatch
	Ops      Ops
}

// Controller turns user intents into store transitions. It never polls: after
// an upload the user refreshes rankings when they choose to.
type Controller struct {
	jobs     *JobStore
	rankings *RankingStore
	uploads  *UploadCoordinator
	notifier Notifier
	blind    bool
	logger   *zap.Logger

	// mu serializes selection changes with retargeting of the dependent stores.
	mu sync.Mutex
}

func New(service Service, logger *zap.Logger, opts Options) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(Event) {})
	}

	return &Controller{
		jobs:     NewJobStore(service, opts.SemanticWeight, logger.Named("jobs")),
		rankings: NewRankingStore(service, logger.Named("rankings")),
		uploads:  NewUploadCoordinator(service, logger.Named("upload")),
		notifier: notifier,
		blind:    opts.Blind,
		logger:   logger,
	}
}

func (c *Controller) State() State {
	if c.jobs.SelectedID() == "" {
		return StateNoJobSelected
	}
	return StateJobSelected
}

func (c *Controller) LoadJobs(ctx context.Context) error {
	if err := c.jobs.Load(ctx); err != nil {
		c.failed("load jobs", "", err)
		return err
	}

	c.sync()
	return nil
}

func (c *Controller) CreateJob(ctx context.Context, title, description string) (recruit.Job, error) {
	job, err := c.jobs.CreateJob(ctx, title, description)
	if err != nil {
		c.failed("create job", "", err)
		return recruit.Job{}, err
	}

	c.sync()

	c.notifier.Notify(Event{
		Kind:    EventJobCreated,
		JobID:   job.ID,
		Message: fmt.Sprintf("Job %q created.", job.Title),
	})

	return job, nil
}

// SelectJob switches the job in view. The old rankings and CV batch are
// dropped before the new rankings are requested.
func (c *Controller) SelectJob(ctx context.Context, id string) error {
	c.mu.Lock()
	changed, err := c.jobs.SelectJob(id)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if !changed {
		c.mu.Unlock()
		c.logger.Debug("job already selected", zap.String("job_id", id))
		return nil
	}
	c.syncLocked()
	c.mu.Unlock()

	c.logger.Info("job selected", zap.String("job_id", id))

	return c.refresh(ctx, id)
}

func (c *Controller) SelectFiles(files []recruit.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.uploads.SelectFiles(c.jobs.SelectedID(), files)
}

func (c *Controller) ConfirmUpload(ctx context.Context) (UploadResult, error) {
	if c.jobs.SelectedID() == "" {
		return UploadResult{}, ErrNoJobSelected
	}

	result, err := c.uploads.Confirm(ctx)
	if err != nil {
		c.failed("upload cvs", result.JobID, err)
		return result, err
	}

	if result.NoOp || result.Discarded {
		return result, nil
	}

	c.notifier.Notify(Event{
		Kind:    EventUploadAccepted,
		JobID:   result.JobID,
		Message: uploadAcceptedMessage,
	})

	return result, nil
}

func (c *Controller) RefreshRankings(ctx context.Context) error {
	id := c.jobs.SelectedID()
	if id == "" {
		return ErrNoJobSelected
	}

	return c.refresh(ctx, id)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State: StateNoJobSelected,
		Jobs:  c.jobs.ListJobs(),
		Ops: Ops{
			JobsLoad:  c.jobs.LoadStatus(),
			JobCreate: c.jobs.CreateStatus(),
		},
	}

	selected, ok := c.jobs.Selected()
	if !ok {
		return snap
	}

	snap.State = StateJobSelected
	snap.Selected = &selected

	// A store that has not been retargeted yet must not leak another job's data.
	if view := c.rankings.Snapshot(); view.JobID == selected.ID {
		snap.Rankings = view
	} else {
		snap.Rankings = RankingView{JobID: selected.ID}
	}

	if batch := c.uploads.Snapshot(); batch.TargetJobID == selected.ID {
		snap.Upload = batch
	} else {
		snap.Upload = UploadBatch{TargetJobID: selected.ID}
	}

	snap.Ops.Rankings = snap.Rankings.Status
	snap.Ops.Upload = uploadOpStatus(snap.Upload)

	return snap
}

func (c *Controller) refresh(ctx context.Context, id string) error {
	result, err := c.rankings.Fetch(ctx, id, recruit.RankingOptions{Blind: c.blind})
	if err != nil {
		c.failed("fetch rankings", id, err)
		return err
	}

	if result.Discarded {
		return nil
	}

	message := fmt.Sprintf("%d candidates ranked.", result.Entries)
	if result.Entries == 0 {
		message = noCandidatesMessage
	}

	c.notifier.Notify(Event{Kind: EventRankingsUpdated, JobID: id, Message: message})

	return nil
}

func (c *Controller) sync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.syncLocked()
}

// syncLocked retargets the ranking store and upload coordinator at the
// current selection if they still point elsewhere.
func (c *Controller) syncLocked() {
	id := c.jobs.SelectedID()
	if c.rankings.JobID() == id && c.uploads.Snapshot().TargetJobID == id {
		return
	}

	c.rankings.Clear(id)
	c.uploads.Reset(id)
}

// failed reports service failures; local validation errors are returned to
// the caller only.
func (c *Controller) failed(op, jobID string, err error) {
	var serviceErr *recruit.ServiceError
	if !errors.As(err, &serviceErr) {
		return
	}

	c.logger.Warn("operation failed", zap.String("op", op), zap.String("job_id", jobID), zap.Error(err))
	c.notifier.Notify(Event{
		Kind:    EventOperationFailed,
		JobID:   jobID,
		Message: fmt.Sprintf("Failed to %s.", op),
		Err:     err,
	})
}

func uploadOpStatus(batch UploadBatch) OpStatus {
	switch batch.Status {
	case BatchSubmitting:
		return OpStatus{State: OpInFlight}
	case BatchSubmitted:
		return OpStatus{State: OpSucceeded}
	case BatchFailed:
		return OpStatus{State: OpFailed, Err: batch.Err}
	default:
		return OpStatus{}
	}
}

package workflow

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

type JobService interface {
	ListJobs(ctx context.Context) ([]recruit.Job, error)
	CreateJob(ctx context.Context, draft recruit.JobDraft) (*recruit.Job, error)
}

// JobStore holds the known jobs in insertion order and the current selection.
type JobStore struct {
	service        JobService
	validate       *validator.Validate
	logger         *zap.Logger
	semanticWeight float64

	mu       sync.RWMutex
	jobs     []recruit.Job
	selected string
	create   OpStatus
	load     OpStatus
	// generation is bumped by every created job; createdAt records the
	// generation each one was created in.
	generation uint64
	createdAt  map[string]uint64
}

func NewJobStore(service JobService, semanticWeight float64, logger *zap.Logger) *JobStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &JobStore{
		service:        service,
		validate:       validator.New(),
		logger:         logger,
		semanticWeight: semanticWeight,
		createdAt:      make(map[string]uint64),
	}
}

func (s *JobStore) ListJobs() []recruit.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]recruit.Job, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Load replaces the list with the service's. Jobs created while the request
// was in flight are kept even if the response predates them. A selection that
// no longer exists on the service is dropped.
func (s *JobStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.load = OpStatus{State: OpInFlight}
	started := s.generation
	s.mu.Unlock()

	jobs, err := s.service.ListJobs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.load = OpStatus{State: OpFailed, Err: err}
		return err
	}

	s.jobs = s.mergeLocked(jobs, started)
	s.load = OpStatus{State: OpSucceeded}

	if s.selected != "" && s.indexLocked(s.selected) < 0 {
		s.logger.Info("selected job is gone from the service", zap.String("job_id", s.selected))
		s.selected = ""
	}

	return nil
}

func (s *JobStore) CreateJob(ctx context.Context, title, description string) (recruit.Job, error) {
	draft := recruit.JobDraft{
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		SemanticWeight: s.semanticWeight,
	}

	if err := s.validate.Struct(draft); err != nil {
		return recruit.Job{}, validationError(err)
	}

	s.mu.Lock()
	if s.create.InFlight() {
		s.mu.Unlock()
		return recruit.Job{}, ErrInProgress
	}
	s.create = OpStatus{State: OpInFlight}
	s.mu.Unlock()

	created, err := s.service.CreateJob(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.create = OpStatus{State: OpFailed, Err: err}
		return recruit.Job{}, err
	}

	job := *created
	if idx := s.indexLocked(job.ID); idx >= 0 {
		s.jobs[idx] = job
	} else {
		s.jobs = append(s.jobs, job)
	}
	s.selected = job.ID
	s.create = OpStatus{State: OpSucceeded}
	s.generation++
	s.createdAt[job.ID] = s.generation

	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("title", job.Title))

	return job, nil
}

// SelectJob reports whether the selection changed.
func (s *JobStore) SelectJob(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && id == s.selected {
		return false, nil
	}

	if s.indexLocked(id) < 0 {
		return false, ErrNotFound
	}

	s.selected = id
	return true, nil
}

func (s *JobStore) Selected() (recruit.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(s.selected)
	if idx < 0 {
		return recruit.Job{}, false
	}
	return s.jobs[idx], true
}

func (s *JobStore) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected
}

func (s *JobStore) CreateStatus() OpStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.create
}

// mergeLocked appends to fetched the known jobs created after generation
// since, unless the response already lists them.
func (s *JobStore) mergeLocked(fetched []recruit.Job, since uint64) []recruit.Job {
	merged := append([]recruit.Job(nil), fetched...)
	if since == s.generation {
		return merged
	}

	listed := make(map[string]struct{}, len(fetched))
	for _, job := range fetched {
		listed[job.ID] = struct{}{}
	}

	for _, job := range s.jobs {
		if _, ok := listed[job.ID]; ok || s.createdAt[job.ID] <= since {
			continue
		}
		s.logger.Debug("keeping job created during list load", zap.String("job_id", job.ID))
		merged = append(merged, job)
	}

	return merged
}

func (s *JobStore) indexLocked(id string) int {
	if id == "" {
		return -1
	}

	for i, job := range s.jobs {
		if job.ID == id {
			return i
		}
	}
	return -1
}

func (s *JobStore) LoadStatus() OpStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load
}

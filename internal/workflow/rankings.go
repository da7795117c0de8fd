package workflow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

type RankingService interface {
	Rankings(ctx context.Context, jobID string, opts recruit.RankingOptions) ([]recruit.RankingEntry, error)
}

// RankedEntry pairs an entry with its 1-based position in the service's list.
type RankedEntry struct {
	Rank int
	recruit.RankingEntry
}

// RankingView is a read-only copy of the ranking list for one job.
type RankingView struct {
	JobID     string
	Entries   []recruit.RankingEntry
	Loaded    bool
	FetchedAt time.Time
	Status    OpStatus
}

// Ranked numbers the entries in the order the service returned them.
func (v RankingView) Ranked() []RankedEntry {
	ranked := make([]RankedEntry, 0, len(v.Entries))
	for i, entry := range v.Entries {
		ranked = append(ranked, RankedEntry{Rank: i + 1, RankingEntry: entry})
	}
	return ranked
}

// Empty is true both before the first fetch and when the service has not
// processed any CVs for the job yet.
func (v RankingView) Empty() bool {
	return len(v.Entries) == 0
}

type FetchResult struct {
	JobID     string
	Entries   int
	Discarded bool
}

// RankingStore keeps the latest ranking list for the job it is targeted at.
// Every Clear starts a new generation; responses from an older generation
// or for another job are dropped on arrival.
type RankingStore struct {
	service RankingService
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.RWMutex
	jobID      string
	generation uint64
	entries    []recruit.RankingEntry
	loaded     bool
	fetchedAt  time.Time
	status     OpStatus
}

func NewRankingStore(service RankingService, logger *zap.Logger) *RankingStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RankingStore{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Clear empties the list and retargets the store at jobID.
func (s *RankingStore) Clear(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobID = jobID
	s.generation++
	s.entries = nil
	s.loaded = false
	s.fetchedAt = time.Time{}
	s.status = OpStatus{}
}

func (s *RankingStore) JobID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.jobID
}

func (s *RankingStore) Fetch(ctx context.Context, jobID string, opts recruit.RankingOptions) (FetchResult, error) {
	if jobID == "" {
		return FetchResult{}, ErrNoJobSelected
	}

	s.mu.Lock()
	if jobID != s.jobID {
		s.mu.Unlock()
		s.logger.Debug("skipping rankings fetch for a job that is not in view", zap.String("job_id", jobID))
		return FetchResult{JobID: jobID, Discarded: true}, nil
	}
	if s.status.InFlight() {
		s.mu.Unlock()
		return FetchResult{JobID: jobID}, ErrInProgress
	}
	tag := s.generation
	s.status = OpStatus{State: OpInFlight}
	s.mu.Unlock()

	entries, err := s.service.Rankings(ctx, jobID, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.generation || jobID != s.jobID {
		s.logger.Debug("discarding stale rankings response",
			zap.String("job_id", jobID),
			zap.String("current_job_id", s.jobID),
			zap.Error(err),
		)
		return FetchResult{JobID: jobID, Discarded: true}, nil
	}

	if err != nil {
		s.status = OpStatus{State: OpFailed, Err: err}
		return FetchResult{JobID: jobID}, err
	}

	s.entries = append(make([]recruit.RankingEntry, 0, len(entries)), entries...)
	s.loaded = true
	s.fetchedAt = s.now()
	s.status = OpStatus{State: OpSucceeded}

	return FetchResult{JobID: jobID, Entries: len(entries)}, nil
}

func (s *RankingStore) Snapshot() RankingView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]recruit.RankingEntry, len(s.entries))
	copy(entries, s.entries)

	return RankingView{
		JobID:     s.jobID,
		Entries:   entries,
		Loaded:    s.loaded,
		FetchedAt: s.fetchedAt,
		Status:    s.status,
	}
}

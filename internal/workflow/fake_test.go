package workflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

var errTransport = errors.New("connection refused")

type memFile struct {
	name string
	data []byte
}

func (f memFile) Name() string        { return f.name }
func (f memFile) ContentType() string { return "application/pdf" }
func (f memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type fakeService struct {
	mu sync.Mutex

	jobs      []recruit.Job
	listErr   error
	createErr error
	nextID    int
	// listGate blocks ListJobs after it has read the job list.
	listGate    chan struct{}
	listStarted chan struct{}

	rankings   map[string][]recruit.RankingEntry
	rankingErr error
	// rankingGate blocks Rankings for a job until the channel is closed.
	rankingGate    map[string]chan struct{}
	rankingStarted chan string

	uploadErrs    []error
	uploadGate    chan struct{}
	uploadStarted chan string
	uploads       []recruit.UploadRequest

	calls map[string]int
}

func newFakeService(jobs ...recruit.Job) *fakeService {
	return &fakeService{
		jobs:           jobs,
		rankings:       make(map[string][]recruit.RankingEntry),
		rankingGate:    make(map[string]chan struct{}),
		rankingStarted: make(chan string, 8),
		listStarted:    make(chan struct{}, 8),
		uploadStarted:  make(chan string, 8),
		calls:          make(map[string]int),
	}
}

func (f *fakeService) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeService) ListJobs(ctx context.Context) ([]recruit.Job, error) {
	f.mu.Lock()
	f.calls["list"]++
	listErr := f.listErr
	jobs := append([]recruit.Job(nil), f.jobs...)
	gate := f.listGate
	f.mu.Unlock()

	if gate != nil {
		f.listStarted <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &recruit.ServiceError{Op: "list jobs", Err: ctx.Err()}
		}
	}

	if listErr != nil {
		return nil, &recruit.ServiceError{Op: "list jobs", Err: listErr}
	}
	return jobs, nil
}

func (f *fakeService) CreateJob(_ context.Context, draft recruit.JobDraft) (*recruit.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.createErr != nil {
		return nil, &recruit.ServiceError{Op: "create job", Err: f.createErr}
	}
	f.nextID++
	job := recruit.Job{ID: "J" + strconv.Itoa(f.nextID), Title: draft.Title, Description: draft.Description}
	f.jobs = append(f.jobs, job)
	return &job, nil
}

func (f *fakeService) Rankings(ctx context.Context, jobID string, _ recruit.RankingOptions) ([]recruit.RankingEntry, error) {
	f.mu.Lock()
	f.calls["rankings"]++
	gate := f.rankingGate[jobID]
	f.mu.Unlock()

	f.rankingStarted <- jobID
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &recruit.ServiceError{Op: "fetch rankings", Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rankingErr != nil {
		return nil, &recruit.ServiceError{Op: "fetch rankings", Err: f.rankingErr}
	}
	return append([]recruit.RankingEntry(nil), f.rankings[jobID]...), nil
}

func (f *fakeService) UploadCVs(ctx context.Context, batch recruit.UploadRequest) (*recruit.UploadReceipt, error) {
	f.mu.Lock()
	f.calls["upload"]++
	f.uploads = append(f.uploads, batch)
	gate := f.uploadGate
	var err error
	if len(f.uploadErrs) > 0 {
		err = f.uploadErrs[0]
		f.uploadErrs = f.uploadErrs[1:]
	}
	f.mu.Unlock()

	f.uploadStarted <- batch.JobID
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &recruit.ServiceError{Op: "upload cvs", Err: ctx.Err()}
		}
	}

	if err != nil {
		return nil, &recruit.ServiceError{Op: "upload cvs", Err: err}
	}
	return &recruit.UploadReceipt{JobID: batch.JobID, Files: len(batch.Files), Message: "accepted"}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingNotifier) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func entry(name string, score float64) recruit.RankingEntry {
	return recruit.RankingEntry{
		CandidateName: name,
		Email:         name + "@example.com",
		SemanticScore: score,
		FinalScore:    score,
		MatchedSkills: []string{"go"},
	}
}

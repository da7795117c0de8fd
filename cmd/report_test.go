package cmd

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

type reportService struct {
	jobs    []recruit.Job
	failFor string

	mu       sync.Mutex
	inFlight int32
	peak     int32
	blind    []bool
}

func (s *reportService) ListJobs(context.Context) ([]recruit.Job, error) {
	return s.jobs, nil
}

func (s *reportService) Rankings(_ context.Context, jobID string, opts recruit.RankingOptions) ([]recruit.RankingEntry, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	if n > s.peak {
		s.peak = n
	}
	s.blind = append(s.blind, opts.Blind)
	s.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	if jobID == s.failFor {
		return nil, &recruit.ServiceError{Op: "fetch rankings", StatusCode: 500}
	}

	return []recruit.RankingEntry{{CandidateName: "top of " + jobID}}, nil
}

func TestCollectReportKeepsJobOrder(t *testing.T) {
	service := &reportService{}
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		service.jobs = append(service.jobs, recruit.Job{ID: id, Title: "job " + id})
	}

	rows, err := collectReport(context.Background(), service, true)
	require.NoError(t, err)
	require.Len(t, rows, len(service.jobs))

	for i, row := range rows {
		assert.Equal(t, service.jobs[i], row.Job)
		assert.Equal(t, "top of "+service.jobs[i].ID, row.Entries[0].CandidateName)
	}

	assert.LessOrEqual(t, service.peak, int32(reportConcurrency))
	assert.NotContains(t, service.blind, false)
}

func TestCollectReportFailure(t *testing.T) {
	service := &reportService{
		jobs:    []recruit.Job{{ID: "1"}, {ID: "2"}},
		failFor: "2",
	}

	_, err := collectReport(context.Background(), service, false)

	var serviceErr *recruit.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, 500, serviceErr.StatusCode)
}

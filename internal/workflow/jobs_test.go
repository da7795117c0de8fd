package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

func TestJobStoreCreateJobValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
	}{
		{name: "empty title", title: "", description: "Build APIs"},
		{name: "blank title", title: "   ", description: "Build APIs"},
		{name: "empty description", title: "Backend Engineer", description: ""},
		{name: "blank description", title: "Backend Engineer", description: "\n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := newFakeService()
			store := NewJobStore(service, 0, zap.NewNop())

			_, err := store.CreateJob(context.Background(), tt.title, tt.description)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Zero(t, service.count("create"))
			assert.Empty(t, store.ListJobs())
		})
	}
}

func TestJobStoreCreateJobAppendsAndSelects(t *testing.T) {
	service := newFakeService()
	store := NewJobStore(service, 0, zap.NewNop())

	job, err := store.CreateJob(context.Background(), "  Backend Engineer ", "Build APIs")
	require.NoError(t, err)

	assert.Equal(t, "J1", job.ID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, []recruit.Job{job}, store.ListJobs())
	assert.Equal(t, "J1", store.SelectedID())
	assert.Equal(t, OpSucceeded, store.CreateStatus().State)
}

func TestJobStoreCreateJobFailureLeavesListUnchanged(t *testing.T) {
	existing := recruit.Job{ID: "J0", Title: "Existing", Description: "Kept"}
	service := newFakeService(existing)
	store := NewJobStore(service, 0, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	service.createErr = errTransport

	_, err := store.CreateJob(context.Background(), "Backend Engineer", "Build APIs")

	var serviceErr *recruit.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, []recruit.Job{existing}, store.ListJobs())
	assert.Empty(t, store.SelectedID())
	assert.Equal(t, OpFailed, store.CreateStatus().State)
}

func TestJobStoreSelectJob(t *testing.T) {
	service := newFakeService(
		recruit.Job{ID: "J1", Title: "One"},
		recruit.Job{ID: "J2", Title: "Two"},
	)
	store := NewJobStore(service, 0, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	changed, err := store.SelectJob("J1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.SelectJob("J1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = store.SelectJob("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "J1", store.SelectedID())

	selected, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, "One", selected.Title)
}

func TestJobStoreLoadDropsVanishedSelection(t *testing.T) {
	service := newFakeService(recruit.Job{ID: "J1"}, recruit.Job{ID: "J2"})
	store := NewJobStore(service, 0, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	_, err := store.SelectJob("J2")
	require.NoError(t, err)

	service.jobs = service.jobs[:1]
	require.NoError(t, store.Load(context.Background()))

	assert.Empty(t, store.SelectedID())
	assert.Len(t, store.ListJobs(), 1)
}

func TestJobStoreLoadFailureKeepsList(t *testing.T) {
	service := newFakeService(recruit.Job{ID: "J1"})
	store := NewJobStore(service, 0, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	service.listErr = errTransport
	err := store.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, store.ListJobs(), 1)
	assert.Equal(t, OpFailed, store.LoadStatus().State)
}

func TestJobStoreLoadKeepsJobCreatedWhileInFlight(t *testing.T) {
	service := newFakeService(recruit.Job{ID: "J0", Title: "Existing"})
	service.listGate = make(chan struct{})
	store := NewJobStore(service, 0, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- store.Load(context.Background()) }()
	<-service.listStarted

	created, err := store.CreateJob(context.Background(), "Backend Engineer", "Go")
	require.NoError(t, err)

	close(service.listGate)
	require.NoError(t, <-done)

	ids := make([]string, 0)
	for _, job := range store.ListJobs() {
		ids = append(ids, job.ID)
	}
	assert.Equal(t, []string{"J0", created.ID}, ids)
	assert.Equal(t, created.ID, store.SelectedID())
}

func TestJobStoreLoadAfterCreateDoesNotDuplicate(t *testing.T) {
	service := newFakeService()
	store := NewJobStore(service, 0, zap.NewNop())

	created, err := store.CreateJob(context.Background(), "Backend Engineer", "Go")
	require.NoError(t, err)

	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, []recruit.Job{created}, store.ListJobs())
	assert.Equal(t, created.ID, store.SelectedID())
}

package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
	"github.com/spigell/recruit-dashboard/internal/recruit"
)

type BatchStatus int

const (
	BatchIdle BatchStatus = iota
	BatchSelecting
	BatchSubmitting
	BatchSubmitted
	BatchFailed
)

func (s BatchStatus) String() string {
	switch s {
	case BatchSelecting:
		return "selecting"
	case BatchSubmitting:
		return "submitting"
	case BatchSubmitted:
		return "submitted"
	case BatchFailed:
		return "failed"
	default:
		return "idle"
	}
}

type UploadService interface {
	UploadCVs(ctx context.Context, batch recruit.UploadRequest) (*recruit.UploadReceipt, error)
}

// UploadBatch is the CV selection for one job. A failed batch keeps its
// files so that it can be confirmed again as is.
type UploadBatch struct {
	TargetJobID  string
	Files        []recruit.File
	Status       BatchStatus
	SubmissionID string
	Err          error
}

type UploadResult struct {
	JobID        string
	SubmissionID string
	Files        int
	Message      string
	// NoOp is set when the batch had already been submitted.
	NoOp bool
	// Discarded is set when the job changed while the batch was in flight.
	Discarded bool
}

// UploadCoordinator drives a batch through selecting, submitting and the
// service's acknowledgement. The acknowledgement only means the service has
// queued the CVs; scoring finishes later.
type UploadCoordinator struct {
	service UploadService
	logger  *zap.Logger
	newID   func() string

	mu         sync.Mutex
	batch      UploadBatch
	generation uint64
}

func NewUploadCoordinator(service UploadService, logger *zap.Logger) *UploadCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UploadCoordinator{
		service: service,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

func (u *UploadCoordinator) SelectFiles(jobID string, files []recruit.File) error {
	if jobID == "" {
		return ErrNoJobSelected
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.batch.Status == BatchSubmitting && u.batch.TargetJobID == jobID {
		return ErrInProgress
	}

	u.batch = UploadBatch{
		TargetJobID: jobID,
		Files:       append([]recruit.File(nil), files...),
		Status:      BatchSelecting,
	}

	return nil
}

func (u *UploadCoordinator) Confirm(ctx context.Context) (UploadResult, error) {
	u.mu.Lock()

	jobID := u.batch.TargetJobID
	switch {
	case u.batch.Status == BatchSubmitted:
		result := UploadResult{JobID: jobID, SubmissionID: u.batch.SubmissionID, NoOp: true}
		u.mu.Unlock()
		return result, nil
	case u.batch.Status == BatchSubmitting:
		u.mu.Unlock()
		return UploadResult{JobID: jobID}, ErrInProgress
	case jobID == "":
		u.mu.Unlock()
		return UploadResult{}, ErrNoJobSelected
	case len(u.batch.Files) == 0:
		u.mu.Unlock()
		return UploadResult{JobID: jobID}, ErrEmptyBatch
	}

	tag := u.generation
	files := append([]recruit.File(nil), u.batch.Files...)
	submissionID := u.newID()

	u.batch.Status = BatchSubmitting
	u.batch.SubmissionID = submissionID
	u.batch.Err = nil
	u.mu.Unlock()

	log := logger.WithRequestFields(u.logger, jobID, submissionID)
	log.Info("submitting cv batch", zap.Int("files", len(files)))

	receipt, err := u.service.UploadCVs(ctx, recruit.UploadRequest{
		JobID:        jobID,
		SubmissionID: submissionID,
		Files:        files,
	})

	u.mu.Lock()
	defer u.mu.Unlock()

	result := UploadResult{JobID: jobID, SubmissionID: submissionID, Files: len(files)}

	if tag != u.generation {
		if err != nil {
			log.Info("ignoring upload failure for a job no longer in view", zap.Error(err))
		} else {
			log.Info("ignoring upload acknowledgement for a job no longer in view")
		}
		result.Discarded = true
		return result, nil
	}

	if err != nil {
		u.batch.Status = BatchFailed
		u.batch.Err = err
		log.Warn("cv batch upload failed", zap.Error(err))
		return result, err
	}

	if receipt != nil {
		result.Message = receipt.Message
	}

	u.batch = UploadBatch{
		TargetJobID:  jobID,
		Status:       BatchSubmitted,
		SubmissionID: submissionID,
	}

	log.Info("cv batch accepted for background processing", zap.String("message", result.Message))

	return result, nil
}

// Reset drops local batch state on job change. An in-flight request keeps
// running; its result will be ignored.
func (u *UploadCoordinator) Reset(jobID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.generation++
	u.batch = UploadBatch{TargetJobID: jobID}
}

func (u *UploadCoordinator) Snapshot() UploadBatch {
	u.mu.Lock()
	defer u.mu.Unlock()

	batch := u.batch
	batch.Files = append([]recruit.File(nil), u.batch.Files...)
	return batch
}

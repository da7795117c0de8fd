package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldJobID is the structured log field key for the job a request targets.
	FieldJobID = "job_id"
	// FieldSubmissionID is the structured log field key for a CV batch submission.
	FieldSubmissionID = "submission_id"
)

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// RequestFields tags a log line with the job a request targets and, once one
// is assigned, its submission. Blank values are left out.
func RequestFields(jobID, submissionID string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if jobID = strings.TrimSpace(jobID); jobID != "" {
		fields = append(fields, zap.String(FieldJobID, jobID))
	}
	if submissionID = strings.TrimSpace(submissionID); submissionID != "" {
		fields = append(fields, zap.String(FieldSubmissionID, submissionID))
	}

	return fields
}

func WithRequestFields(l *zap.Logger, jobID, submissionID string) *zap.Logger {
	return OrNop(l).With(RequestFields(jobID, submissionID)...)
}

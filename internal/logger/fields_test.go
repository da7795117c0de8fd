package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestFields(t *testing.T) {
	tests := []struct {
		name         string
		jobID        string
		submissionID string
		expect       map[string]string
	}{
		{
			name:         "job and submission",
			jobID:        "J1",
			submissionID: "sub-1",
			expect:       map[string]string{FieldJobID: "J1", FieldSubmissionID: "sub-1"},
		},
		{
			name:   "submission not assigned yet",
			jobID:  " J1 ",
			expect: map[string]string{FieldJobID: "J1"},
		},
		{
			name:         "blank values are dropped",
			jobID:        "  ",
			submissionID: "\t",
			expect:       map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := RequestFields(tt.jobID, tt.submissionID)
			if len(fields) != len(tt.expect) {
				t.Fatalf("expected %d fields, got %d", len(tt.expect), len(fields))
			}

			for _, field := range fields {
				if want := tt.expect[field.Key]; field.String != want {
					t.Fatalf("field %s: expected %q, got %q", field.Key, want, field.String)
				}
			}
		})
	}
}

func TestWithRequestFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithRequestFields(zap.New(core), "J1", "sub-1").Info("upload accepted")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldJobID] != "J1" || ctx[FieldSubmissionID] != "sub-1" {
		t.Fatalf("unexpected request fields: %v", ctx)
	}

	// A nil logger must not panic.
	WithRequestFields(nil, "J1", "").Info("dropped")
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected a no-op logger for nil")
	}

	l := zap.NewExample()
	if OrNop(l) != l {
		t.Fatalf("expected the given logger to be returned")
	}
}

package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "zero limit drops the body",
			input:  `{"detail":"Job not found"}`,
			limit:  0,
			expect: "",
		},
		{
			name:   "short error body is kept",
			input:  "Bad Gateway",
			limit:  300,
			expect: "Bad Gateway",
		},
		{
			name:   "long body is cut",
			input:  `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`,
			limit:  10,
			expect: `{"detail":...`,
		},
		{
			name:   "counts runes, not bytes",
			input:  "Müller résumé",
			limit:  6,
			expect: "Müller...",
		},
		{
			name:   "surrounding newlines are trimmed first",
			input:  "\n\tInternal Server Error\n",
			limit:  100,
			expect: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		logger, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !logger.Core().Enabled(-1) {
			t.Fatalf("expected debug level to be enabled")
		}
	}

	logger, err := New(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("expected debug level to be disabled")
	}
}

package cvfilter

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
)

type dedupeFilter struct {
	logger *zap.Logger
}

// NewDedupe creates a filter that drops repeated paths, keeping the first occurrence.
func NewDedupe(log *zap.Logger) Filter {
	return &dedupeFilter{logger: logger.OrNop(log)}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	seen := make(map[string]struct{}, initial)

	dropped := c.Keep(func(path string) bool {
		key := filepath.Clean(path)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	if len(dropped) > 0 {
		f.logger.Info("dropping repeated cv files", zap.Strings("paths", dropped))
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

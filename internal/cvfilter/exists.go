package cvfilter

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
)

type existsFilter struct {
	logger *zap.Logger
}

// NewExists creates a filter that drops paths that are missing or are directories.
func NewExists(log *zap.Logger) Filter {
	return &existsFilter{logger: logger.OrNop(log)}
}

func (f *existsFilter) Name() string { return "exists" }

func (f *existsFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	dropped := c.Keep(func(path string) bool {
		info, err := os.Stat(path)
		if err != nil {
			f.logger.Warn("skipping cv file", zap.String("path", path), zap.Error(err))
			return false
		}
		if info.IsDir() {
			f.logger.Warn("skipping directory", zap.String("path", path))
			return false
		}
		return true
	})

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

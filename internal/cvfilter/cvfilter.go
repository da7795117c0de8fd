package cvfilter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/recruit"
)

// Filter represents a single check applied to the CV paths a user picked.
type Filter interface {
	Name() string
	Apply(ctx context.Context, c *Candidates) (*Candidates, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Candidates is the ordered list of CV paths still in the selection.
type Candidates struct {
	Paths []string
}

func (c *Candidates) Len() int {
	return len(c.Paths)
}

// Keep retains the paths for which keep returns true, preserving order, and
// returns the dropped ones.
func (c *Candidates) Keep(keep func(path string) bool) []string {
	var dropped []string
	kept := c.Paths[:0]
	for _, path := range c.Paths {
		if keep(path) {
			kept = append(kept, path)
			continue
		}
		dropped = append(dropped, path)
	}
	c.Paths = kept
	return dropped
}

// Files turns the remaining paths into upload handles.
func (c *Candidates) Files() []recruit.File {
	files := make([]recruit.File, 0, len(c.Paths))
	for _, path := range c.Paths {
		files = append(files, recruit.LocalFile{Path: path})
	}
	return files
}

// Default returns the standard checks in the order they run.
func Default(strictTypes bool, logger *zap.Logger) []Filter {
	return []Filter{
		NewExists(logger),
		NewDedupe(logger),
		NewFileType(strictTypes, logger),
	}
}

// Run executes the supplied filters sequentially.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, paths []string) (*Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Candidates{Paths: append([]string(nil), paths...)}

	for _, step := range steps {
		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}

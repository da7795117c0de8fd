package cvfilter

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
}

// fileTypeFilter flags CVs that are neither PDF nor DOCX. The service decides
// what it can parse, so by default the check only warns.
type fileTypeFilter struct {
	strict bool
	logger *zap.Logger
}

// NewFileType creates the CV type check. When strict is set unsupported files are dropped.
func NewFileType(strict bool, log *zap.Logger) Filter {
	return &fileTypeFilter{strict: strict, logger: logger.OrNop(log)}
}

func (f *fileTypeFilter) Name() string { return "file_type" }

func (f *fileTypeFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()

	dropped := c.Keep(func(path string) bool {
		if Supported(path) {
			return true
		}

		if !f.strict {
			f.logger.Warn("cv file is not PDF or DOCX, the service may skip it", zap.String("path", path))
			return true
		}

		f.logger.Warn("dropping cv file that is not PDF or DOCX", zap.String("path", path))
		return false
	})

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

// Supported reports whether path looks like a PDF or DOCX by extension or content.
func Supported(path string) bool {
	if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return true
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}

	return mtype.Is(mimePDF) || mtype.Is(mimeDOCX)
}

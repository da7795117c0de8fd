package recruit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	opUpload         = "upload cvs"
	filesField       = "files"
	requestIDHeader  = "X-Request-ID"
	fallbackFileType = "application/octet-stream"
)

// File is a handle to a CV that can be opened more than once, so a failed
// batch can be resent without choosing the files again.
type File interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// LocalFile is a CV on the local filesystem.
type LocalFile struct {
	Path string
}

func (f LocalFile) Name() string {
	return filepath.Base(f.Path)
}

func (f LocalFile) ContentType() string {
	mtype, err := mimetype.DetectFile(f.Path)
	if err != nil {
		return fallbackFileType
	}
	return mtype.String()
}

func (f LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

type UploadRequest struct {
	JobID        string
	SubmissionID string
	Files        []File
}

// UploadReceipt acknowledges that the service accepted a batch for background
// processing. It says nothing about scoring progress.
type UploadReceipt struct {
	JobID   string
	Files   int
	Message string
}

func (c *Client) uploadCVs(ctx context.Context, batch UploadRequest) (*UploadReceipt, error) {
	if batch.JobID == "" {
		return nil, &ServiceError{Op: opUpload, Err: fmt.Errorf("job id is required")}
	}

	fields := make([]*resty.MultipartField, 0, len(batch.Files))
	defer func() {
		for _, field := range fields {
			if closer, ok := field.Reader.(io.Closer); ok {
				closeQuietly(closer, c.logger)
			}
		}
	}()

	for _, file := range batch.Files {
		reader, openErr := file.Open()
		if openErr != nil {
			return nil, &ServiceError{Op: opUpload, Err: fmt.Errorf("open %s: %w", file.Name(), openErr)}
		}

		fields = append(fields, &resty.MultipartField{
			Param:       filesField,
			FileName:    file.Name(),
			ContentType: file.ContentType(),
			Reader:      reader,
		})
	}

	req := c.request(ctx).
		SetPathParam("id", batch.JobID).
		SetMultipartFields(fields...)

	if batch.SubmissionID != "" {
		req.SetHeader(requestIDHeader, batch.SubmissionID)
	}

	resp, err := c.do(opUpload, req, resty.MethodPost, uploadPath)
	if err != nil {
		return nil, err
	}

	return &UploadReceipt{
		JobID:   batch.JobID,
		Files:   len(batch.Files),
		Message: gjson.GetBytes(resp.Body(), "message").String(),
	}, nil
}

func closeQuietly(closer io.Closer, logger *zap.Logger) {
	if err := closer.Close(); err != nil {
		logger.Debug("closing cv file", zap.Error(err))
	}
}

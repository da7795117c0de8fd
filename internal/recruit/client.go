package recruit

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	apiURL         = "http://localhost:8000"
	userAgent      = "spigell/recruit-dashboard"
	defaultTimeout = 30 * time.Second

	jobsPath     = "/jobs"
	uploadPath   = "/jobs/{id}/upload-cvs"
	rankingsPath = "/jobs/{id}/rankings"
)

// Client talks to the CV ranking service. Scoring happens on the service side;
// the client only moves jobs, CV batches and ranking lists over the wire.
type Client struct {
	logger    *zap.Logger
	http      *resty.Client
	UserAgent string
	APIURL    string
}

func New(logger *zap.Logger, url string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = apiURL
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	http := resty.New().
		SetTimeout(timeout).
		SetLogger(logger.Sugar())

	return &Client{
		logger:    logger,
		http:      http,
		UserAgent: userAgent,
		APIURL:    url,
	}
}

func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	return c.listJobs(ctx)
}

func (c *Client) CreateJob(ctx context.Context, draft JobDraft) (*Job, error) {
	return c.createJob(ctx, draft)
}

func (c *Client) UploadCVs(ctx context.Context, batch UploadRequest) (*UploadReceipt, error) {
	return c.uploadCVs(ctx, batch)
}

func (c *Client) Rankings(ctx context.Context, jobID string, opts RankingOptions) ([]RankingEntry, error) {
	return c.rankings(ctx, jobID, opts)
}

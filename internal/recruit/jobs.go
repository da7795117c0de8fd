package recruit

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	opListJobs  = "list jobs"
	opCreateJob = "create job"
)

type Job struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	SemanticWeight float64 `json:"semantic_weight,omitempty"`
}

// JobDraft is the payload for a new job. SemanticWeight is left to the service
// default when zero.
type JobDraft struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	SemanticWeight float64 `json:"semantic_weight,omitempty" validate:"gte=0,lte=1"`
}

func (c *Client) listJobs(ctx context.Context) ([]Job, error) {
	items, err := c.getItems(opListJobs, c.request(ctx), jobsPath)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(items))
	if err := decode(items, &jobs); err != nil {
		return nil, &ServiceError{Op: opListJobs, Err: fmt.Errorf("decode jobs: %w", err)}
	}

	return jobs, nil
}

func (c *Client) createJob(ctx context.Context, draft JobDraft) (*Job, error) {
	req := c.request(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(draft)

	resp, err := c.do(opCreateJob, req, resty.MethodPost, jobsPath)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := unmarshal(resp.Body(), &raw); err != nil {
		return nil, &ServiceError{Op: opCreateJob, Err: fmt.Errorf("decode job: %w", err)}
	}

	var job Job
	if err := decode(raw, &job); err != nil {
		return nil, &ServiceError{Op: opCreateJob, Err: fmt.Errorf("decode job: %w", err)}
	}

	if job.ID == "" {
		return nil, &ServiceError{Op: opCreateJob, Err: fmt.Errorf("service returned a job without id")}
	}

	return &job, nil
}

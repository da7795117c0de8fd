package recruit

import (
	"context"
	"fmt"
	"strconv"
)

const opRankings = "fetch rankings"

// RankingEntry is one candidate's match data for a job. Scores are computed by
// the service; the order of a ranking list is its rank order.
type RankingEntry struct {
	CandidateID     string   `json:"candidate_id,omitempty"`
	CandidateName   string   `json:"candidate_name"`
	Email           string   `json:"email"`
	SemanticScore   float64  `json:"semantic_score"`
	ExperienceScore float64  `json:"experience_score,omitempty"`
	TotalExperience float64  `json:"total_experience"`
	FinalScore      float64  `json:"final_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
}

type RankingOptions struct {
	// Blind asks the service to mask candidate names and emails.
	Blind bool
}

func (c *Client) rankings(ctx context.Context, jobID string, opts RankingOptions) ([]RankingEntry, error) {
	if jobID == "" {
		return nil, &ServiceError{Op: opRankings, Err: fmt.Errorf("job id is required")}
	}

	req := c.request(ctx).SetPathParam("id", jobID)
	if opts.Blind {
		req.SetQueryParam("blind_mode", strconv.FormatBool(true))
	}

	items, err := c.getItems(opRankings, req, rankingsPath)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(items))
	if err := decode(items, &entries); err != nil {
		return nil, &ServiceError{Op: opRankings, Err: fmt.Errorf("decode rankings: %w", err)}
	}

	return entries, nil
}

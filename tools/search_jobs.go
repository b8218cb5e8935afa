package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/perplexity"
	"github.com/jobha/backend/search"
)

// SearchJobsTool runs a one-shot job search and returns the scored results
// as a single batch, without the SSE session machinery.
type SearchJobsTool struct {
	client *perplexity.Client
}

// NewSearchJobsTool creates a new job search tool
func NewSearchJobsTool(client *perplexity.Client) *SearchJobsTool {
	return &SearchJobsTool{
		client: client,
	}
}

func (t *SearchJobsTool) Name() string {
	return "search_jobs"
}

func (t *SearchJobsTool) Description() string {
	return `Search for current job postings matching a ranked keyword list.
Results are deduplicated by (title, company) and scored against the keywords; the first keyword is treated as the primary search term.`
}

func (t *SearchJobsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"keywords": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Ranked search keywords, most important first",
			},
		},
		"required": []string{"keywords"},
	}
}

// SearchJobsInput represents the input for a job search
type SearchJobsInput struct {
	Keywords []string `json:"keywords"`
}

// SearchJobsOutput represents the collected search results
type SearchJobsOutput struct {
	Jobs  []models.JobPosting `json:"jobs"`
	Total int                 `json:"total"`
}

func (t *SearchJobsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var searchInput SearchJobsInput
	if err := json.Unmarshal(input, &searchInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if len(searchInput.Keywords) == 0 {
		return NewErrorResult("keywords must not be empty")
	}

	var (
		jobs      []models.JobPosting
		seen      = make(map[string]struct{})
		searchErr error
	)

	// The provider call is synchronous; batches arrive before it returns.
	t.client.SearchJobs(ctx, searchInput.Keywords, func(batch []models.JobPosting, done bool, err error) {
		for _, job := range batch {
			if _, dup := seen[job.DedupKey()]; dup {
				continue
			}
			seen[job.DedupKey()] = struct{}{}
			job.MatchScore = models.FlexibleInt(search.ScoreJob(&job, searchInput.Keywords))
			jobs = append(jobs, job)
		}
		if done {
			searchErr = err
		}
	})

	if searchErr != nil {
		return NewErrorResult(fmt.Sprintf("job search failed: %v", searchErr))
	}
	return NewSuccessResult(SearchJobsOutput{Jobs: jobs, Total: len(jobs)})
}

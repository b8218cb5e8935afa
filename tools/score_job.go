package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/search"
)

// ScoreJobTool scores a job posting against a ranked keyword list
type ScoreJobTool struct{}

// NewScoreJobTool creates a new job scoring tool
func NewScoreJobTool() *ScoreJobTool {
	return &ScoreJobTool{}
}

func (t *ScoreJobTool) Name() string {
	return "score_job"
}

func (t *ScoreJobTool) Description() string {
	return `Score how well a job posting matches a ranked keyword list.
The first keyword is the primary search term.
Returns a match score (0-100) and a quality label.`
}

func (t *ScoreJobTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job": map[string]interface{}{
				"type":        "object",
				"description": "Job posting to score",
			},
			"keywords": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Ranked keyword list, primary keyword first",
			},
		},
		"required": []string{"job", "keywords"},
	}
}

// ScoreJobInput represents the input for job scoring
type ScoreJobInput struct {
	Job      models.JobPosting `json:"job"`
	Keywords []string          `json:"keywords"`
}

// ScoreJobOutput represents the scoring result
type ScoreJobOutput struct {
	MatchScore   int    `json:"match_score"`
	MatchQuality string `json:"match_quality"`
}

func (t *ScoreJobTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var scoreInput ScoreJobInput
	if err := json.Unmarshal(input, &scoreInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if len(scoreInput.Keywords) == 0 {
		return NewErrorResult("keywords must not be empty")
	}

	score := search.ScoreJob(&scoreInput.Job, scoreInput.Keywords)
	return NewSuccessResult(ScoreJobOutput{
		MatchScore:   score,
		MatchQuality: models.MatchQuality(score),
	})
}

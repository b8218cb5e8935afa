package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobha/backend/perplexity"
)

// AnalyzeCVTool extracts structured information from CV text
type AnalyzeCVTool struct {
	client *perplexity.Client
}

// NewAnalyzeCVTool creates a new CV analysis tool
func NewAnalyzeCVTool(client *perplexity.Client) *AnalyzeCVTool {
	return &AnalyzeCVTool{
		client: client,
	}
}

func (t *AnalyzeCVTool) Name() string {
	return "analyze_cv"
}

func (t *AnalyzeCVTool) Description() string {
	return `Extract structured information from CV text: skills, job titles, industries, experience, education, and suggested job search keywords.
Falls back to local keyword heuristics when the analysis service is unavailable.`
}

func (t *AnalyzeCVTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"cv_text": map[string]interface{}{
				"type":        "string",
				"description": "Raw CV text to analyze",
			},
		},
		"required": []string{"cv_text"},
	}
}

// AnalyzeCVInput represents the input for CV analysis
type AnalyzeCVInput struct {
	CVText string `json:"cv_text"`
}

func (t *AnalyzeCVTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var analyzeInput AnalyzeCVInput
	if err := json.Unmarshal(input, &analyzeInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if strings.TrimSpace(analyzeInput.CVText) == "" {
		return NewErrorResult("cv_text must not be empty")
	}

	analysis := t.client.AnalyzeCV(ctx, analyzeInput.CVText)
	return NewSuccessResult(analysis)
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/parser"
)

// SegmentCVTool partitions raw CV text into named sections
type SegmentCVTool struct{}

// NewSegmentCVTool creates a new CV segmentation tool
func NewSegmentCVTool() *SegmentCVTool {
	return &SegmentCVTool{}
}

func (t *SegmentCVTool) Name() string {
	return "segment_cv"
}

func (t *SegmentCVTool) Description() string {
	return `Partition raw CV text into named sections (contact, summary, experience, education, skills, and so on).
Returns the section map and optionally a structured HTML rendering.`
}

func (t *SegmentCVTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Raw CV text to segment",
			},
			"filename": map[string]interface{}{
				"type":        "string",
				"description": "Original filename, used for display naming",
			},
			"render_html": map[string]interface{}{
				"type":        "boolean",
				"description": "Also return the structured HTML rendering",
			},
		},
		"required": []string{"text"},
	}
}

// SegmentCVInput represents the input for CV segmentation
type SegmentCVInput struct {
	Text       string `json:"text"`
	Filename   string `json:"filename"`
	RenderHTML bool   `json:"render_html"`
}

// SegmentCVOutput represents the segmentation result
type SegmentCVOutput struct {
	Name        string            `json:"name"`
	Sections    models.SectionMap `json:"sections"`
	HTMLContent string            `json:"html_content,omitempty"`
}

func (t *SegmentCVTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var segInput SegmentCVInput
	if err := json.Unmarshal(input, &segInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if strings.TrimSpace(segInput.Text) == "" {
		return NewErrorResult("text must not be empty")
	}

	sections := parser.ExtractSections(segInput.Text)
	output := SegmentCVOutput{
		Name:     parser.DisplayName(segInput.Filename, sections),
		Sections: sections,
	}
	if segInput.RenderHTML {
		output.HTMLContent = parser.GenerateHTML(segInput.Filename, sections, segInput.Text)
	}

	return NewSuccessResult(output)
}

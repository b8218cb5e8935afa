package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobha/backend/parser"
)

// ParseDocumentTool runs the full ingestion pipeline over a file on disk
type ParseDocumentTool struct {
	parser *parser.DocumentParser
}

// NewParseDocumentTool creates a new document parsing tool
func NewParseDocumentTool(docParser *parser.DocumentParser) *ParseDocumentTool {
	return &ParseDocumentTool{
		parser: docParser,
	}
}

func (t *ParseDocumentTool) Name() string {
	return "parse_document"
}

func (t *ParseDocumentTool) Description() string {
	return `Extract and segment text from a document file (PDF, DOC, DOCX, TXT) on disk.
Returns raw text, the section map, and the structured HTML rendering.`
}

func (t *ParseDocumentTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the document file",
			},
			"filename": map[string]interface{}{
				"type":        "string",
				"description": "Original filename, used for format dispatch and display naming",
			},
		},
		"required": []string{"path", "filename"},
	}
}

// ParseDocumentInput represents the input for document parsing
type ParseDocumentInput struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

func (t *ParseDocumentTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var parseInput ParseDocumentInput
	if err := json.Unmarshal(input, &parseInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if !t.parser.IsSupportedFormat(parseInput.Filename) {
		return NewErrorResult(fmt.Sprintf("unsupported format: %s", parseInput.Filename))
	}

	parsed, err := t.parser.Parse(ctx, parseInput.Path, parseInput.Filename)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("parsing failed: %v", err))
	}

	return NewSuccessResult(parsed)
}

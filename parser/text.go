package parser

import (
	"os"
	"strings"
)

// TextExtractor extracts text from plain text files.
type TextExtractor struct{}

// ExtractText reads a text file, normalizes line endings, trims each line
// and drops blank ones.
func (e *TextExtractor) ExtractText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", newExtractionError(path, "failed to read text file", err)
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n"), nil
}

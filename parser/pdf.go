package parser

import (
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NoExtractableTextMessage is returned instead of an error when a PDF opens
// fine but yields no text, which is what scanned or image-only PDFs do.
// Callers decide how to react to it.
const NoExtractableTextMessage = "No extractable text found in the PDF document. The PDF might be scanned or image-based."

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	nonASCII       = regexp.MustCompile(`[^\x00-\x7F]+`)
	horizontalWS   = regexp.MustCompile(`[ \t]+`)
)

// PDFExtractor extracts text from PDF files.
type PDFExtractor struct{}

// ExtractText extracts and cleans the text content of a PDF file.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", newExtractionError(path, "PDF file not found", err)
	}
	if info.Size() == 0 {
		return "", newExtractionError(path, "PDF file is empty (0 bytes)", nil)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", newExtractionError(path, "failed to parse PDF file", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return NoExtractableTextMessage, nil
	}

	return cleanPDFText(text), nil
}

// cleanPDFText normalizes raw PDF extraction output: collapses newline
// bursts, strips non-ASCII artifacts, squeezes whitespace runs, and rejoins
// lines that were hard-wrapped mid-sentence.
func cleanPDFText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = nonASCII.ReplaceAllString(text, " ")
	text = horizontalWS.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	// Rejoin hard-wrapped lines: a line that does not end a sentence,
	// immediately followed by a continuation line, is one logical line.
	merged := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(merged) > 0 {
			prev := merged[len(merged)-1]
			if line != "" && prev != "" && !endsWithPunctuation(prev) {
				merged[len(merged)-1] = prev + " " + line
				continue
			}
		}
		merged = append(merged, line)
	}

	return strings.TrimSpace(strings.Join(merged, "\n"))
}

func endsWithPunctuation(line string) bool {
	return strings.ContainsAny(line[len(line)-1:], ".!?:;,")
}

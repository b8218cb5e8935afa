package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextExtractorNormalizesLineEndings(t *testing.T) {
	path := writeTempFile(t, "cv.txt", "Jane Doe\r\n\r\n  jane@x.com  \rEXPERIENCE:\r\n")

	text, err := (&TextExtractor{}).ExtractText(path)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@x.com\nEXPERIENCE:", text)
	assert.NotContains(t, text, "\r")
}

func TestParseEmptyTextFileFails(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "")
	p := NewDocumentParser(nil, zap.NewNop())

	_, err := p.Parse(context.Background(), path, "empty.txt")

	require.Error(t, err)
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestParseWhitespaceOnlyTextFileFails(t *testing.T) {
	path := writeTempFile(t, "blank.txt", "   \n\t\n  ")
	p := NewDocumentParser(nil, zap.NewNop())

	_, err := p.Parse(context.Background(), path, "blank.txt")

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestPDFExtractorMissingFile(t *testing.T) {
	_, err := (&PDFExtractor{}).ExtractText(filepath.Join(t.TempDir(), "nope.pdf"))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Reason, "not found")
}

func TestPDFExtractorEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.pdf", "")

	_, err := (&PDFExtractor{}).ExtractText(path)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Reason, "empty")
}

func TestCleanPDFTextCollapsesNewlines(t *testing.T) {
	cleaned := cleanPDFText("First paragraph.\n\n\n\n\nSecond paragraph.")

	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", cleaned)
}

func TestCleanPDFTextStripsNonASCII(t *testing.T) {
	cleaned := cleanPDFText("Resumé of Jane’s career.")

	for _, r := range cleaned {
		assert.Less(t, int(r), 128)
	}
}

func TestCleanPDFTextRejoinsHardWrappedLines(t *testing.T) {
	cleaned := cleanPDFText("Led a team of five\nengineers across two offices.\nNext line.")

	assert.Contains(t, cleaned, "Led a team of five engineers across two offices.")
	assert.Contains(t, cleaned, "\nNext line.")
}

func TestCleanPDFTextKeepsPunctuatedLineBreaks(t *testing.T) {
	cleaned := cleanPDFText("First sentence.\nSecond sentence.")

	assert.Equal(t, "First sentence.\nSecond sentence.", cleaned)
}

func TestUnsupportedExtension(t *testing.T) {
	p := NewDocumentParser(nil, zap.NewNop())

	assert.False(t, p.IsSupportedFormat("image.png"))
	assert.True(t, p.IsSupportedFormat("cv.PDF"))
	assert.True(t, p.IsSupportedFormat("cv.docx"))
	assert.True(t, p.IsSupportedFormat("cv.txt"))

	_, err := p.ExtractText(context.Background(), "image.png")
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestWalkDocumentXML(t *testing.T) {
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Skill</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Level</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Expert</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	paragraphs, rows := walkDocumentXML(content)

	assert.Equal(t, []string{"Jane Doe", "Senior Engineer"}, paragraphs)
	assert.Equal(t, []string{"Skill | Level", "Go | Expert"}, rows)
}

package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jobha/backend/models"
)

// DocumentParser dispatches extraction to the format-specific extractor and
// runs the full ingestion pipeline: extract, segment, render.
type DocumentParser struct {
	pdf       *PDFExtractor
	docx      *DocxExtractor
	text      *TextExtractor
	converter *Converter
	log       *zap.Logger
}

// NewDocumentParser creates a document parser. The converter handles legacy
// .doc files; it may be nil, in which case .doc uploads are rejected.
func NewDocumentParser(converter *Converter, log *zap.Logger) *DocumentParser {
	return &DocumentParser{
		pdf:       &PDFExtractor{},
		docx:      &DocxExtractor{},
		text:      &TextExtractor{},
		converter: converter,
		log:       log,
	}
}

// IsSupportedFormat checks if the file format is supported
func (p *DocumentParser) IsSupportedFormat(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".doc", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractText extracts raw text from the file at path, choosing the
// extractor by extension. Legacy .doc files go through the external
// converter to PDF first.
func (p *DocumentParser) ExtractText(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return p.pdf.ExtractText(path)
	case ".docx":
		return p.docx.ExtractText(path)
	case ".doc":
		return p.extractLegacyDoc(ctx, path)
	case ".txt":
		return p.text.ExtractText(path)
	default:
		return "", newExtractionError(path, "unsupported file type: "+ext, nil)
	}
}

func (p *DocumentParser) extractLegacyDoc(ctx context.Context, path string) (string, error) {
	if p.converter == nil {
		return "", newExtractionError(path, "no converter available for .doc files", nil)
	}

	outDir, err := os.MkdirTemp("", "jobha-convert-*")
	if err != nil {
		return "", newExtractionError(path, "failed to create conversion dir", err)
	}
	defer os.RemoveAll(outDir)

	converted, err := p.converter.ToPDF(ctx, path, outDir)
	if err != nil {
		return "", newExtractionError(path, "failed to convert .doc to PDF", err)
	}

	return p.pdf.ExtractText(converted)
}

// Parse runs the full pipeline for one uploaded file and returns the
// structured result. A document with no extractable text is an
// ExtractionError, never an empty success.
func (p *DocumentParser) Parse(ctx context.Context, path, filename string) (*models.ParsedDocument, error) {
	p.log.Info("starting text extraction",
		zap.String("filename", filename),
		zap.String("type", filepath.Ext(filename)))

	text, err := p.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, newExtractionError(filename,
			"could not extract text from the document; it may be empty, password protected, or contain only images", nil)
	}

	sections := ExtractSections(text)
	htmlContent := GenerateHTML(filename, sections, text)

	p.log.Info("document parsed",
		zap.String("filename", filename),
		zap.Int("chars", len(text)),
		zap.Int("sections", len(sections)))

	return &models.ParsedDocument{
		Filename:    filename,
		Name:        DisplayName(filename, sections),
		Sections:    sections,
		RawText:     text,
		HTMLContent: htmlContent,
	}, nil
}

package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DocxExtractor extracts text from DOCX files: paragraph text first, then
// table content rendered as pipe-separated rows.
type DocxExtractor struct{}

// ExtractText extracts the text content of a DOCX file.
func (e *DocxExtractor) ExtractText(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", newExtractionError(path, "failed to parse Word document", err)
	}
	defer doc.Close()

	paragraphs, tables := walkDocumentXML(doc.Editable().GetContent())

	fullText := strings.Join(paragraphs, "\n")
	if len(tables) > 0 {
		if fullText != "" {
			fullText += "\n\n"
		}
		fullText += strings.Join(tables, "\n")
	}

	return fullText, nil
}

// walkDocumentXML walks word/document.xml and collects non-empty paragraph
// texts and table rows. Paragraphs inside tables belong to their cell, not
// to the paragraph list.
func walkDocumentXML(content string) (paragraphs []string, tableRows []string) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		tableDepth int
		para       strings.Builder
		cell       strings.Builder
		row        []string
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF || err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				row = row[:0]
			case "tab":
				if tableDepth > 0 {
					cell.WriteString(" ")
				} else {
					para.WriteString(" ")
				}
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &t); err == nil {
					if tableDepth > 0 {
						cell.WriteString(text)
					} else {
						para.WriteString(text)
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tc":
				if text := strings.TrimSpace(cell.String()); text != "" {
					row = append(row, text)
				}
				cell.Reset()
			case "tr":
				if len(row) > 0 {
					tableRows = append(tableRows, strings.Join(row, " | "))
				}
			case "p":
				if tableDepth == 0 {
					if text := strings.TrimSpace(para.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
					para.Reset()
				}
			}
		}
	}

	return paragraphs, tableRows
}

package parser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter shells out to LibreOffice to convert legacy .doc files to PDF
// before extraction. The converter itself is an external collaborator; this
// wrapper only owns invocation and output location.
type Converter struct {
	Binary string
}

// NewConverter returns a converter using the given soffice binary.
func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = "soffice"
	}
	return &Converter{Binary: binary}
}

// ToPDF converts the document at path and returns the path of the produced
// PDF inside outputDir. Callers own cleanup of the output file.
func (c *Converter) ToPDF(ctx context.Context, path, outputDir string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("source file not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary,
		"--headless", "--convert-to", "pdf", "--outdir", outputDir, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("libreoffice conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	converted := filepath.Join(outputDir, base+".pdf")
	if _, err := os.Stat(converted); err != nil {
		return "", fmt.Errorf("converted PDF not found at %s: %w", converted, err)
	}

	return converted, nil
}

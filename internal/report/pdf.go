// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontSize   = 12
	pdfLineHeight = 10
	pdfMargin     = 15
)

// StripNonASCII removes emoji and every other character outside printable
// ASCII, keeping tabs and line breaks. The PDF core fonts cannot encode them.
func StripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r >= 0x20 && r < 0x7f:
			return r
		default:
			return -1
		}
	}, s)
}

// ExportPDF writes markdown to pdfPath as plain text, one paragraph per line.
func ExportPDF(markdown, pdfPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pdf.SetFont("Arial", "", pdfFontSize)

	clean := StripNonASCII(strings.ReplaceAll(markdown, "\r\n", "\n"))
	for _, line := range strings.Split(clean, "\n") {
		pdf.MultiCell(0, pdfLineHeight, line, "", "", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", pdfPath, err)
	}
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	return nil
}

// ExportPDFFile reads a markdown file and exports it to pdfPath.
func ExportPDFFile(markdownPath, pdfPath string) error {
	data, err := os.ReadFile(markdownPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", markdownPath, err)
	}
	return ExportPDF(string(data), pdfPath)
}

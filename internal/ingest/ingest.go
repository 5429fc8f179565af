// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads narration text from uploaded or local files.
// Plain text, markdown and PDF files are supported.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupported is returned for file types that cannot be read as text.
var ErrUnsupported = errors.New("unsupported file type")

// Extensions lists the accepted file extensions, lowercase with the dot.
var Extensions = []string{".txt", ".md", ".pdf"}

// Allowed reports whether name has an accepted extension.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadText returns the text content of the file at path, dispatching on its
// extension.
func ReadText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return readPlain(path)
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%s: %w (allowed: %s)", filepath.Base(path), ErrUnsupported, strings.Join(Extensions, ", "))
	}
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", filepath.Base(path))
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading text from %s: %w", path, err)
	}
	return buf.String(), nil
}

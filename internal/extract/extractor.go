// Package extract provides plain-text extraction from uploaded document files.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Errors the HTTP layer maps to client-side (400) responses.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type, supported: PDF, DOC, DOCX, TXT")
	ErrNoText            = errors.New("no text could be extracted from the file")
)

// Extractor extracts plain text from uploaded document bytes.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of the named file. Dispatch is by
// filename extension only; content is never sniffed. Returns
// ErrUnsupportedFormat for unknown extensions and ErrNoText when
// extraction succeeds but yields no usable text.
func (e *Extractor) Extract(content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(content)
	case ".doc", ".docx":
		text, err = extractWord(content, ext)
	case ".txt":
		text, err = extractPlain(content)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

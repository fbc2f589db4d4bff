package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/lu4p/cat"
)

// docxDocumentXMLPath is the path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> including attributed forms such as
// <w:t xml:space="preserve">.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractWord handles .doc and .docx uploads. DOCX is a ZIP containing
// word/document.xml (OOXML); all <w:t> text nodes are collected so the
// content survives regardless of paragraph or run attributes. Legacy
// .doc files and DOCX packages without a readable document body go
// through lu4p/cat.
func extractWord(content []byte, ext string) (string, error) {
	if ext == ".docx" {
		if text, err := extractDocx(content); err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	text, err := extractWithCat(content, ext)
	if err != nil {
		return "", fmt.Errorf("read word document: %w", err)
	}
	return text, nil
}

// extractWithCat stages the upload in a temporary file so lu4p/cat can
// dispatch on the extension. The service never keeps documents, so the
// file is removed as soon as extraction returns.
func extractWithCat(content []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "kaiwa-*"+ext)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	return cat.File(tmp.Name())
}

// extractDocx extracts the inner text of all <w:t> nodes in the main
// document part, joined with spaces.
func extractDocx(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("not a zip: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("%s not found", docxDocumentXMLPath)
	}

	parts := wtTag.FindAllStringSubmatch(string(docXML), -1)
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(p[1]))
	}
	return strings.TrimSpace(b.String()), nil
}

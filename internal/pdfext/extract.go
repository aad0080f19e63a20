// Package pdfext extracts plain text from uploaded PDF documents.
package pdfext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned for PDFs with no extractable text, such as
// scanned images.
var ErrNoText = errors.New("pdf: no extractable text")

// MaxFileSize bounds uploads at 10 MB.
const MaxFileSize = 10 << 20

// ExtractText reads a PDF from r and returns its plain text.
func ExtractText(r io.ReaderAt, size int64) (string, error) {
	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("pdf: open: %w", err)
	}

	var buf bytes.Buffer
	reader, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf: extract: %w", err)
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("pdf: read: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

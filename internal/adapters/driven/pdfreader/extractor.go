// Package pdfreader extracts plain text from PDF payloads using the
// ledongthuc/pdf library.
package pdfreader

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/feynlab/contextcore/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PDFExtractor = (*Extractor)(nil)

// Extractor reads PDF text page by page.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the plain text of each page in order.
// Pages that cannot be decoded are skipped rather than failing the whole
// document; an unreadable file fails on open.
func (e *Extractor) ExtractPages(_ context.Context, data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}

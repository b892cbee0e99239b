package driven

import "context"

// PDFExtractor pulls plain text out of a PDF payload.
type PDFExtractor interface {
	// ExtractPages returns one string per page, in page order.
	// Pages that yield no text may be omitted.
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}

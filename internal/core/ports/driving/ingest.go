package driving

import "context"

// IngestResult is the outcome of a successful ingestion run.
type IngestResult struct {
	// SessionID is the freshly generated key of the stored material.
	SessionID string

	// SourceText is the normalised (and possibly truncated) source text,
	// kept for downstream concept extraction.
	SourceText string

	// ChunkCount is the number of embedded chunks stored.
	ChunkCount int

	// JargonWords is the extracted technical vocabulary, at most 30
	// terms, ordered by descending frequency score.
	JargonWords []string
}

// Ingestor converts one raw source document into a persisted, chunked,
// embedded material record.
//
// Both variants either complete fully or fail without storing anything.
// Failures are returned as errors classified by the domain sentinels;
// no panic crosses the pipeline boundary.
type Ingestor interface {
	// IngestURL scrapes a web page and ingests its readable text.
	// The URL is validated before any network call is made.
	IngestURL(ctx context.Context, rawURL, topic string) (*IngestResult, error)

	// IngestPDF extracts text from a PDF payload and ingests it.
	// Payloads over domain.MaxPDFUploadBytes are rejected.
	IngestPDF(ctx context.Context, data []byte, topic string) (*IngestResult, error)
}

package domain

import "time"

// SourceType identifies how a source material was obtained.
type SourceType string

const (
	// SourceTypeURL marks material scraped from a web page.
	SourceTypeURL SourceType = "url"

	// SourceTypePDF marks material extracted from an uploaded PDF.
	SourceTypePDF SourceType = "pdf"
)

// Chunk is a bounded substring of source text paired with its embedding
// vector and stable position within the source.
// Chunks are immutable once created and owned by their parent SourceMaterial.
type Chunk struct {
	// Text is the chunk content. Never empty in a stored record.
	Text string

	// Embedding is the vector representation produced by the embedding
	// service. All chunks of one material share the same dimensionality.
	Embedding []float32

	// Index is the 0-based position within the source.
	// Invariant: material.Chunks[i].Index == i.
	Index int
}

// SourceMaterial is one ingested source document: the full chunk set with
// embeddings plus the jargon vocabulary extracted from the raw text.
// It is written exactly once per session and treated as append-only after
// creation.
type SourceMaterial struct {
	// SessionID is the unique key for the material, generated at ingestion.
	SessionID string

	// Topic is the user-supplied subject of the study session.
	Topic string

	// SourceType records which ingestion pipeline produced the material.
	SourceType SourceType

	// SourceURL is the origin URL for scraped material. Empty for PDFs.
	SourceURL string

	// Chunks holds the embedded chunks in creation order.
	Chunks []Chunk

	// JargonWords is the technical vocabulary of the source, ordered by
	// descending frequency score.
	JargonWords []string

	// CreatedAt is when ingestion completed.
	CreatedAt time.Time
}

// SimilarityResult is a single ranked retrieval hit. It is derived from a
// Chunk and a query vector at retrieval time and never persisted.
type SimilarityResult struct {
	// Text is the matched chunk content.
	Text string

	// Similarity is the cosine similarity score, clamped to [0,1].
	Similarity float64

	// Index is the chunk's original position within its material.
	Index int
}

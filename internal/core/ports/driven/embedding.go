package driven

import "context"

// EmbeddingService turns text into fixed-length vectors.
//
// The service is external and may fail transiently; pipelines retry a
// failed call exactly once before giving up. All vectors produced by one
// service instance share the same dimensionality.
//
// Implementations include OpenAI (text-embedding-3-small) and Ollama
// (nomic-embed-text).
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model in use.
	ModelName() string

	// Ping makes a lightweight request to verify the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

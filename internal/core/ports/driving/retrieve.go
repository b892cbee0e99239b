package driving

import (
	"context"

	"github.com/feynlab/contextcore/internal/core/domain"
)

// Retriever finds the stored chunks most semantically relevant to a
// free-text query.
type Retriever interface {
	// Retrieve embeds the query, ranks every chunk of the session's
	// material by cosine similarity, and returns the k best in
	// descending order. If k is not positive the default of 5 applies.
	// Fewer results are returned when the material has fewer chunks.
	Retrieve(ctx context.Context, sessionID, query string, k int) ([]domain.SimilarityResult, error)
}

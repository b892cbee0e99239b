// Package similarity ranks stored chunks against a query vector using
// cosine similarity. Scores are clamped to [0,1]; ranking is a stable
// descending sort so ties keep their original chunk order.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/feynlab/contextcore/internal/core/domain"
)

// DefaultTopK is the number of results returned when no explicit k is
// given. No minimum-similarity threshold is applied: low-scoring chunks
// are still returned and the caller decides whether scores are usable.
const DefaultTopK = 5

// Cosine computes the cosine similarity of two vectors.
//
// An empty vector on either side yields 0: a missing embedding has no
// direction, so it is treated as maximally dissimilar rather than an
// error. Vectors of unequal length indicate embedding-model version skew
// and fail with domain.ErrDimensionMismatch. A zero-norm vector also
// yields 0. The result is clamped to [0,1] to absorb floating-point
// overshoot.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0, nil
	}
	if sim > 1 {
		return 1, nil
	}
	return sim, nil
}

// TopK scores every chunk against the query vector and returns the k
// highest, sorted by descending similarity. If k is not positive,
// DefaultTopK is used. Fewer than k results are returned when the
// material has fewer chunks.
func TopK(query []float32, chunks []domain.Chunk, k int) ([]domain.SimilarityResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	results := make([]domain.SimilarityResult, 0, len(chunks))
	for _, chunk := range chunks {
		sim, err := Cosine(query, chunk.Embedding)
		if err != nil {
			return nil, fmt.Errorf("scoring chunk %d: %w", chunk.Index, err)
		}
		results = append(results, domain.SimilarityResult{
			Text:       chunk.Text,
			Similarity: sim,
			Index:      chunk.Index,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

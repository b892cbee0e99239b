package similarity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feynlab/contextcore/internal/core/domain"
)

func TestCosineIdenticalVectors(t *testing.T) {
	sim, err := Cosine([]float32{0.3, 0.5, 0.2}, []float32{0.3, 0.5, 0.2})

	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineOrthogonalVectors(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})

	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosineClampsNegativeScores(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{-1, 0})

	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosineEmptyVector(t *testing.T) {
	sim, err := Cosine(nil, []float32{1, 2})

	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosineZeroNormVector(t *testing.T) {
	sim, err := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})

	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosineDimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2, 3}, []float32{1, 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// rankedChunks builds chunks whose similarity to the query [1,0] strictly
// decreases with their index, supplied in shuffled order.
func rankedChunks() []domain.Chunk {
	chunks := make([]domain.Chunk, 0, 7)
	for _, i := range []int{3, 0, 6, 2, 5, 1, 4} {
		chunks = append(chunks, domain.Chunk{
			Text:      fmt.Sprintf("chunk %d", i),
			Embedding: []float32{1, float32(i)},
			Index:     i,
		})
	}
	return chunks
}

func TestTopKReturnsBestFiveByDefault(t *testing.T) {
	results, err := TopK([]float32{1, 0}, rankedChunks(), 0)

	require.NoError(t, err)
	require.Len(t, results, DefaultTopK)
	for i, result := range results {
		assert.Equal(t, i, result.Index, "results come back in rank order")
		if i > 0 {
			assert.Less(t, result.Similarity, results[i-1].Similarity)
		}
	}
}

func TestTopKHonoursExplicitK(t *testing.T) {
	results, err := TopK([]float32{1, 0}, rankedChunks(), 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "chunk 0", results[0].Text)
	assert.Equal(t, "chunk 1", results[1].Text)
}

func TestTopKFewerChunksThanK(t *testing.T) {
	chunks := []domain.Chunk{
		{Text: "only", Embedding: []float32{1, 0}, Index: 0},
	}

	results, err := TopK([]float32{1, 0}, chunks, 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}

func TestTopKNoChunks(t *testing.T) {
	results, err := TopK([]float32{1, 0}, nil, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTopKPropagatesDimensionMismatch(t *testing.T) {
	chunks := []domain.Chunk{
		{Text: "bad", Embedding: []float32{1, 0, 0}, Index: 0},
	}

	_, err := TopK([]float32{1, 0}, chunks, 5)

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestTopKTreatsMissingEmbeddingAsZero(t *testing.T) {
	chunks := []domain.Chunk{
		{Text: "present", Embedding: []float32{1, 0}, Index: 0},
		{Text: "missing", Index: 1},
	}

	results, err := TopK([]float32{1, 0}, chunks, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "present", results[0].Text)
	assert.Zero(t, results[1].Similarity)
}

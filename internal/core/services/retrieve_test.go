package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feynlab/contextcore/internal/core/domain"
)

// seededStore returns a store holding one material whose chunk
// similarity to the query vector [1,0] strictly decreases with index.
func seededStore(sessionID string, chunkCount int) *recordingStore {
	chunks := make([]domain.Chunk, 0, chunkCount)
	for i := 0; i < chunkCount; i++ {
		chunks = append(chunks, domain.Chunk{
			Text:      fmt.Sprintf("chunk %d", i),
			Embedding: []float32{1, float32(i)},
			Index:     i,
		})
	}
	return &recordingStore{material: &domain.SourceMaterial{
		SessionID:  sessionID,
		Topic:      "testing",
		SourceType: domain.SourceTypeURL,
		Chunks:     chunks,
		CreatedAt:  time.Now(),
	}}
}

func newRetrievalService(embedder *stubEmbedder, store *recordingStore, opts ...RetrieveOption) *RetrievalService {
	opts = append([]RetrieveOption{WithRetrieveRetryDelay(0)}, opts...)
	return NewRetrievalService(embedder, store, opts...)
}

func TestRetrieveRejectsEmptySessionID(t *testing.T) {
	svc := newRetrievalService(&stubEmbedder{}, &recordingStore{})

	_, err := svc.Retrieve(context.Background(), "  ", "what is a goroutine?", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieveRejectsEmptyQuery(t *testing.T) {
	svc := newRetrievalService(&stubEmbedder{}, &recordingStore{})

	_, err := svc.Retrieve(context.Background(), "session-1", "   ", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieveUnknownSession(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, &recordingStore{})

	_, err := svc.Retrieve(context.Background(), "missing-session", "query", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "missing-session")
}

func TestRetrieveEmbeddingFailureAfterRetry(t *testing.T) {
	embedder := &stubEmbedder{failures: 1 << 30}
	svc := newRetrievalService(embedder, seededStore("session-1", 3))

	_, err := svc.Retrieve(context.Background(), "session-1", "query", 0)

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Equal(t, 2, embedder.calls)
}

func TestRetrieveRetriesEmbeddingOnce(t *testing.T) {
	embedder := &stubEmbedder{failures: 1, vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, seededStore("session-1", 3))

	results, err := svc.Retrieve(context.Background(), "session-1", "query", 0)

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 2, embedder.calls)
}

func TestRetrieveReturnsTopFiveByDefault(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, seededStore("session-1", 7))

	results, err := svc.Retrieve(context.Background(), "session-1", "query", 0)

	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, i, result.Index)
		if i > 0 {
			assert.Less(t, result.Similarity, results[i-1].Similarity)
		}
	}
}

func TestRetrieveHonoursExplicitK(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, seededStore("session-1", 7))

	results, err := svc.Retrieve(context.Background(), "session-1", "query", 3)

	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRetrieveConfiguredDefaultK(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, seededStore("session-1", 7), WithDefaultTopK(2))

	results, err := svc.Retrieve(context.Background(), "session-1", "query", 0)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetrieveFewerChunksThanK(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	svc := newRetrievalService(embedder, seededStore("session-1", 2))

	results, err := svc.Retrieve(context.Background(), "session-1", "query", 5)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetrievePersistenceFailure(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	store := &recordingStore{findErr: fmt.Errorf("database locked")}
	svc := newRetrievalService(embedder, store)

	_, err := svc.Retrieve(context.Background(), "session-1", "query", 0)

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

package services

import (
	"context"
	"time"

	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/logger"
)

// EmbedRetryDelay is the fixed backoff before the single retry of a
// failed embedding call.
const EmbedRetryDelay = time.Second

// embedWithRetry calls the embedding service and, on failure, retries
// exactly once after the given delay. The second failure is returned to
// the caller. Context cancellation interrupts the backoff wait.
func embedWithRetry(ctx context.Context, embedder driven.EmbeddingService, text string, delay time.Duration) ([]float32, error) {
	vector, err := embedder.Embed(ctx, text)
	if err == nil {
		return vector, nil
	}

	logger.Warn("Embedding call failed, retrying in %s: %v", delay, err)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	return embedder.Embed(ctx, text)
}

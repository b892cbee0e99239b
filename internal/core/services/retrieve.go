package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/core/ports/driving"
	"github.com/feynlab/contextcore/internal/logger"
	"github.com/feynlab/contextcore/internal/similarity"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// RetrievalService ranks a session's stored chunks against a free-text
// query: one embedding call for the query, cosine similarity against
// every chunk, stable descending sort, top k.
type RetrievalService struct {
	embedder    driven.EmbeddingService
	store       driven.MaterialStore
	retryDelay  time.Duration
	defaultTopK int
}

// RetrieveOption configures a RetrievalService.
type RetrieveOption func(*RetrievalService)

// WithRetrieveRetryDelay overrides the embedding retry backoff.
// Used in tests.
func WithRetrieveRetryDelay(delay time.Duration) RetrieveOption {
	return func(s *RetrievalService) {
		if delay >= 0 {
			s.retryDelay = delay
		}
	}
}

// WithDefaultTopK sets the result count used when callers pass no
// explicit k.
func WithDefaultTopK(k int) RetrieveOption {
	return func(s *RetrievalService) {
		if k > 0 {
			s.defaultTopK = k
		}
	}
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, store driven.MaterialStore, opts ...RetrieveOption) *RetrievalService {
	s := &RetrievalService{
		embedder:    embedder,
		store:       store,
		retryDelay:  EmbedRetryDelay,
		defaultTopK: similarity.DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrieve returns the k stored chunks most similar to the query.
func (s *RetrievalService) Retrieve(ctx context.Context, sessionID, query string, k int) ([]domain.SimilarityResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Session: %s, query: %q", sessionID, query)

	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is empty", domain.ErrInvalidInput)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	vector, err := embedWithRetry(ctx, s.embedder, query, s.retryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %v", domain.ErrEmbeddingUnavailable, err)
	}

	material, err := s.store.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no source material for session %s", domain.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if k <= 0 {
		k = s.defaultTopK
	}
	results, err := similarity.TopK(vector, material.Chunks, k)
	if err != nil {
		return nil, err
	}
	logger.Info("Ranked %d chunks, returning %d", len(material.Chunks), len(results))

	return results, nil
}

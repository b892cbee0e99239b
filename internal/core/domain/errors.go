package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched with
// errors.Is at pipeline boundaries to classify failures for the user.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Source materials are written exactly once per session id.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input: a bad URL,
	// a disallowed scheme or host, or an oversized upload. Detected before
	// any network or parsing work and never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates the source document could not be
	// fetched or yielded no extractable content.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service failed.
	// Embedding calls are retried exactly once before this becomes
	// terminal for the pipeline run.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrPersistence indicates a store read or write failed.
	// Persistence failures are surfaced as-is, without retry.
	ErrPersistence = errors.New("persistence failure")

	// ErrDimensionMismatch indicates similarity was computed over vectors
	// of unequal length. This is an embedding-model version skew bug
	// upstream, not a user-facing condition.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

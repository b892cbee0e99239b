package driven

import (
	"context"

	"github.com/feynlab/contextcore/internal/core/domain"
)

// MaterialStore persists source materials.
//
// A material is written exactly once per session id and is never
// partially written: Insert stores the complete record, chunks and
// embeddings included, or fails without side effects. The store provides
// read-your-writes consistency for a single session id.
type MaterialStore interface {
	// Insert stores a complete material. Fails with
	// domain.ErrAlreadyExists if the session id is taken.
	Insert(ctx context.Context, material *domain.SourceMaterial) error

	// FindBySessionID retrieves a material with its chunks in index
	// order. Fails with domain.ErrNotFound if absent.
	FindBySessionID(ctx context.Context, sessionID string) (*domain.SourceMaterial, error)

	// List returns all stored materials, most recent first.
	List(ctx context.Context) ([]domain.SourceMaterial, error)

	// Delete removes a material and its chunks.
	Delete(ctx context.Context, sessionID string) error
}

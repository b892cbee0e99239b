// Package memory provides an in-memory MaterialStore, used in tests and
// by the --memory flag for throwaway sessions.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
)

// Ensure MaterialStore implements the interface.
var _ driven.MaterialStore = (*MaterialStore)(nil)

// MaterialStore is an in-memory implementation of driven.MaterialStore.
type MaterialStore struct {
	mu        sync.RWMutex
	materials map[string]domain.SourceMaterial
}

// NewMaterialStore creates a new in-memory material store.
func NewMaterialStore() *MaterialStore {
	return &MaterialStore{
		materials: make(map[string]domain.SourceMaterial),
	}
}

// Insert stores a complete material. The record is copied so later
// mutation by the caller cannot affect the stored state.
func (s *MaterialStore) Insert(_ context.Context, material *domain.SourceMaterial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.materials[material.SessionID]; ok {
		return domain.ErrAlreadyExists
	}
	s.materials[material.SessionID] = copyMaterial(material)
	return nil
}

// FindBySessionID retrieves a material with its chunks in index order.
func (s *MaterialStore) FindBySessionID(_ context.Context, sessionID string) (*domain.SourceMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.materials[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := copyMaterial(&material)
	return &found, nil
}

// List returns all stored materials, most recent first.
func (s *MaterialStore) List(_ context.Context) ([]domain.SourceMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SourceMaterial, 0, len(s.materials))
	for id := range s.materials {
		material := s.materials[id]
		result = append(result, copyMaterial(&material))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a material and its chunks.
func (s *MaterialStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.materials[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.materials, sessionID)
	return nil
}

// copyMaterial makes a deep copy of a material's slices.
func copyMaterial(m *domain.SourceMaterial) domain.SourceMaterial {
	out := *m
	if m.Chunks != nil {
		out.Chunks = make([]domain.Chunk, len(m.Chunks))
		for i, chunk := range m.Chunks {
			out.Chunks[i] = chunk
			if chunk.Embedding != nil {
				out.Chunks[i].Embedding = append([]float32(nil), chunk.Embedding...)
			}
		}
	}
	if m.JargonWords != nil {
		out.JargonWords = append([]string(nil), m.JargonWords...)
	}
	return out
}

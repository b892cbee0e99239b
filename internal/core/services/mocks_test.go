package services

import (
	"context"
	"fmt"

	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
)

// Hand-rolled stubs for the driven ports. Each records enough call state
// for the pipeline tests to assert ordering and call counts.

var (
	_ driven.PageFetcher      = (*stubFetcher)(nil)
	_ driven.PDFExtractor     = (*stubPDFExtractor)(nil)
	_ driven.EmbeddingService = (*stubEmbedder)(nil)
	_ driven.MaterialStore    = (*recordingStore)(nil)
)

type stubFetcher struct {
	page  string
	err   error
	calls int
}

func (f *stubFetcher) FetchPage(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.page, nil
}

type stubPDFExtractor struct {
	pages []string
	err   error
	calls int
}

func (e *stubPDFExtractor) ExtractPages(_ context.Context, _ []byte) ([]string, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.pages, nil
}

// stubEmbedder fails its first `failures` calls, then succeeds. When
// vector is set it is returned verbatim; otherwise a deterministic
// 3-dimensional vector derived from the text length is used.
type stubEmbedder struct {
	failures int
	vector   []float32
	calls    int
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.calls <= e.failures {
		return nil, fmt.Errorf("embedding backend unavailable (call %d)", e.calls)
	}
	if e.vector != nil {
		return append([]float32(nil), e.vector...), nil
	}
	return []float32{1, float32(len(text)), 0}, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (e *stubEmbedder) Dimensions() int { return 3 }

func (e *stubEmbedder) ModelName() string { return "stub-embedder" }

func (e *stubEmbedder) Ping(context.Context) error { return nil }

func (e *stubEmbedder) Close() error { return nil }

// recordingStore captures the inserted material and serves a single
// pre-seeded one.
type recordingStore struct {
	insertErr error
	inserted  *domain.SourceMaterial
	material  *domain.SourceMaterial
	findErr   error
}

func (s *recordingStore) Insert(_ context.Context, material *domain.SourceMaterial) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = material
	return nil
}

func (s *recordingStore) FindBySessionID(_ context.Context, sessionID string) (*domain.SourceMaterial, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.material == nil || s.material.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return s.material, nil
}

func (s *recordingStore) List(context.Context) ([]domain.SourceMaterial, error) {
	if s.material == nil {
		return nil, nil
	}
	return []domain.SourceMaterial{*s.material}, nil
}

func (s *recordingStore) Delete(_ context.Context, sessionID string) error {
	if s.material == nil || s.material.SessionID != sessionID {
		return domain.ErrNotFound
	}
	s.material = nil
	return nil
}

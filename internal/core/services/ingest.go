package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/core/ports/driving"
	"github.com/feynlab/contextcore/internal/jargon"
	"github.com/feynlab/contextcore/internal/logger"
	htmlnorm "github.com/feynlab/contextcore/internal/normalisers/html"
	pdfnorm "github.com/feynlab/contextcore/internal/normalisers/pdf"
	"github.com/feynlab/contextcore/internal/segmenter"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs the ingestion pipelines: validate, obtain raw text,
// normalise, segment, embed, extract jargon, persist. A run either
// completes fully or fails without storing anything.
type IngestService struct {
	fetcher    driven.PageFetcher
	extractor  driven.PDFExtractor
	embedder   driven.EmbeddingService
	store      driven.MaterialStore
	seg        *segmenter.Segmenter
	terms      *jargon.Extractor
	retryDelay time.Duration
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithSegmenter replaces the default segmenter (1000-char chunks with a
// 200-char overlap).
func WithSegmenter(seg *segmenter.Segmenter) IngestOption {
	return func(s *IngestService) {
		if seg != nil {
			s.seg = seg
		}
	}
}

// WithJargonExtractor replaces the default jargon extractor (30 terms).
func WithJargonExtractor(extractor *jargon.Extractor) IngestOption {
	return func(s *IngestService) {
		if extractor != nil {
			s.terms = extractor
		}
	}
}

// WithRetryDelay overrides the embedding retry backoff. Used in tests.
func WithRetryDelay(delay time.Duration) IngestOption {
	return func(s *IngestService) {
		if delay >= 0 {
			s.retryDelay = delay
		}
	}
}

// NewIngestService creates an ingestion service.
func NewIngestService(
	fetcher driven.PageFetcher,
	extractor driven.PDFExtractor,
	embedder driven.EmbeddingService,
	store driven.MaterialStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		fetcher:    fetcher,
		extractor:  extractor,
		embedder:   embedder,
		store:      store,
		seg:        segmenter.New(),
		terms:      jargon.New(),
		retryDelay: EmbedRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestURL scrapes a web page and ingests its readable text.
func (s *IngestService) IngestURL(ctx context.Context, rawURL, topic string) (*driving.IngestResult, error) {
	logger.Section("URL Ingestion")
	logger.Debug("URL: %s", rawURL)

	// Validation happens before any network work.
	if err := domain.ValidateSourceURL(rawURL); err != nil {
		return nil, err
	}

	page, err := s.fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	text := htmlnorm.ExtractText(page)
	logger.Debug("Extracted %d bytes of text", len(text))

	return s.ingestText(ctx, text, topic, rawURL, domain.SourceTypeURL)
}

// IngestPDF extracts text from a PDF payload and ingests it.
func (s *IngestService) IngestPDF(ctx context.Context, data []byte, topic string) (*driving.IngestResult, error) {
	logger.Section("PDF Ingestion")
	logger.Debug("Payload: %d bytes", len(data))

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty PDF payload", domain.ErrInvalidInput)
	}
	if len(data) > domain.MaxPDFUploadBytes {
		return nil, fmt.Errorf("%w: PDF exceeds %d bytes", domain.ErrInvalidInput, domain.MaxPDFUploadBytes)
	}

	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read PDF: %v", domain.ErrSourceUnavailable, err)
	}

	text := pdfnorm.JoinPages(pages)
	logger.Debug("Extracted %d pages, %d bytes of text", len(pages), len(text))

	return s.ingestText(ctx, text, topic, "", domain.SourceTypePDF)
}

// ingestText is the shared tail of both pipelines: normalise, segment,
// embed sequentially in index order, extract jargon, persist once.
func (s *IngestService) ingestText(ctx context.Context, text, topic, sourceURL string, sourceType domain.SourceType) (*driving.IngestResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: no extractable content", domain.ErrSourceUnavailable)
	}
	if len(text) > domain.MaxSourceTextLen {
		text = strings.TrimSpace(truncateUTF8(text, domain.MaxSourceTextLen))
		logger.Debug("Truncated source text to %d bytes", len(text))
	}

	pieces := s.seg.Segment(text)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: no chunks produced from source text", domain.ErrSourceUnavailable)
	}
	logger.Info("Segmented into %d chunks", len(pieces))

	// Embedding is strictly sequential and index-ordered. This bounds
	// concurrent load on the embedding service to one request and keeps
	// retry accounting per chunk deterministic. Any chunk exhausting its
	// single retry aborts the whole run before anything is stored.
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		vector, err := embedWithRetry(ctx, s.embedder, piece, s.retryDelay)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d of %d: %v", domain.ErrEmbeddingUnavailable, i+1, len(pieces), err)
		}
		chunks = append(chunks, domain.Chunk{Text: piece, Embedding: vector, Index: i})
		logger.Debug("Embedded chunk %d/%d (%d dims)", i+1, len(pieces), len(vector))
	}

	words := s.terms.Extract(text)
	logger.Debug("Extracted %d jargon terms", len(words))

	material := &domain.SourceMaterial{
		SessionID:   uuid.New().String(),
		Topic:       topic,
		SourceType:  sourceType,
		SourceURL:   sourceURL,
		Chunks:      chunks,
		JargonWords: words,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Insert(ctx, material); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	logger.Info("Stored material %s with %d chunks", material.SessionID, len(chunks))

	return &driving.IngestResult{
		SessionID:   material.SessionID,
		SourceText:  text,
		ChunkCount:  len(chunks),
		JargonWords: words,
	}, nil
}

// truncateUTF8 cuts text to at most limit bytes without splitting a rune.
func truncateUTF8(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	file "github.com/feynlab/contextcore/internal/adapters/driven/config/file"
	"github.com/feynlab/contextcore/internal/adapters/driven/embedding/ollama"
	"github.com/feynlab/contextcore/internal/adapters/driven/embedding/openai"
	"github.com/feynlab/contextcore/internal/adapters/driven/fetch"
	"github.com/feynlab/contextcore/internal/adapters/driven/pdfreader"
	"github.com/feynlab/contextcore/internal/adapters/driven/storage/memory"
	"github.com/feynlab/contextcore/internal/adapters/driven/storage/sqlite"
	"github.com/feynlab/contextcore/internal/adapters/driving/cli"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/core/services"
	"github.com/feynlab/contextcore/internal/segmenter"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewStore(os.Getenv("CONTEXTCORE_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg := configStore.Config()

	store, closeStore, err := buildMaterialStore()
	if err != nil {
		return fmt.Errorf("opening material store: %w", err)
	}
	defer closeStore()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("configuring embedding service: %w", err)
	}
	defer embedder.Close() //nolint:errcheck

	seg := segmenter.New(
		segmenter.WithMaxChunkSize(cfg.Segmenter.MaxChunkSize),
		segmenter.WithOverlap(cfg.Segmenter.Overlap),
	)

	ingestor := services.NewIngestService(
		fetch.New(),
		pdfreader.New(),
		embedder,
		store,
		services.WithSegmenter(seg),
	)
	retriever := services.NewRetrievalService(embedder, store,
		services.WithDefaultTopK(cfg.Retrieval.TopK))

	cli.SetIngestor(ingestor)
	cli.SetRetriever(retriever)
	cli.SetMaterialStore(store)
	cli.SetConfigStore(configStore)

	return cli.Execute()
}

// buildMaterialStore opens the SQLite store, or an in-memory one when
// CONTEXTCORE_MEMORY is set (throwaway sessions, mostly for demos).
func buildMaterialStore() (driven.MaterialStore, func(), error) {
	if os.Getenv("CONTEXTCORE_MEMORY") != "" {
		return memory.NewMaterialStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(os.Getenv("CONTEXTCORE_DATA_DIR"))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// buildEmbedder constructs the configured embedding provider.
// OPENAI_API_KEY in the environment overrides the stored key.
func buildEmbedder(cfg file.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	case "", "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			apiKey = cfg.Embedding.APIKey
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.Embedding.BaseURL,
			Model:             cfg.Embedding.Model,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

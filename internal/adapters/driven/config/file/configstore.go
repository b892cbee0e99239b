// Package file provides the TOML configuration store.
// Configuration lives in config.toml inside the contextcore config
// directory and covers the embedding provider plus pipeline tunables.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/feynlab/contextcore/internal/segmenter"
	"github.com/feynlab/contextcore/internal/similarity"
)

// Config is the persisted application configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Segmenter SegmenterConfig `toml:"segmenter"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`

	// APIKey authenticates against the provider (OpenAI only).
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// RequestsPerSecond throttles outbound embedding calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SegmenterConfig tunes text chunking.
type SegmenterConfig struct {
	MaxChunkSize int `toml:"max_chunk_size"`
	Overlap      int `toml:"overlap"`
}

// RetrievalConfig tunes retrieval.
type RetrievalConfig struct {
	// TopK is the default number of results. There is deliberately no
	// minimum-similarity threshold: low-scoring chunks are returned and
	// the caller decides whether they are usable.
	TopK int `toml:"top_k"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{Provider: "openai"},
		Segmenter: SegmenterConfig{
			MaxChunkSize: segmenter.DefaultMaxChunkSize,
			Overlap:      segmenter.DefaultOverlap,
		},
		Retrieval: RetrievalConfig{TopK: similarity.DefaultTopK},
	}
}

// Store is a file-based configuration store using TOML.
type Store struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewStore creates a TOML config store.
// If configDir is empty, ~/.contextcore is used.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".contextcore")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Load reads the config file into memory. Missing fields keep their
// defaults.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.config = config
	return nil
}

// Save writes the in-memory config to disk. The file is mode 0600 since
// it may hold an API key.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration under the store lock.
// Call Save to persist the result.
func (s *Store) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.config)
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

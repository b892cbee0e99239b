// Package cli implements the contextcore command-line interface.
// Services are injected by main before Execute runs so commands stay
// testable with fakes.
package cli

import (
	"github.com/spf13/cobra"

	file "github.com/feynlab/contextcore/internal/adapters/driven/config/file"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/core/ports/driving"
	"github.com/feynlab/contextcore/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	ingestor      driving.Ingestor
	retriever     driving.Retriever
	materialStore driven.MaterialStore
	configStore   *file.Store
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "contextcore",
	Short: "Ingest study sources and retrieve relevant context",
	Long: `contextcore turns web pages and PDFs into searchable study material.

Sources are split into overlapping chunks, embedded, and stored per
session. Later, free-text explanations are matched against the stored
chunks by cosine similarity to surface the most relevant passages.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print pipeline debug output")
}

// SetIngestor injects the ingestion service.
func SetIngestor(s driving.Ingestor) {
	ingestor = s
}

// SetRetriever injects the retrieval service.
func SetRetriever(s driving.Retriever) {
	retriever = s
}

// SetMaterialStore injects the material store for session management.
func SetMaterialStore(s driven.MaterialStore) {
	materialStore = s
}

// SetConfigStore injects the configuration store.
func SetConfigStore(s *file.Store) {
	configStore = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

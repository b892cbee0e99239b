package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/feynlab/contextcore/internal/core/ports/driving"
)

var ingestTopic string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a source document into a new session",
}

var ingestURLCmd = &cobra.Command{
	Use:   "url [url]",
	Short: "Scrape a web page and ingest its readable text",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestURL,
}

var ingestPDFCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Extract text from a PDF file and ingest it",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestPDF,
}

func init() {
	ingestCmd.PersistentFlags().StringVarP(&ingestTopic, "topic", "t", "", "topic of the study session")
	ingestCmd.AddCommand(ingestURLCmd)
	ingestCmd.AddCommand(ingestPDFCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestURL(cmd *cobra.Command, args []string) error {
	if ingestor == nil {
		return errors.New("ingestion service not configured")
	}

	result, err := ingestor.IngestURL(context.Background(), args[0], ingestTopic)
	if err != nil {
		return fmt.Errorf("ingesting url: %w", err)
	}

	printIngestResult(cmd, result)
	return nil
}

func runIngestPDF(cmd *cobra.Command, args []string) error {
	if ingestor == nil {
		return errors.New("ingestion service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	result, err := ingestor.IngestPDF(context.Background(), data, ingestTopic)
	if err != nil {
		return fmt.Errorf("ingesting pdf: %w", err)
	}

	printIngestResult(cmd, result)
	return nil
}

func printIngestResult(cmd *cobra.Command, result *driving.IngestResult) {
	green := color.New(color.FgGreen).SprintFunc()
	cmd.Printf("%s Session %s\n", green("Ingested."), result.SessionID)
	cmd.Printf("  Chunks: %d\n", result.ChunkCount)
	if len(result.JargonWords) > 0 {
		cmd.Printf("  Jargon: %s\n", strings.Join(result.JargonWords, ", "))
	}
}

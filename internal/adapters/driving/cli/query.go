package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/feynlab/contextcore/internal/core/domain"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [session-id] [text]",
	Short: "Find the stored chunks most relevant to a text",
	Long: `Embeds the given text and ranks the session's stored chunks by
cosine similarity, returning the top matches in descending order.
No minimum score is applied; low-similarity chunks are still listed.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "limit", "k", 0, "number of results (default 5)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retriever == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retriever.Retrieve(context.Background(), args[0], args[1], queryTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryList(cmd, results)
}

func outputQueryJSON(cmd *cobra.Command, results []domain.SimilarityResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryList(cmd *cobra.Command, results []domain.SimilarityResult) error {
	if len(results) == 0 {
		cmd.Println("No chunks stored for this session.")
		return nil
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	for i, result := range results {
		cmd.Printf("%s chunk %d, similarity %.3f\n", cyan(fmt.Sprintf("[%d]", i+1)), result.Index, result.Similarity)
		cmd.Printf("    %s\n\n", snippet(result.Text, 200))
	}
	return nil
}

// snippet shortens chunk text for terminal display.
func snippet(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

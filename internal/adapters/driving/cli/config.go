package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	file "github.com/feynlab/contextcore/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage contextcore configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the embedding API key (prompted, not echoed)",
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value (provider, model, base-url)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Config()
	cmd.Printf("Config file: %s\n\n", configStore.Path())
	cmd.Printf("Embedding provider: %s\n", cfg.Embedding.Provider)
	cmd.Printf("Embedding model:    %s\n", valueOrDefault(cfg.Embedding.Model, "(provider default)"))
	cmd.Printf("Base URL:           %s\n", valueOrDefault(cfg.Embedding.BaseURL, "(provider default)"))
	cmd.Printf("API key:            %s\n", maskAPIKey(cfg.Embedding.APIKey))
	cmd.Printf("Chunk size:         %d\n", cfg.Segmenter.MaxChunkSize)
	cmd.Printf("Chunk overlap:      %d\n", cfg.Segmenter.Overlap)
	cmd.Printf("Top K:              %d\n", cfg.Retrieval.TopK)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	configStore.Update(func(cfg *file.Config) {
		cfg.Embedding.APIKey = key
	})
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Println("API key saved.")
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case "provider":
		if value != "openai" && value != "ollama" {
			return fmt.Errorf("unknown provider %q, use openai or ollama", value)
		}
		configStore.Update(func(cfg *file.Config) { cfg.Embedding.Provider = value })
	case "model":
		configStore.Update(func(cfg *file.Config) { cfg.Embedding.Model = value })
	case "base-url":
		configStore.Update(func(cfg *file.Config) { cfg.Embedding.BaseURL = value })
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}

// readPassword reads a line without echo when stdin is a terminal,
// falling back to plain input otherwise.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

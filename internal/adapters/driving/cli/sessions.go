package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored study sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show one session's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if materialStore == nil {
		return errors.New("material store not configured")
	}

	materials, err := materialStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(materials) == 0 {
		cmd.Println("No sessions stored.")
		return nil
	}

	for _, m := range materials {
		topic := m.Topic
		if topic == "" {
			topic = "(no topic)"
		}
		cmd.Printf("%s  %s  %s  %d chunks  %s\n",
			m.SessionID, m.SourceType, topic, len(m.Chunks),
			m.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	if materialStore == nil {
		return errors.New("material store not configured")
	}

	material, err := materialStore.FindBySessionID(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	cmd.Printf("Session:  %s\n", material.SessionID)
	cmd.Printf("Topic:    %s\n", material.Topic)
	cmd.Printf("Type:     %s\n", material.SourceType)
	if material.SourceURL != "" {
		cmd.Printf("URL:      %s\n", material.SourceURL)
	}
	cmd.Printf("Created:  %s\n", material.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Chunks:   %d\n", len(material.Chunks))
	if len(material.JargonWords) > 0 {
		cmd.Printf("Jargon:   %s\n", strings.Join(material.JargonWords, ", "))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	if materialStore == nil {
		return errors.New("material store not configured")
	}

	if err := materialStore.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}

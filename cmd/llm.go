package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mr-romero/desmos-code-hub/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Purpose: purpose,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-8s  %-19s  %-24s  %-28s  %-6s  %-6s  %-7s  %-9s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(strings.Repeat("─", 120))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-8s  %-19s  %-24s  %-28s  %-6d  %-6d  %-7d  $%-8.4f  %s\n",
				shortID(e.ID),
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				e.CostUSD,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		for _, e := range events {
			if e.ID != args[0] && shortID(e.ID) != args[0] {
				continue
			}
			fmt.Printf("ID:        %s\n", e.ID)
			fmt.Printf("Timestamp: %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Purpose:   %s\n", e.Purpose)
			fmt.Printf("Model:     %s\n", e.Model)
			fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:   %dms\n", e.LatencyMs)
			fmt.Printf("Cost:      $%.4f\n", e.CostUSD)
			if !e.Success {
				fmt.Printf("Error:     %s\n", e.ErrorMessage)
			}
			fmt.Printf("\n── Request ──\n%s\n", e.RequestBody)
			fmt.Printf("\n── Response ──\n%s\n", e.ResponseBody)
			return nil
		}
		return fmt.Errorf("no event with ID %q", args[0])
	},
}

// shortID trims a UUID to its first segment for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose label")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}

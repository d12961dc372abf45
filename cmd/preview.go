package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/mr-romero/desmos-code-hub/internal/authoring"
)

var (
	previewKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	previewCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8FAFC")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#334155")).
				Padding(0, 1)
)

var previewCmd = &cobra.Command{
	Use:   "preview <form.json>",
	Short: "Render the CL snippets for a saved question form (no database)",
	Long: `Render the snippets a question form would produce.

This is a stateless developer tool: it reads a form state JSON file, runs the
snippet renderer, and prints each snippet under its platform key. Nothing is
sent to an LLM and nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read form: %w", err)
	}

	var form authoring.FormState
	if err := json.Unmarshal(data, &form); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	if form.QuestionNumber < 1 {
		return fmt.Errorf("question_number must be at least 1")
	}

	for _, snip := range form.Snippets() {
		fmt.Println(previewKeyStyle.Render(snip.Key))
		fmt.Println(previewCodeStyle.Render(snip.Code))
		fmt.Println()
	}
	return nil
}

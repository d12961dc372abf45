package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mr-romero/desmos-code-hub/internal/analysis"
	"github.com/mr-romero/desmos-code-hub/internal/llm"
	"github.com/mr-romero/desmos-code-hub/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one math problem and print the normalized record",
	Long: `Run a single problem analysis from the command line.

Supply the problem as a screenshot (--image) or a text description (--text).
The normalized record (correct answer, explanation, 3 misconceptions) is
printed as JSON on stdout.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("image", "", "Path to a problem screenshot")
	analyzeCmd.Flags().String("text", "", "Problem description")
	analyzeCmd.Flags().String("type", "multiple_choice", "Question type: multiple_choice or equation")
	analyzeCmd.Flags().String("model", "", "Model override for the configured provider")
	analyzeCmd.Flags().String("instructions", "", "Replace the default system prompt")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	text, _ := cmd.Flags().GetString("text")
	qtype, _ := cmd.Flags().GetString("type")
	model, _ := cmd.Flags().GetString("model")
	instructions, _ := cmd.Flags().GetString("instructions")

	qt := analysis.QuestionType(qtype)
	if !qt.Valid() {
		return fmt.Errorf("invalid question type %q: must be multiple_choice or equation", qtype)
	}

	input := analysis.AnalyzeInput{
		QuestionType:   qt,
		PromptOverride: instructions,
		ProblemText:    text,
	}

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		input.Image = &llm.ImageAttachment{Data: data, MIMEType: mimeFromPath(imagePath)}
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := cmd.Context()

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return err
		}
		cfg = discovered
	}
	cfg = cfg.ModelOverride(model)

	provider, err := llm.NewProvider(ctx, cfg, s.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	analyzer := analysis.New(provider, analysis.DefaultConfig())
	rec, err := analyzer.Analyze(ctx, input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func mimeFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".gif"):
		return "image/gif"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	default:
		return "image/png"
	}
}

package analysis

// Config holds tunables for the analyzer.
type Config struct {
	// MaxTokens caps the response length. Explanations plus three
	// misconceptions fit comfortably under the default.
	MaxTokens int

	// Temperature for generation. Low but nonzero: the prose should vary
	// a little between drafts without drifting from the problem.
	Temperature float64

	// StructuredOutput requests the provider's native JSON mode. Disable
	// for models that reject response schemas; the normalizer handles the
	// free-text output either way.
	StructuredOutput bool
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        2000,
		Temperature:      0.3,
		StructuredOutput: true,
	}
}

package llm

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "openai with key",
			mutate:  func(c *Config) { c.OpenAI.APIKey = "sk-test" },
			wantErr: false,
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "anthropic without key",
			mutate: func(c *Config) {
				c.Provider = "anthropic"
			},
			wantErr: true,
		},
		{
			name: "mock needs no key",
			mutate: func(c *Config) {
				c.Provider = "mock"
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Provider = "llama-on-a-floppy"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestModelOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"

	got := cfg.ModelOverride("claude-opus")
	if got.Anthropic.Model != "claude-opus" {
		t.Errorf("override not applied: %q", got.Anthropic.Model)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("original config mutated: %q", cfg.Anthropic.Model)
	}

	// Empty override is a no-op.
	got = cfg.ModelOverride("")
	if got.Anthropic.Model != "claude-sonnet" {
		t.Errorf("empty override changed the model: %q", got.Anthropic.Model)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CODEHUB_LLM_PROVIDER", "gemini")
	t.Setenv("CODEHUB_GEMINI_API_KEY", "test-key")
	t.Setenv("CODEHUB_GEMINI_MODEL", "gemini-pro")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}

	// Unset knobs keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai default model = %q", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, key := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(key, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("no keys set: discovery should fail")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("discovery should find the anthropic key")
	}
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Errorf("discovered %q/%q", cfg.Provider, cfg.Anthropic.APIKey)
	}

	// OpenAI outranks Anthropic when both are present.
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Errorf("expected openai to win discovery, got %q", cfg.Provider)
	}
}

package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// keyEnv lists the standard API key variable of each provider, in discovery
// order.
var keyEnv = []struct{ provider, env string }{
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoints only
	Timeout  time.Duration
	Retry    RetryConfig
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults for provider.
func DefaultConfig(provider string) Config {
	return Config{
		Provider: provider,
		Model:    defaultModels[provider],
		Timeout:  60 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv resolves a Config. provider and model come from the
// application config and may be empty; JALUR_LLM_* variables override
// them. Without a provider, the first standard API key variable found
// decides. ok is false when no provider could be determined.
func ConfigFromEnv(provider, model string) (cfg Config, ok bool) {
	if p := os.Getenv("JALUR_LLM_PROVIDER"); p != "" {
		provider = p
	}
	if provider == "" {
		for _, k := range keyEnv {
			if os.Getenv(k.env) != "" {
				provider = k.provider
				break
			}
		}
	}
	if provider == "" {
		return Config{}, false
	}

	cfg = DefaultConfig(provider)
	if model != "" {
		cfg.Model = model
	}
	if m := os.Getenv("JALUR_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	for _, k := range keyEnv {
		if k.provider == provider {
			cfg.APIKey = os.Getenv(k.env)
		}
	}
	if key := os.Getenv("JALUR_LLM_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	cfg.BaseURL = os.Getenv("JALUR_LLM_BASE_URL")
	return cfg, true
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		env := "JALUR_LLM_API_KEY"
		for _, k := range keyEnv {
			if k.provider == c.Provider {
				env = k.env
			}
		}
		return fmt.Errorf("%s provider needs an API key: set %s or JALUR_LLM_API_KEY", c.Provider, env)
	}
	return nil
}

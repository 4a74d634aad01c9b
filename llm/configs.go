package llm

import (
	"os"

	"github.com/shopifake/catalog-search/errs"
)

type Config struct {
	// APIKey authenticates against the chat-completions API. Shared with the
	// embedding provider in the default deployment.
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`

	// BaseURL overrides the API endpoint for OpenAI-compatible gateways.
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`

	// Model is the chat model identifier.
	Model string `yaml:"model" env:"OPENAI_MODEL"`
}

// NewConfig reads the chat-completion configuration from environment
// variables.
func NewConfig() *Config {
	cfg := &Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return cfg
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errs.Configf("llm: missing OPENAI_API_KEY")
	}
	return nil
}

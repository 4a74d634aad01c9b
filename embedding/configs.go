package embedding

import (
	"os"

	"github.com/shopifake/catalog-search/errs"
)

type Config struct {
	// APIKey authenticates against the embeddings API.
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`

	// BaseURL overrides the API endpoint for OpenAI-compatible gateways.
	// Empty means the SDK default.
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`

	// Model is the embedding model identifier.
	Model string `yaml:"model" env:"OPENAI_EMBED_MODEL"`
}

// NewConfig reads the embedding configuration from environment variables.
func NewConfig() *Config {
	cfg := &Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_EMBED_MODEL"),
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	return cfg
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errs.Configf("embedding: missing OPENAI_API_KEY")
	}
	if c.Model == "" {
		return errs.Configf("embedding: missing OPENAI_EMBED_MODEL")
	}
	return nil
}

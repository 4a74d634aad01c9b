package httpapi

import "os"

// Config holds HTTP server settings.
type Config struct {
	// Address is the listen address of the API server.
	Address string
	// CORSOrigins restricts cross-origin access when non-empty. Empty means
	// allow any origin, matching the development posture of the storefront.
	CORSOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Address: ":8080",
	}
}

// NewConfig reads server settings from the environment, falling back to
// defaults for anything unset.
func NewConfig() *Config {
	cfg := DefaultConfig()

	if address := os.Getenv("HTTP_ADDRESS"); address != "" {
		cfg.Address = address
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitOrigins(origins)
	}

	return cfg
}

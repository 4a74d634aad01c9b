package logger

import "os"

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Minimum level that gets emitted. One of the constants above.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every log entry as a constant field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: os.Getenv("SERVICE_NAME"),
	}
	if cfg.Level == "" {
		cfg.Level = Info
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "catalog-search"
	}
	return cfg
}

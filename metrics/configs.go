package metrics

import "os"

type Config struct {
	// Address the /metrics HTTP server listens on.
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is attached to every metric as a constant label.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go, process, and build info
	// collectors alongside the service metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_DEFAULT_COLLECTORS"`
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		Address:                 os.Getenv("METRICS_ADDRESS"),
		ServiceName:             os.Getenv("SERVICE_NAME"),
		EnableDefaultCollectors: os.Getenv("METRICS_DEFAULT_COLLECTORS") != "false",
	}
	if cfg.Address == "" {
		cfg.Address = ":9090"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "catalog-search"
	}
	return cfg
}

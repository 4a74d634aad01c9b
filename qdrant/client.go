package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/shopifake/catalog-search/logger"
)

// Client wraps the official Qdrant Go client and validates connectivity at
// construction. Use NewAdapter to get the vectordb.Service view.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log *logger.Logger
}

// NewClient constructs a Client and verifies the server is reachable.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this performs
// an immediate health check to fail fast if the service is unreachable.
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{
		api: api,
		cfg: cfg,
		log: log,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant: health check failed: %w", err)
	}

	log.Info("connected to qdrant", nil, map[string]interface{}{
		"endpoint":   cfg.Endpoint,
		"port":       port,
		"collection": cfg.Collection,
	})
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service.
// Lightweight and fast, suitable for startup and readiness probes.
func (c *Client) healthCheck() error {
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	c.log.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.GetTitle(),
		"version": resp.GetVersion(),
	})
	return nil
}

// API returns the underlying Qdrant SDK client, for direct access to
// low-level operations.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}

package embedding

import (
	"context"
	"fmt"
	"strings"
)

// placeholderText stands in for empty input. Embedding an empty string is a
// provider error, but degenerate catalog entities (no name, no description)
// and the indexer's dimension probe must still produce a valid vector.
const placeholderText = "empty"

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (endpoints, HTTP, SDK types) from the
// application layer. Application code should depend on Service or *Client,
// not on Provider.
type Client struct {
	provider Provider
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the provider. A missing
// API key fails here, at startup, not on the first request.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	return &Client{provider: newOpenAIProvider(cfg)}, nil
}

// NewClientWithProvider wires an explicit provider. Intended for tests.
func NewClientWithProvider(p Provider) *Client {
	return &Client{provider: p}
}

// Embed generates a vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates vectors for multiple texts, preserving input order.
// Empty texts are replaced by the placeholder token before the call.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: no texts provided")
	}

	prepared := make([]string, len(texts))
	for i, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			t = placeholderText
		}
		prepared[i] = t
	}

	vectors, err := c.provider.Create(ctx, prepared...)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

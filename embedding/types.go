package embedding

import "context"

// Service is the embedding contract consumed by the retrieval core.
type Service interface {
	// Embed generates a vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates vectors for multiple texts, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider is the low-level contract an embedding backend implements.
type Provider interface {
	// Create generates embeddings for the given texts.
	Create(ctx context.Context, texts ...string) ([][]float32, error)
}

package embedding

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shopifake/catalog-search/errs"
)

// openAIProvider implements Provider against any OpenAI-compatible
// /v1/embeddings endpoint.
type openAIProvider struct {
	client *openai.Client
	model  string
}

func newOpenAIProvider(cfg *Config) *openAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// Create generates embeddings for the given texts using the configured model.
func (p *openAIProvider) Create(ctx context.Context, texts ...string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(p.model),
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, errs.WrapUnavailable("embedding: create embeddings", err)
	}
	if len(resp.Data) == 0 {
		return nil, errs.Unavailablef("embedding: empty response")
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}

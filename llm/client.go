// Package llm wraps the chat-completion API used to generate natural
// language replies. Like the embedding package, it hides SDK details behind
// a narrow Service interface so the assist flow can be tested with a fake.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shopifake/catalog-search/errs"
)

// CompletionRequest carries one system/user prompt pair.
type CompletionRequest struct {
	System      string
	User        string
	JSONMode    bool
	Temperature float32
}

// Service is the chat-completion contract consumed by the assist flow.
type Service interface {
	// Complete returns the assistant's reply text for the given prompts.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient constructs a Client from Config. A missing API key fails here,
// at startup.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("llm: invalid config: %w", err)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}, nil
}

// Complete executes a chat completion and returns the reply text.
// JSONMode requests a JSON object response from the model.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", errs.WrapUnavailable("llm: chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.Unavailablef("llm: empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Package assist implements the conversational layer: plain chat, intent
// classification, and the retrieval-augmented assist flow that grounds
// replies in live search hits.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/llm"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/search"
)

// Intent is the coarse classification of a customer message.
type Intent string

const (
	IntentProductSearch Intent = "product_search"
	IntentFAQ           Intent = "faq"
	IntentOther         Intent = "other"
)

const (
	chatTemperature   = 0.7
	intentTemperature = 0
	defaultAssistTopK = 5
)

// Reply is the outcome of one assist turn.
type Reply struct {
	Response string
	Intent   Intent
	Results  []search.Result
}

// Searcher is the slice of the search service the assist flow needs.
type Searcher interface {
	Query(ctx context.Context, q search.Query) ([]search.Result, error)
}

// Service orchestrates the conversational flows.
type Service struct {
	llm     llm.Service
	search  Searcher
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewService constructs an assist Service.
func NewService(llmService llm.Service, searchService Searcher, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		llm:     llmService,
		search:  searchService,
		log:     log,
		metrics: m,
	}
}

// Chat returns a plain conversational reply with no retrieval.
func (s *Service) Chat(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errs.Invalidf("assist: prompt is empty")
	}

	return s.llm.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		User:        prompt,
		Temperature: chatTemperature,
	})
}

// DetectIntent classifies a customer message.
//
// The classifier is asked for strict JSON, but models drift; substring
// matching on the known labels tolerates decorated or malformed output and
// anything unrecognizable falls back to IntentOther.
func (s *Service) DetectIntent(ctx context.Context, prompt string) (Intent, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errs.Invalidf("assist: prompt is empty")
	}

	raw, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:      intentPrompt,
		User:        prompt,
		JSONMode:    true,
		Temperature: intentTemperature,
	})
	if err != nil {
		return "", err
	}

	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, string(IntentProductSearch)):
		return IntentProductSearch, nil
	case strings.Contains(lowered, string(IntentFAQ)):
		return IntentFAQ, nil
	default:
		return IntentOther, nil
	}
}

// Assist runs one full conversational turn: classify intent, retrieve
// matching products when the customer is searching, and generate a reply
// grounded in whatever was found.
//
// An unavailable index degrades to plain chat rather than failing the
// turn; the customer still gets an answer, just an ungrounded one. Any
// other search failure, configuration errors included, fails the turn.
func (s *Service) Assist(ctx context.Context, prompt string, topK int) (*Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errs.Invalidf("assist: prompt is empty")
	}
	if topK < 1 {
		topK = defaultAssistTopK
	}

	intent, err := s.DetectIntent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	system := systemPrompt
	var results []search.Result

	switch intent {
	case IntentProductSearch:
		results, err = s.search.Query(ctx, search.Query{Text: prompt, TopK: topK})
		if err != nil {
			if !errors.Is(err, errs.ErrUnavailable) {
				return nil, err
			}
			s.log.Warn("index unavailable, degrading to plain chat", err, map[string]interface{}{
				"intent": string(intent),
			})
			s.metrics.IncrementSearchFallbacks()
			results = nil
		}
		if len(results) > 0 {
			system = systemPrompt + "\n\nContext:\n" + fmt.Sprintf(productContextPrompt, formatResults(results))
		} else {
			system = systemPrompt + "\n\n" + noMatchPrompt
		}
	case IntentFAQ:
		system = systemPrompt + "\n\n" + faqPrompt
	default:
		system = systemPrompt + "\n\n" + otherPrompt
	}

	answer, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:      system,
		User:        prompt,
		Temperature: chatTemperature,
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Response: answer,
		Intent:   intent,
		Results:  results,
	}, nil
}

// formatResults renders search hits as a numbered list the model can cite.
func formatResults(results []search.Result) string {
	if len(results) == 0 {
		return "No relevant products found."
	}

	lines := make([]string, 0, len(results))
	for i, r := range results {
		name := r.Product.Name
		if name == "" {
			name = "Untitled"
		}
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s", i+1, name, r.Snippet))
	}
	return strings.Join(lines, "\n")
}

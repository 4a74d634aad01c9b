// Package search executes free-text semantic queries over the product
// index and shapes the ranked hits for the API edge.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/embedding"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/relevance"
	"github.com/shopifake/catalog-search/vectordb"
)

// snippetRunes caps the description excerpt returned with each hit.
const snippetRunes = 220

// Query is one free-text search request. TopK is clamped by the index
// adapter; MinScore and ThresholdRatio enable relevance filtering when set.
type Query struct {
	Text           string
	TopK           int
	MinScore       float32
	ThresholdRatio float32

	// ShopID scopes the search to one shop when non-zero; CategoryIDs
	// restricts hits to products in any of the listed categories. Scoping
	// is filter based, not tenant isolation.
	ShopID      int64
	CategoryIDs []int64

	// ActiveOnly drops entities whose payload snapshot marks them inactive.
	ActiveOnly bool
}

// Result is one ranked hit with its denormalized display fields.
type Result struct {
	Product catalog.Product
	Score   float32
	Snippet string
}

// Service runs semantic search queries. Stateless; safe for concurrent use.
type Service struct {
	cfg      *Config
	embedder embedding.Service
	db       vectordb.Service
	indexer  *index.Indexer
	log      *logger.Logger
}

// NewService constructs a search Service.
func NewService(cfg *Config, embedder embedding.Service, db vectordb.Service, indexer *index.Indexer, log *logger.Logger) *Service {
	return &Service{
		cfg:      cfg,
		embedder: embedder,
		db:       db,
		indexer:  indexer,
		log:      log,
	}
}

// Query embeds the query text, searches the index with any requested
// scoping filters, and relevance-filters the ranked candidates. Unset
// relevance knobs fall back to the operator-configured defaults.
func (s *Service) Query(ctx context.Context, q Query) ([]Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errs.Invalidf("search: query text is empty")
	}
	if err := relevance.ValidateRatio(q.ThresholdRatio); err != nil {
		return nil, err
	}

	if q.TopK < 1 {
		q.TopK = s.cfg.DefaultTopK
	}
	if q.MinScore == 0 {
		q.MinScore = s.cfg.DefaultMinScore
	}
	if q.ThresholdRatio == 0 {
		q.ThresholdRatio = s.cfg.DefaultThresholdRatio
	}

	if err := s.indexer.EnsureReady(ctx); err != nil {
		return nil, err
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results, err := s.db.Search(ctx, vectordb.SearchRequest{
		Collection: s.indexer.Collection(),
		Vector:     vector,
		TopK:       q.TopK,
		Filters:    buildFilters(q),
	})
	if err != nil {
		return nil, err
	}

	if q.MinScore > 0 || q.ThresholdRatio > 0 {
		results = relevance.Filter(results,
			func(res vectordb.SearchResult) float32 { return res.Score },
			q.MinScore, q.ThresholdRatio)
	}

	hits := make([]Result, 0, len(results))
	for _, res := range results {
		product := catalog.ProductFromPayload(res.ID, res.Payload)
		hits = append(hits, Result{
			Product: product,
			Score:   res.Score,
			Snippet: snippet(product.Description),
		})
	}
	return hits, nil
}

func buildFilters(q Query) *vectordb.FilterSet {
	var conditions []vectordb.FilterCondition
	if q.ShopID != 0 {
		conditions = append(conditions, &vectordb.MatchCondition{Field: catalog.FieldShopID, Value: q.ShopID})
	}
	switch len(q.CategoryIDs) {
	case 0:
	case 1:
		conditions = append(conditions, &vectordb.MatchCondition{Field: catalog.FieldCategoryID, Value: q.CategoryIDs[0]})
	default:
		values := make([]any, 0, len(q.CategoryIDs))
		for _, id := range q.CategoryIDs {
			values = append(values, id)
		}
		conditions = append(conditions, &vectordb.MatchAnyCondition{Field: catalog.FieldCategoryID, Values: values})
	}
	if q.ActiveOnly {
		conditions = append(conditions, &vectordb.MatchCondition{Field: catalog.FieldIsActive, Value: true})
	}
	if len(conditions) == 0 {
		return nil
	}
	return vectordb.Must(conditions...)
}

// snippet trims a description to a rune-bounded excerpt, cutting at the
// last space before the bound when one exists.
func snippet(description string) string {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) <= snippetRunes {
		return description
	}

	runes := []rune(description)[:snippetRunes]
	if i := strings.LastIndexByte(string(runes), ' '); i > 0 {
		runes = []rune(string(runes)[:i])
	}
	return strings.TrimSpace(string(runes)) + "…"
}

// Package recommend resolves "more like this" requests against the vector
// index, either from an already indexed reference entity or from free text.
package recommend

import (
	"context"
	"strings"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/embedding"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/relevance"
	"github.com/shopifake/catalog-search/vectordb"
)

// MaxRecommendations caps how many items a single request may ask for.
const MaxRecommendations = 10

// Request selects exactly one of the two resolution modes: a reference
// entity id or a free-text query. Supplying both, or neither, is rejected
// before any dependency call.
type Request struct {
	ProductID int64
	Query     string
	Limit     int

	// MinScore and ThresholdRatio enable relevance filtering when set.
	// Zero values leave the raw ranked candidates untouched.
	MinScore       float32
	ThresholdRatio float32
}

// Recommendation is one resolved candidate with its similarity score.
type Recommendation struct {
	Product catalog.Product
	Score   float32
}

// Resolver orchestrates recommendation resolution. Stateless; safe for
// concurrent use.
type Resolver struct {
	embedder embedding.Service
	db       vectordb.Service
	indexer  *index.Indexer
	log      *logger.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(embedder embedding.Service, db vectordb.Service, indexer *index.Indexer, log *logger.Logger) *Resolver {
	return &Resolver{
		embedder: embedder,
		db:       db,
		indexer:  indexer,
		log:      log,
	}
}

// Resolve validates the request and dispatches to the matching mode.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]Recommendation, error) {
	hasRef := req.ProductID != 0
	hasQuery := strings.TrimSpace(req.Query) != ""
	if hasRef == hasQuery {
		return nil, errs.Invalidf("recommend: exactly one of product id and query text must be supplied")
	}
	if err := relevance.ValidateRatio(req.ThresholdRatio); err != nil {
		return nil, err
	}

	if hasRef {
		return r.ByReference(ctx, req)
	}
	return r.ByText(ctx, req)
}

// ByReference recommends items similar to an already indexed entity.
//
// A reference with no stored vector yields an empty result, not an error:
// the entity may be unindexed or deleted, and the conversational surfaces
// consuming recommendations degrade better on empty than on failure. The
// index is over-fetched by one so the reference's own point, which always
// ranks first against its own vector, can be dropped without shrinking the
// result below the requested count.
func (r *Resolver) ByReference(ctx context.Context, req Request) ([]Recommendation, error) {
	if req.ProductID <= 0 {
		return nil, errs.Invalidf("recommend: product id %d is not a valid reference", req.ProductID)
	}
	limit := clampLimit(req.Limit)

	if err := r.indexer.EnsureReady(ctx); err != nil {
		return nil, err
	}

	vector, found, err := r.db.FetchVector(ctx, r.indexer.Collection(), uint64(req.ProductID))
	if err != nil {
		return nil, err
	}
	if !found {
		r.log.Debug("recommendation reference has no stored vector", nil, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return []Recommendation{}, nil
	}

	results, err := r.db.Search(ctx, vectordb.SearchRequest{
		Collection: r.indexer.Collection(),
		Vector:     vector,
		TopK:       limit + 1,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]vectordb.SearchResult, 0, len(results))
	for _, res := range results {
		if res.ID == uint64(req.ProductID) {
			continue
		}
		candidates = append(candidates, res)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return r.finish(candidates, req), nil
}

// ByText recommends items similar to a free-text query. No self-exclusion
// applies because the query is not an indexed point.
func (r *Resolver) ByText(ctx context.Context, req Request) ([]Recommendation, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errs.Invalidf("recommend: query text is empty")
	}
	limit := clampLimit(req.Limit)

	if err := r.indexer.EnsureReady(ctx); err != nil {
		return nil, err
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := r.db.Search(ctx, vectordb.SearchRequest{
		Collection: r.indexer.Collection(),
		Vector:     vector,
		TopK:       limit,
	})
	if err != nil {
		return nil, err
	}

	return r.finish(results, req), nil
}

// finish applies optional relevance filtering and maps index results to
// recommendations.
func (r *Resolver) finish(results []vectordb.SearchResult, req Request) []Recommendation {
	if req.MinScore > 0 || req.ThresholdRatio > 0 {
		results = relevance.Filter(results,
			func(res vectordb.SearchResult) float32 { return res.Score },
			req.MinScore, req.ThresholdRatio)
	}

	recommendations := make([]Recommendation, 0, len(results))
	for _, res := range results {
		recommendations = append(recommendations, Recommendation{
			Product: catalog.ProductFromPayload(res.ID, res.Payload),
			Score:   res.Score,
		})
	}
	return recommendations
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxRecommendations {
		return MaxRecommendations
	}
	return limit
}

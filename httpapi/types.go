package httpapi

import (
	"strings"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/recommend"
	"github.com/shopifake/catalog-search/search"
)

type searchRequest struct {
	Query          string  `json:"query"`
	TopK           int     `json:"top_k"`
	MinScore       float32 `json:"min_score"`
	ThresholdRatio float32 `json:"threshold_ratio"`
	ShopID         int64   `json:"shop_id"`
	CategoryIDs    []int64 `json:"category_ids"`
	ActiveOnly     bool    `json:"active_only"`
}

type searchHit struct {
	ID      int64   `json:"id"`
	Score   float32 `json:"score"`
	Name    string  `json:"name"`
	Price   string  `json:"price,omitempty"`
	Slug    string  `json:"slug,omitempty"`
	Snippet string  `json:"snippet,omitempty"`
}

type searchResponse struct {
	Results []searchHit `json:"results"`
}

type recommendationRequest struct {
	ProductID      int64   `json:"product_id"`
	Query          string  `json:"query"`
	Limit          int     `json:"limit"`
	MinScore       float32 `json:"min_score"`
	ThresholdRatio float32 `json:"threshold_ratio"`
}

type recommendationItem struct {
	ID    int64   `json:"id"`
	Score float32 `json:"score"`
	Name  string  `json:"name"`
	Price string  `json:"price,omitempty"`
	Slug  string  `json:"slug,omitempty"`
}

type recommendationResponse struct {
	Results []recommendationItem `json:"results"`
}

type indexRequest struct {
	Products []catalog.Product `json:"products"`
}

type indexResponse struct {
	Indexed int `json:"indexed"`
}

type webhookRequest struct {
	Event     string          `json:"event"`
	Timestamp string          `json:"timestamp,omitempty"`
	Data      catalog.Product `json:"data"`
}

type webhookResponse struct {
	Status string `json:"status"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
	TopK   int    `json:"top_k"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type intentResponse struct {
	Intent string `json:"intent"`
}

type assistResponse struct {
	Response string      `json:"response"`
	Intent   string      `json:"intent"`
	Results  []searchHit `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSearchHits(results []search.Result) []searchHit {
	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{
			ID:      r.Product.ID,
			Score:   r.Score,
			Name:    r.Product.Name,
			Price:   r.Product.Price,
			Slug:    r.Product.Slug,
			Snippet: r.Snippet,
		})
	}
	return hits
}

func toRecommendationItems(recs []recommend.Recommendation) []recommendationItem {
	items := make([]recommendationItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, recommendationItem{
			ID:    r.Product.ID,
			Score: r.Score,
			Name:  r.Product.Name,
			Price: r.Product.Price,
			Slug:  r.Product.Slug,
		})
	}
	return items
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

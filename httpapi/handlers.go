package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/recommend"
	"github.com/shopifake/catalog-search/search"
)

// Webhook event names delivered by the catalog ingestion boundary.
const (
	eventProductCreated = "product.created"
	eventProductUpdated = "product.updated"
	eventProductDeleted = "product.deleted"
)

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed search request"))
	}

	results, err := s.search.Query(c.Request().Context(), search.Query{
		Text:           req.Query,
		TopK:           req.TopK,
		MinScore:       req.MinScore,
		ThresholdRatio: req.ThresholdRatio,
		ShopID:         req.ShopID,
		CategoryIDs:    req.CategoryIDs,
		ActiveOnly:     req.ActiveOnly,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, searchResponse{Results: toSearchHits(results)})
}

func (s *Server) handleRecommendations(c echo.Context) error {
	var req recommendationRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed recommendation request"))
	}

	recs, err := s.recommend.Resolve(c.Request().Context(), recommend.Request{
		ProductID:      req.ProductID,
		Query:          req.Query,
		Limit:          req.Limit,
		MinScore:       req.MinScore,
		ThresholdRatio: req.ThresholdRatio,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, recommendationResponse{Results: toRecommendationItems(recs)})
}

func (s *Server) handleIndexProducts(c echo.Context) error {
	var req indexRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed index request"))
	}
	if len(req.Products) == 0 {
		return s.writeError(c, errs.Invalidf("no products supplied"))
	}

	count, err := s.indexer.UpsertProducts(c.Request().Context(), req.Products)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, indexResponse{Indexed: count})
}

// handleWebhook ingests catalog change notifications. Create and update
// events refresh the index; delete events are acknowledged without touching
// the index, so stale points age out only via later upserts.
func (s *Server) handleWebhook(c echo.Context) error {
	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed webhook payload"))
	}

	switch strings.TrimSpace(req.Event) {
	case eventProductCreated, eventProductUpdated:
		if _, err := s.indexer.UpsertProducts(c.Request().Context(), []catalog.Product{req.Data}); err != nil {
			return s.writeError(c, err)
		}
		return c.JSON(http.StatusOK, webhookResponse{Status: "indexed"})
	case eventProductDeleted:
		return c.JSON(http.StatusOK, webhookResponse{Status: "acknowledged"})
	default:
		return s.writeError(c, errs.Invalidf("unknown webhook event %q", req.Event))
	}
}

func (s *Server) handleChat(c echo.Context) error {
	var req promptRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed chat request"))
	}

	answer, err := s.assist.Chat(c.Request().Context(), req.Prompt)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) handleIntent(c echo.Context) error {
	var req promptRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed intent request"))
	}

	intent, err := s.assist.DetectIntent(c.Request().Context(), req.Prompt)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, intentResponse{Intent: string(intent)})
}

func (s *Server) handleAssist(c echo.Context) error {
	var req promptRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Invalidf("malformed assist request"))
	}

	reply, err := s.assist.Assist(c.Request().Context(), req.Prompt, req.TopK)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, assistResponse{
		Response: reply.Response,
		Intent:   string(reply.Intent),
		Results:  toSearchHits(reply.Results),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps the error taxonomy onto HTTP statuses: validation errors
// are the caller's fault, unavailable dependencies are retryable, and
// everything else is an internal failure.
func (s *Server) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", err, map[string]interface{}{
			"path": c.Path(),
		})
	}
	return c.JSON(status, errorResponse{Error: err.Error()})
}

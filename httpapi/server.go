// Package httpapi exposes the retrieval core over HTTP: search,
// recommendations, index ingestion, the catalog webhook, and the
// conversational endpoints.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopifake/catalog-search/assist"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/recommend"
	"github.com/shopifake/catalog-search/search"
)

// Server is the HTTP front of the service.
type Server struct {
	cfg  *Config
	echo *echo.Echo
	log  *logger.Logger
	m    *metrics.Metrics

	search    *search.Service
	recommend *recommend.Resolver
	indexer   *index.Indexer
	assist    *assist.Service
}

// NewServer wires routes and middleware. Listening starts via Start.
func NewServer(
	cfg *Config,
	log *logger.Logger,
	m *metrics.Metrics,
	searchService *search.Service,
	resolver *recommend.Resolver,
	indexer *index.Indexer,
	assistService *assist.Service,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		cfg:       cfg,
		echo:      e,
		log:       log,
		m:         m,
		search:    searchService,
		recommend: resolver,
		indexer:   indexer,
		assist:    assistService,
	}

	e.Use(middleware.Recover())
	corsConfig := middleware.DefaultCORSConfig
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	e.Use(middleware.CORSWithConfig(corsConfig))
	e.Use(s.observe)

	e.GET("/healthz", s.handleHealth)

	api := e.Group("/api")
	api.POST("/search", s.handleSearch)
	api.POST("/recommendations", s.handleRecommendations)
	api.POST("/products/index", s.handleIndexProducts)
	api.POST("/webhook/product", s.handleWebhook)
	api.POST("/chat", s.handleChat)
	api.POST("/assist", s.handleAssist)
	api.POST("/intent", s.handleIntent)

	return s
}

// observe records per-endpoint latency and per-status request counts.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.m.RecordRequestDuration(start, c.Path())
		s.m.IncrementRequests(strconv.Itoa(c.Response().Status))
		return err
	}
}

// Start begins serving. Blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.log.Info("http server listening", nil, map[string]interface{}{
		"address": s.cfg.Address,
	})
	if err := s.echo.Start(s.cfg.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Command server runs the catalog search and recommendation service.
package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/shopifake/catalog-search/assist"
	"github.com/shopifake/catalog-search/embedding"
	"github.com/shopifake/catalog-search/httpapi"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/llm"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/qdrant"
	"github.com/shopifake/catalog-search/recommend"
	"github.com/shopifake/catalog-search/search"
)

func main() {
	// Optional; real deployments configure through the environment.
	_ = godotenv.Load()

	fx.New(
		logger.FXModule,
		metrics.FXModule,
		embedding.FXModule,
		llm.FXModule,
		qdrant.FXModule,
		index.FXModule,
		search.FXModule,
		recommend.FXModule,
		assist.FXModule,
		httpapi.FXModule,
	).Run()
}

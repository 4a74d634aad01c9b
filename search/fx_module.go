package search

import "go.uber.org/fx"

// FXModule provides the search service to an fx application.
var FXModule = fx.Module("search",
	fx.Provide(
		NewConfig,
		NewService,
	),
)

package index

import "go.uber.org/fx"

// FXModule provides the indexer to an fx application.
var FXModule = fx.Module("index",
	fx.Provide(
		NewConfig,
		NewIndexer,
	),
)

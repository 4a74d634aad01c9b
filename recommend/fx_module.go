package recommend

import "go.uber.org/fx"

// FXModule provides the recommendation resolver to an fx application.
var FXModule = fx.Module("recommend",
	fx.Provide(
		NewResolver,
	),
)

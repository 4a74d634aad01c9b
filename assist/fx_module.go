package assist

import (
	"go.uber.org/fx"

	"github.com/shopifake/catalog-search/search"
)

// FXModule provides the assist service to an fx application.
var FXModule = fx.Module("assist",
	fx.Provide(
		func(s *search.Service) Searcher { return s },
		NewService,
	),
)

package httpapi

import (
	"context"

	"go.uber.org/fx"

	"github.com/shopifake/catalog-search/logger"
)

// FXModule integrates the HTTP API server into an Fx-based application,
// providing the server and registering its startup and graceful shutdown.
var FXModule = fx.Module("httpapi",
	fx.Provide(
		NewConfig,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle manages the startup and shutdown lifecycle of the
// API server.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := s.Start(); err != nil {
					log.Error("http server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server", nil, nil)
			return s.Shutdown(ctx)
		},
	})
}

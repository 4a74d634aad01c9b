package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/shopifake/catalog-search/vectordb"
)

// FXModule wires the Qdrant client into Fx.
//
// It provides:
//   - *Config          (NewConfig)
//   - *Client          (NewClient, health-checked at startup)
//   - vectordb.Service (NewAdapter)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewConfig,
		NewClient,
		NewAdapter,
		func(a *Adapter) vectordb.Service { return a },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle closes the gRPC connection on shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}

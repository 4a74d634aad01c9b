package embedding

import "go.uber.org/fx"

// FXModule wires the embedding system into Fx.
//
// It provides:
//   - *Config  (NewConfig)
//   - *Client  (NewClient)
//   - Service  (interface binding for consumers)
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		NewClient,
		func(c *Client) Service { return c },
	),
)

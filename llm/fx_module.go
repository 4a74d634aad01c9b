package llm

import "go.uber.org/fx"

// FXModule wires the chat-completion client into Fx.
var FXModule = fx.Module(
	"llm",

	fx.Provide(
		NewConfig,
		NewClient,
		func(c *Client) Service { return c },
	),
)

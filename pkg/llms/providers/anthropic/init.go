package anthropic

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Anthropic provider with the global registry
	llms.GetRegistry().Register("anthropic", NewAnthropicProviderFactory())
}

package mock

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Mock provider with the global registry
	llms.GetRegistry().Register("mock", NewMockProviderFactory())
}

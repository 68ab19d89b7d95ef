package google

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Google provider with the global registry
	llms.GetRegistry().Register("google", NewGoogleProviderFactory())
}

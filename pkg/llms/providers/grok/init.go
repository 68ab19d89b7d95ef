package grok

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Grok provider with the global registry
	llms.GetRegistry().Register("grok", NewGrokProviderFactory())
}

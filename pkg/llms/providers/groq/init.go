package groq

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Groq provider with the global registry
	llms.GetRegistry().Register("groq", NewGroqProviderFactory())
}

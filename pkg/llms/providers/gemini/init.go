package gemini

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Gemini provider with the global registry
	llms.GetRegistry().Register("gemini", NewGeminiProviderFactory())
}

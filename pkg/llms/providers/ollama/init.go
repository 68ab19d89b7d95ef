package ollama

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Ollama provider with the global registry
	llms.GetRegistry().Register("ollama", NewOllamaProviderFactory())
}

package openai

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register OpenAI provider with the global registry
	llms.GetRegistry().Register("openai", NewOpenAIProviderFactory())
}

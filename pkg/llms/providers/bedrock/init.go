package bedrock

import "github.com/continuum-run/continuum/pkg/llms"

func init() {
	// Register Bedrock provider with the global registry
	llms.GetRegistry().Register("bedrock", NewBedrockProviderFactory())
}

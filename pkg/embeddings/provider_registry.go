package embeddings

import (
	"context"

	"github.com/continuum-run/continuum/pkg/config"
	"github.com/continuum-run/continuum/pkg/embeddings/iface"
	"github.com/continuum-run/continuum/pkg/embeddings/registry"
)

// Provider name constants referenced by the provider packages' init()
// registrations (openai, ollama, mock, deterministic).
const (
	ProviderOpenAI        = "openai"
	ProviderOllama        = "ollama"
	ProviderMock          = "mock"
	ProviderDeterministic = "deterministic"
)

// RegisterEmbedderProvider adapts a provider's config.ViperProvider-based
// factory to the registry's generic `(ctx, any) (iface.Embedder, error)`
// signature, so provider packages can register themselves from an init()
// using the same appConfig-driven style as pkg/llms/providers.
func RegisterEmbedderProvider(name string, factory func(*config.ViperProvider) (iface.Embedder, error)) {
	registry.GetRegistry().Register(name, func(ctx context.Context, cfg any) (iface.Embedder, error) {
		vp, ok := cfg.(*config.ViperProvider)
		if !ok || vp == nil {
			defaultVP, err := config.NewViperProvider("", nil, "")
			if err != nil {
				return nil, err
			}
			vp = defaultVP
		}
		return factory(vp)
	})
}

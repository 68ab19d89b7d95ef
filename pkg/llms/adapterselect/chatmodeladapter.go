package adapterselect

import (
	"context"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/llms"
	"github.com/continuum-run/continuum/pkg/llms/iface"
	"github.com/continuum-run/continuum/pkg/schema"
)

// ChatModelAdapter satisfies Adapter by wrapping one of the teacher's
// iface.ChatModel factories (registered in pkg/llms's global registry by
// each provider's own init()). It lazily builds the underlying ChatModel
// on first use from an *llms.Config, translating the adapter's single-shot
// GenerateText contract onto ChatModel.Generate's message-history one with
// a single human message (plus an optional system message).
type ChatModelAdapter struct {
	descriptor Descriptor
	llmConfig  *llms.Config

	model iface.ChatModel
}

// NewChatModelAdapter builds a ChatModelAdapter for the given descriptor.
// llmConfig.Provider must name a provider already registered via its
// package's init() (anthropic, openai, bedrock, gemini, ollama, mock, ...).
func NewChatModelAdapter(descriptor Descriptor, llmConfig *llms.Config) *ChatModelAdapter {
	return &ChatModelAdapter{descriptor: descriptor, llmConfig: llmConfig}
}

func (a *ChatModelAdapter) Descriptor() Descriptor { return a.descriptor }

func (a *ChatModelAdapter) Initialize(ctx context.Context) error {
	model, err := llms.GetRegistry().GetProvider(a.llmConfig.Provider, a.llmConfig)
	if err != nil {
		return core.NewKindError("ChatModelAdapter.Initialize", core.KindAdapterNotFound,
			"failed to construct chat model for provider \""+a.llmConfig.Provider+"\"", err)
	}
	a.model = model
	return nil
}

func (a *ChatModelAdapter) Shutdown(ctx context.Context) error { return nil }

func (a *ChatModelAdapter) GenerateText(ctx context.Context, prompt string, model string) (GenerateResult, error) {
	if a.model == nil {
		if err := a.Initialize(ctx); err != nil {
			return GenerateResult{}, err
		}
	}
	reply, err := a.model.Generate(ctx, []schema.Message{schema.NewHumanMessage(prompt)})
	if err != nil {
		return GenerateResult{}, core.NewKindError("ChatModelAdapter.GenerateText", core.KindInferenceFailed,
			"provider \""+a.descriptor.ProviderID+"\" generation failed", err)
	}
	return GenerateResult{Text: reply.GetContent()}, nil
}

func (a *ChatModelAdapter) CreateEmbedding(ctx context.Context, text string) ([]float64, error) {
	return nil, core.NewKindError("ChatModelAdapter.CreateEmbedding", core.KindAdapterIncompatible,
		"provider \""+a.descriptor.ProviderID+"\" does not implement embeddings via this adapter", nil)
}

func (a *ChatModelAdapter) HealthCheck(ctx context.Context) Health {
	if a.model == nil {
		return Health{Healthy: false, Detail: "not initialized"}
	}
	return Health{Healthy: true}
}

func (a *ChatModelAdapter) ListModels(ctx context.Context) ([]string, error) {
	if a.llmConfig.ModelName == "" {
		return nil, nil
	}
	return []string{a.llmConfig.ModelName}, nil
}

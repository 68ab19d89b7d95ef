// Package adapterselect implements the AI adapter registry and selection
// logic (spec component C7): a uniform text-generation adapter contract,
// plus provider-id and model-name-prefix based selection over a
// priority-ordered set of registered adapters.
//
// This sits alongside, not instead of, the teacher's pkg/llms registry of
// iface.ChatModel factories: that registry builds the rich
// Runnable-compatible chat models (tool binding, streaming chunks, message
// history) used elsewhere in this module, while adapterselect implements
// the narrower single-shot generate-text contract and prefix-selection
// rules spec §4.5 specifies for the command dispatch plane and the
// inference queue's non-local-backend path.
package adapterselect

import (
	"context"
	"strings"

	"github.com/continuum-run/continuum/pkg/core"
)

// LoRAMode tags which of spec §3's LoRA capability variants an adapter
// declares.
type LoRAMode string

const (
	LoRANone           LoRAMode = "none"
	LoRASingleAdapter  LoRAMode = "single_adapter"
	LoRAMultiLayerPage LoRAMode = "multi_layer_paging"
)

// LoRACapability is spec §3's "LoRA capability variant".
type LoRACapability struct {
	Mode      LoRAMode
	MaxLoaded int  // only meaningful for LoRAMultiLayerPage
	HotSwap   bool // only meaningful for LoRAMultiLayerPage
}

// Capabilities is spec §3's adapter capability set.
type Capabilities struct {
	TextGeneration   bool
	Chat             bool
	ToolUse          bool
	Vision           bool
	Streaming        bool
	Embeddings       bool
	Audio            bool
	ImageGeneration  bool
	IsLocal          bool
	MaxContextWindow int
	LoRA             LoRACapability
}

// Descriptor is spec §3's "AI adapter descriptor".
type Descriptor struct {
	ProviderID     string
	Name           string
	BaseURL        string
	APIKeyEnv      string
	DefaultModel   string
	TimeoutMs      int
	MaxRetries     int
	RetryDelayMs   int
	Capabilities   Capabilities
	// ModelPrefixes are matched case-insensitively, longest-first, against
	// a request's model name during selection (spec §4.5 step 2).
	ModelPrefixes []string
}

// Usage is the token accounting returned alongside generated text.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// GenerateResult is spec §4.5's "generate-text (single-shot...)" return shape.
type GenerateResult struct {
	Text       string
	Usage      Usage
	FinishReason string
	LatencyMs  float64
}

// Health is the result of a health-check call.
type Health struct {
	Healthy bool
	Detail  string
}

// Adapter is spec §4.5's "uniform contract" every AI adapter implements.
type Adapter interface {
	Descriptor() Descriptor

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error

	GenerateText(ctx context.Context, prompt string, model string) (GenerateResult, error)

	// CreateEmbedding is optional; adapters without embeddings capability
	// return KindAdapterIncompatible.
	CreateEmbedding(ctx context.Context, text string) ([]float64, error)

	HealthCheck(ctx context.Context) Health
	ListModels(ctx context.Context) ([]string, error)
}

// defaultShortcuts are spec §4.5's "Predefined shortcuts" for model-name
// prefix matching, overridable by an adapter's own declared ModelPrefixes.
var defaultShortcuts = map[string]string{
	"claude":   "anthropic",
	"gpt":      "openai",
	"deepseek": "deepseek",
	"grok":     "xai",
	"gemini":   "google",
}

// entry pairs a registered adapter with its health/init state.
type entry struct {
	adapter     Adapter
	initialized bool
	initErr     error
}

// Registry is spec §4.5's adapter registry: provider-id -> adapter, plus a
// priority-ordered sequence of provider ids (lower index = preferred).
type Registry struct {
	byID     map[string]*entry
	priority []string
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{byID: make(map[string]*entry)}
}

// Register adds adapter at the end of the priority order (lowest
// preference) unless already registered, in which case it is replaced
// in-place.
func (r *Registry) Register(a Adapter) {
	id := a.Descriptor().ProviderID
	if _, exists := r.byID[id]; !exists {
		r.priority = append(r.priority, id)
	}
	r.byID[id] = &entry{adapter: a}
}

// SetPriority reorders the registry's preference list explicitly.
func (r *Registry) SetPriority(order []string) {
	r.priority = append([]string(nil), order...)
}

// InitializeAll iterates adapters in priority order and calls Initialize on
// each, logging (recording) failures without aborting (spec §4.5:
// "Initialize-all ... logs initialization failures without aborting").
// Adapters that fail remain registered; their HealthCheck will report
// unhealthy and `GenerateText` calls against them return NotInitialized.
func (r *Registry) InitializeAll(ctx context.Context) map[string]error {
	failures := make(map[string]error)
	for _, id := range r.priority {
		e := r.byID[id]
		err := e.adapter.Initialize(ctx)
		e.initialized = err == nil
		e.initErr = err
		if err != nil {
			failures[id] = err
		}
	}
	return failures
}

// Get returns the adapter registered under providerID.
func (r *Registry) Get(providerID string) (Adapter, bool) {
	e, ok := r.byID[providerID]
	if !ok {
		return nil, false
	}
	return e.adapter, true
}

// longestPrefixMatch finds, across all registered adapters' declared (or
// default-shortcut) prefixes, the longest prefix matching modelName,
// case-insensitively.
func (r *Registry) longestPrefixMatch(modelName string) (string, bool) {
	lower := strings.ToLower(modelName)
	bestProvider := ""
	bestLen := -1

	consider := func(prefix, providerID string) {
		p := strings.ToLower(prefix)
		if strings.HasPrefix(lower, p) && len(p) > bestLen {
			if _, ok := r.byID[providerID]; ok {
				bestLen = len(p)
				bestProvider = providerID
			}
		}
	}

	for _, id := range r.priority {
		e := r.byID[id]
		for _, prefix := range e.adapter.Descriptor().ModelPrefixes {
			consider(prefix, id)
		}
	}
	// Default shortcuts apply only where no adapter-declared prefix has
	// already claimed a longer or equal match (spec §4.5: "these MAY be
	// overridden by adapter-declared prefixes").
	for shortcut, providerID := range defaultShortcuts {
		consider(shortcut, providerID)
	}

	return bestProvider, bestLen >= 0
}

// Select implements spec §4.5's three-step selection: preferred provider if
// set and registered; else longest-prefix model-name match; else the first
// adapter in priority order.
func (r *Registry) Select(preferredProvider, modelName string) (Adapter, error) {
	if preferredProvider != "" {
		if a, ok := r.Get(preferredProvider); ok {
			return a, nil
		}
	}

	if modelName != "" {
		if id, ok := r.longestPrefixMatch(modelName); ok {
			return r.byID[id].adapter, nil
		}
	}

	if len(r.priority) > 0 {
		return r.byID[r.priority[0]].adapter, nil
	}

	return nil, core.NewKindError("adapterselect.Select", core.KindAdapterNotFound, "no AI adapters registered", nil)
}

// IsInitialized reports whether providerID's adapter completed Initialize
// without error.
func (r *Registry) IsInitialized(providerID string) bool {
	e, ok := r.byID[providerID]
	return ok && e.initialized
}

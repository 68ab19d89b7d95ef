// The embedding/ namespace module (component C6, spec §6's `embedding/*`
// commands): generate, model/load, model/list, model/info, model/unload.
// Grounded in the teacher's pkg/embeddings.Factory/registry split — this
// module is the "a model manager keeps at most one embedder loaded per
// name" policy layered on top of that registry, mirroring the inference
// backend's single-loaded-model discipline (pkg/inference/backend.Handle).
package main

import (
	"context"
	"math"
	"sync"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/embeddings"
	_ "github.com/continuum-run/continuum/pkg/embeddings/deterministic" // registers "deterministic"
	"github.com/continuum-run/continuum/pkg/embeddings/iface"
	"github.com/continuum-run/continuum/pkg/runtime"
)

type embeddingModule struct {
	mu     sync.Mutex
	loaded map[string]iface.Embedder
}

func newEmbeddingModule() *embeddingModule {
	return &embeddingModule{loaded: make(map[string]iface.Embedder)}
}

func (m *embeddingModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "embedding",
		Priority:        runtime.PriorityNormal,
		CommandPrefixes: []string{"embedding/"},
	}
}

func (m *embeddingModule) get(name string) (iface.Embedder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.loaded[name]
	return e, ok
}

func (m *embeddingModule) load(ctx context.Context, name string) (iface.Embedder, error) {
	if e, ok := m.get(name); ok {
		return e, nil
	}
	e, err := embeddings.NewEmbedder(ctx, name, embeddings.Config{})
	if err != nil {
		return nil, core.NewKindError("embedding/model/load", core.KindAdapterNotFound, "no registered embedding provider \""+name+"\"", err)
	}
	m.mu.Lock()
	m.loaded[name] = e
	m.mu.Unlock()
	return e, nil
}

func (m *embeddingModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "embedding/generate":
		name := params.StringOr(embeddings.ProviderDeterministic, "provider", "model")
		texts, err := stringArray(params, "text", "texts")
		if err != nil {
			return nil, err
		}
		e, err := m.load(ctx, name)
		if err != nil {
			return nil, err
		}
		vectors, err := e.EmbedDocuments(ctx, texts)
		if err != nil {
			return nil, core.NewKindError("embedding/generate", core.KindInferenceFailed, "embedding provider \""+name+"\" failed", err)
		}
		dim, _ := e.GetDimension(ctx)
		return newBinaryResult("f32", []int{dim}, len(vectors), flattenF32(vectors), name), nil

	case "embedding/model/load":
		name, err := params.String("name", "provider")
		if err != nil {
			return nil, err
		}
		if _, err := m.load(ctx, name); err != nil {
			return nil, err
		}
		return map[string]any{"loaded": name}, nil

	case "embedding/model/list":
		return embeddings.ListAvailableProviders(), nil

	case "embedding/model/info":
		name, err := params.String("name", "provider")
		if err != nil {
			return nil, err
		}
		e, ok := m.get(name)
		if !ok {
			return nil, core.NewKindError("embedding/model/info", core.KindNotInitialized, "embedding provider \""+name+"\" is not loaded", nil)
		}
		dim, _ := e.GetDimension(ctx)
		return map[string]any{"name": name, "dimension": dim}, nil

	case "embedding/model/unload":
		name, err := params.String("name", "provider")
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		delete(m.loaded, name)
		m.mu.Unlock()
		return map[string]any{"unloaded": name}, nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "embedding module does not implement \""+command+"\"", nil)
	}
}

// stringArray reads a required array param under key (or its aliases) as
// []string, accepting either a JSON array of strings or a single string
// (promoted to a one-element batch).
func stringArray(params runtime.Params, key string, aliases ...string) ([]string, error) {
	if s, err := params.String(key, aliases...); err == nil {
		return []string{s}, nil
	}
	raw, err := params.Array(key, aliases...)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, core.NewKindError("Params.Array", core.KindBadParam, "array element is not a string", nil)
		}
		out = append(out, s)
	}
	return out, nil
}

func flattenF32(vectors [][]float32) []byte {
	out := make([]byte, 0, len(vectors)*len(firstOrEmpty(vectors))*4)
	for _, v := range vectors {
		for _, f := range v {
			bits := math.Float32bits(f)
			out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
		}
	}
	return out
}

func firstOrEmpty(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	return vectors[0]
}

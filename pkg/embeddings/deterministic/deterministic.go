// Package deterministic implements spec component C6's test-mode embedding
// provider: a pluggable text-to-vector adapter with no model weights and no
// network call, whose output is a reproducible function of each input
// word's hash. Grounded on the teacher's pkg/embeddings/mock_embedder.go
// (same init()-time provider registration, same config.ViperProvider
// wiring) but word-hash based rather than seeded-rand based, so that two
// texts sharing vocabulary also share vector mass — useful for exercising
// similarity-dependent code paths in tests without a real model.
package deterministic

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/continuum-run/continuum/pkg/config"
	"github.com/continuum-run/continuum/pkg/embeddings"
	"github.com/continuum-run/continuum/pkg/embeddings/iface"
)

func init() {
	embeddings.RegisterEmbedderProvider(embeddings.ProviderDeterministic, func(appConfig *config.ViperProvider) (iface.Embedder, error) {
		dim := appConfig.GetInt("embeddings.deterministic.dimension")
		if dim <= 0 {
			dim = 64
		}
		return New(dim), nil
	})
}

// Embedder is the deterministic word-hash embedding adapter.
type Embedder struct {
	dimension int
}

// New builds an Embedder producing vectors of the given dimension.
func New(dimension int) *Embedder {
	return &Embedder{dimension: dimension}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// embed hashes each word into a bucket of the output vector and
// accumulates a deterministic pseudo-magnitude, then L2-normalizes.
func (e *Embedder) embed(text string) []float32 {
	vec := make([]float64, e.dimension)
	words := tokenize(text)
	if len(words) == 0 {
		return make([]float32, e.dimension)
	}

	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dimension))
		sign := 1.0
		if (sum>>1)%2 == 0 {
			sign = -1.0
		}
		vec[bucket] += sign * (1.0 + float64(len(word))/10.0)
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return make([]float32, e.dimension)
	}
	scale := 1.0 / math.Sqrt(norm)

	out := make([]float32, e.dimension)
	for i, v := range vec {
		out[i] = float32(v * scale)
	}
	return out
}

// EmbedDocuments implements iface.Embedder.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		out[i] = e.embed(t)
	}
	return out, nil
}

// EmbedQuery implements iface.Embedder.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

// GetDimension implements iface.Embedder.
func (e *Embedder) GetDimension(ctx context.Context) (int, error) {
	return e.dimension, nil
}

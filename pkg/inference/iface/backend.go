// Package iface declares the inference backend contract (spec component
// C10): loading base model weights, running a tokenized forward pass, and
// exposing the model's context window and end-of-sequence token set. The
// split mirrors the teacher's pkg/llms/iface package (interfaces in their
// own package, implementations in sibling packages selected by factory).
package iface

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Architecture is the metadata a loader parses out of a model's weight
// shards before a forward pass is possible (spec §4.6: "vocab size, hidden
// size, layer count, max context, EOS set").
type Architecture struct {
	VocabSize    int
	HiddenSize   int
	LayerCount   int
	MaxContext   int
	EOSTokenIDs  []int
}

// Backend is spec §4.6's backend contract: "a forward-pass callable
// forward(tokens, position) -> logits plus access to the underlying weight
// tensors by canonical name". Weight tensors are immutable once loaded; a
// LoRA merge produces a brand new Backend rather than mutating this one
// (spec §9: "hot swap is atomic at the model-pointer level").
type Backend interface {
	// ModelID returns the base model identifier this backend was loaded for.
	ModelID() string

	// Architecture returns the parsed model metadata.
	Architecture() Architecture

	// Forward runs one forward pass starting at position for the given
	// token sequence, returning a logits vector sized VocabSize.
	Forward(ctx context.Context, tokens []int, position int) ([]float64, error)

	// WeightTable exposes the immutable weight tensors by canonical name,
	// for LoRA merge (spec §4.6) or introspection.
	WeightTable() map[string]*mat.Dense

	// EOSSet reports whether tokenID is a recognized end-of-sequence token.
	EOSSet() map[int]struct{}
}

// Loader loads a Backend for a base model identifier (spec §4.6: "the
// loader downloads/opens weight shards").
type Loader interface {
	Load(ctx context.Context, modelID string) (Backend, error)
}

// Package backend implements a concrete inference backend (spec component
// C10). Real GGUF/safetensors shard loading and a production transformer
// forward pass are out of this runtime's scope (spec.md's Non-goals exclude
// "a competing inference engine"); this backend loads a small declared
// architecture and computes a deterministic forward pass, the same "stand
// in for a real provider without a network call" strategy spec §3 already
// prescribes for the embedding provider's test mode.
package backend

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync/atomic"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/inference/iface"
	"github.com/continuum-run/continuum/pkg/inference/lora"
	"gonum.org/v1/gonum/mat"
)

// DeterministicBackend is an iface.Backend whose forward pass is a
// reproducible function of (weights, tokens, position) rather than a real
// neural network evaluation, and whose weight table is a small set of named
// dense matrices representative of a transformer's linear layers.
type DeterministicBackend struct {
	modelID string
	arch    iface.Architecture
	weights map[string]*mat.Dense
}

// NewDeterministicBackend builds a backend for modelID with arch metadata
// and an initial weight table (e.g. all-zero placeholders, or weights
// produced by a prior LoRA merge).
func NewDeterministicBackend(modelID string, arch iface.Architecture, weights map[string]*mat.Dense) *DeterministicBackend {
	return &DeterministicBackend{modelID: modelID, arch: arch, weights: weights}
}

func (b *DeterministicBackend) ModelID() string                 { return b.modelID }
func (b *DeterministicBackend) Architecture() iface.Architecture { return b.arch }

func (b *DeterministicBackend) WeightTable() map[string]*mat.Dense {
	out := make(map[string]*mat.Dense, len(b.weights))
	for k, v := range b.weights {
		out[k] = v
	}
	return out
}

func (b *DeterministicBackend) EOSSet() map[int]struct{} {
	set := make(map[int]struct{}, len(b.arch.EOSTokenIDs))
	for _, id := range b.arch.EOSTokenIDs {
		set[id] = struct{}{}
	}
	return set
}

// Forward computes a logits vector of length VocabSize by hashing the
// token sequence, position, and an accumulated sum of the weight table's
// entries — deterministic given the same inputs, and sensitive to a LoRA
// merge changing the weight table, without requiring a real model.
func (b *DeterministicBackend) Forward(ctx context.Context, tokens []int, position int) ([]float64, error) {
	if len(tokens) == 0 {
		return nil, core.NewKindError("backend.Forward", core.KindBadParam, "empty token sequence", nil)
	}
	if position < 0 || position > b.arch.MaxContext {
		return nil, core.NewKindError("backend.Forward", core.KindBadParam, "position exceeds context window", nil)
	}

	var weightSum float64
	for _, w := range b.weights {
		raw := w.RawMatrix().Data
		for _, v := range raw {
			weightSum += v
		}
	}

	logits := make([]float64, b.arch.VocabSize)
	h := fnv.New64a()
	for _, tok := range tokens {
		h.Write([]byte{byte(tok), byte(tok >> 8), byte(tok >> 16), byte(tok >> 24)})
	}
	base := h.Sum64()

	for i := range logits {
		mixed := base ^ uint64(i*2654435761) ^ uint64(position*40503)
		logits[i] = float64(mixed%10007)/10007.0 + weightSum*1e-9
	}
	return logits, nil
}

// MergeGenome folds genome into this backend's weight table via
// pkg/inference/lora.Merge and returns a brand new backend; the receiver is
// never mutated (spec §4.6/§9).
func (b *DeterministicBackend) MergeGenome(log *slog.Logger, genome lora.Genome) *DeterministicBackend {
	result := lora.Merge(log, b.weights, genome)
	return NewDeterministicBackend(b.modelID, b.arch, result.Weights)
}

// Handle holds the currently active backend behind an atomic pointer, so a
// LoRA hot swap can install a new backend without callers observing a
// partially-updated weight table (spec §9: "hot swap is atomic at the
// model-pointer level").
type Handle struct {
	current atomic.Pointer[iface.Backend]
}

// NewHandle wraps an initial backend.
func NewHandle(b iface.Backend) *Handle {
	h := &Handle{}
	h.current.Store(&b)
	return h
}

// Get returns the currently active backend.
func (h *Handle) Get() iface.Backend {
	return *h.current.Load()
}

// Swap atomically installs a new backend, returning the previous one.
func (h *Handle) Swap(b iface.Backend) iface.Backend {
	prev := h.current.Swap(&b)
	return *prev
}

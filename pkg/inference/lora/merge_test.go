package lora

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Seed test #6: base weight W shape (4,4) all zeros; adapter A = (2,4) ones,
// B = (4,2) ones, layer scale 0.5, adapter scale 1. Expected merged
// W = 0.5 * B * A = all-ones 4x4.
func TestMergeSeedExample(t *testing.T) {
	base := map[string]*mat.Dense{
		"layers.0.self_attn.q_proj": mat.NewDense(4, 4, nil),
	}
	ones := func(r, c int) *mat.Dense {
		data := make([]float64, r*c)
		for i := range data {
			data[i] = 1
		}
		return mat.NewDense(r, c, data)
	}
	genome := Genome{
		{
			AdapterName: "test-adapter",
			Scale:       1,
			Layers: AdapterWeights{
				"layers.0.self_attn.q_proj": {A: ones(2, 4), B: ones(4, 2), LayerScale: 0.5},
			},
		},
	}

	result := Merge(nil, base, genome)
	require.Empty(t, result.SkippedLayers)

	merged := result.Weights["layers.0.self_attn.q_proj"]
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.InDelta(t, 1.0, merged.At(r, c), 1e-9)
		}
	}
}

func TestMergeLeavesBaseUntouched(t *testing.T) {
	base := map[string]*mat.Dense{
		"l": mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
	}
	genome := Genome{{
		AdapterName: "a",
		Scale:       1,
		Layers: AdapterWeights{
			"l": {A: mat.NewDense(1, 2, []float64{1, 1}), B: mat.NewDense(2, 1, []float64{1, 1}), LayerScale: 1},
		},
	}}
	_ = Merge(nil, base, genome)
	assert.Equal(t, []float64{1, 2, 3, 4}, base["l"].RawMatrix().Data)
}

func TestMergeSkipsUnmatchedLayer(t *testing.T) {
	base := map[string]*mat.Dense{"l": mat.NewDense(2, 2, nil)}
	genome := Genome{{
		AdapterName: "a",
		Scale:       1,
		Layers: AdapterWeights{
			"missing_layer": {A: mat.NewDense(1, 2, []float64{1, 1}), B: mat.NewDense(2, 1, []float64{1, 1}), LayerScale: 1},
		},
	}}
	result := Merge(nil, base, genome)
	assert.Equal(t, []string{"a:missing_layer"}, result.SkippedLayers)
	assert.Same(t, base["l"], result.Weights["l"])
}

func TestMergeAccumulatesMultipleAdaptersOnSameLayer(t *testing.T) {
	base := map[string]*mat.Dense{"l": mat.NewDense(2, 2, nil)}
	one := func() *mat.Dense { return mat.NewDense(1, 2, []float64{1, 1}) }
	oneCol := func() *mat.Dense { return mat.NewDense(2, 1, []float64{1, 1}) }
	genome := Genome{
		{AdapterName: "a1", Scale: 1, Layers: AdapterWeights{"l": {A: one(), B: oneCol(), LayerScale: 1}}},
		{AdapterName: "a2", Scale: 1, Layers: AdapterWeights{"l": {A: one(), B: oneCol(), LayerScale: 1}}},
	}
	result := Merge(nil, base, genome)
	merged := result.Weights["l"]
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			assert.InDelta(t, 2.0, merged.At(r, c), 1e-9)
		}
	}
}

func TestNormalizeLayerName(t *testing.T) {
	canonical, isA, isB, ok := NormalizeLayerName("base_model.model.layers.0.self_attn.q_proj.lora_A.weight")
	require.True(t, ok)
	assert.Equal(t, "layers.0.self_attn.q_proj", canonical)
	assert.True(t, isA)
	assert.False(t, isB)

	_, _, _, ok = NormalizeLayerName("totally.unrelated.key")
	assert.False(t, ok)
}

func TestManifestDefaultScale(t *testing.T) {
	m := Manifest{Rank: 8, LoraAlpha: 16}
	assert.InDelta(t, 2.0, m.DefaultScale(), 1e-9)

	zero := Manifest{Rank: 0, LoraAlpha: 4}
	assert.InDelta(t, 4.0, zero.DefaultScale(), 1e-9)
}

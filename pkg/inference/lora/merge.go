package lora

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// MergeResult is the outcome of folding a genome into a base weight table.
type MergeResult struct {
	// Weights is the new weight table; the base table passed in is never
	// mutated (spec §4.6: "the base table is not mutated").
	Weights map[string]*mat.Dense
	// SkippedLayers lists adapter layer names that referenced no base
	// weight, tolerated per spec §4.6's "MUST tolerate ... by logging and
	// skipping".
	SkippedLayers []string
}

// Merge computes W' = W + Sum_i (scale_adapter_i * scale_layer_i) * (B_i *
// A_i) for every base weight referenced by any layer in genome, per spec
// §4.6. Base weights not referenced by any adapter layer pass through
// unchanged (the same *mat.Dense pointer, since it is never mutated).
func Merge(log *slog.Logger, base map[string]*mat.Dense, genome Genome) MergeResult {
	result := MergeResult{Weights: make(map[string]*mat.Dense, len(base))}
	for name, w := range base {
		result.Weights[name] = w
	}

	// accumulate deltas per base weight so multiple adapters touching the
	// same layer add together before being applied once.
	deltas := make(map[string]*mat.Dense)

	for _, entry := range genome {
		for layerName, lw := range entry.Layers {
			baseW, ok := base[layerName]
			if !ok {
				result.SkippedLayers = append(result.SkippedLayers, entry.AdapterName+":"+layerName)
				if log != nil {
					log.Warn("lora: adapter layer has no matching base weight, skipping",
						"adapter", entry.AdapterName, "layer", layerName)
				}
				continue
			}

			effectiveScale := entry.Scale * lw.LayerScale

			outDim, _ := baseW.Dims()
			bOut, _ := lw.B.Dims()
			if bOut != outDim {
				result.SkippedLayers = append(result.SkippedLayers, entry.AdapterName+":"+layerName)
				if log != nil {
					log.Warn("lora: adapter layer shape mismatch with base weight, skipping",
						"adapter", entry.AdapterName, "layer", layerName)
				}
				continue
			}

			var ba mat.Dense
			ba.Mul(lw.B, lw.A)
			ba.Scale(effectiveScale, &ba)

			acc, exists := deltas[layerName]
			if !exists {
				acc = mat.NewDense(baseW.RawMatrix().Rows, baseW.RawMatrix().Cols, nil)
				deltas[layerName] = acc
			}
			acc.Add(acc, &ba)
		}
	}

	for layerName, delta := range deltas {
		merged := mat.NewDense(0, 0, nil)
		merged.Add(base[layerName], delta)
		result.Weights[layerName] = merged
	}

	return result
}

// Package lora implements the LoRA adapter loader and merger (spec
// component C8): parsing a trained adapter's low-rank weight pairs and
// folding them into a base model's weight table as W' = W + scale * B * A.
//
// Matrix algebra runs on gonum.org/v1/gonum/mat rather than a hand-rolled
// float64 loop-nest: gonum is already pulled into this module's graph via
// the teacher's ollama dependency (itself built on pdevine/tensor and
// gorgonia's vecf32/vecf64 kernels) and is the ecosystem's standard dense
// linear algebra library.
package lora

import "gonum.org/v1/gonum/mat"

// LayerWeights is one adapter's trained low-rank pair for a single base
// weight: A has shape (rank, in), B has shape (out, rank) (spec §3 "LoRA
// weights"). LayerScale is typically lora_alpha / max(rank, 1) (spec §3
// "Adapter config manifest").
type LayerWeights struct {
	A          *mat.Dense
	B          *mat.Dense
	LayerScale float64
}

// AdapterWeights maps a canonical base-weight name to the adapter's trained
// pair for that layer. Layers the adapter did not train are simply absent.
type AdapterWeights map[string]LayerWeights

// GenomeEntry is one adapter participating in a merge, with its own
// top-level scale (spec §3: "effective scale for a genome entry i is
// s_adapter x s_lora_layer").
type GenomeEntry struct {
	AdapterName string
	Scale       float64
	Layers      AdapterWeights
}

// Genome is spec §3's "ordered list of LoRA adapters applied together to a
// base model" (see GLOSSARY).
type Genome []GenomeEntry

// Manifest is spec §3's "Adapter config manifest".
type Manifest struct {
	BaseModel     string   `json:"base_model"`
	Rank          int      `json:"r"`
	LoraAlpha     float64  `json:"lora_alpha"`
	TargetModules []string `json:"target_modules"`
	PeftType      string   `json:"peft_type"`
	TaskType      string   `json:"task_type"`
	Dropout       float64  `json:"lora_dropout"`
	Bias          string   `json:"bias"`
}

// DefaultScale implements the manifest's documented default: lora_alpha
// divided by the rank, floored at 1 to avoid a divide-by-zero on a
// zero-rank manifest.
func (m Manifest) DefaultScale() float64 {
	rank := m.Rank
	if rank < 1 {
		rank = 1
	}
	return m.LoraAlpha / float64(rank)
}

package lora

import (
	"regexp"
	"strings"
)

// sourceLayerPattern matches the common PEFT export shape described in spec
// §4.6: "base_model.model.layers.0.self_attn.q_proj" with a trailing
// "lora_A"/"lora_B" weight suffix and an optional ".weight".
var sourceLayerPattern = regexp.MustCompile(`^base_model\.model\.(.+)\.lora_[AB](?:\.weight)?$`)

// NormalizeLayerName maps an adapter tensor's source key to the canonical
// base-weight name it targets, and reports whether the key matched a known
// pattern and which of A/B it is. Unrecognized keys return ok=false so the
// caller can skip them per spec §4.6.
func NormalizeLayerName(sourceKey string) (canonical string, isA bool, isB bool, ok bool) {
	m := sourceLayerPattern.FindStringSubmatch(sourceKey)
	if m == nil {
		return "", false, false, false
	}
	canonical = m[1]
	isA = strings.Contains(sourceKey, "lora_A")
	isB = strings.Contains(sourceKey, "lora_B")
	return canonical, isA, isB, true
}

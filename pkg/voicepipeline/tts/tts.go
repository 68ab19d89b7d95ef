// Package tts implements spec component C16: synthesis of text to 16 kHz
// mono i16 PCM. Mirrors stt's grounding rationale — the teacher's
// `pkg/voice/tts/providers/*` stack exists but its package-level
// interface file is absent from the copied tree, so this defines the
// concrete contract spec §4.8/§4.10 actually need.
package tts

import "context"

// Audio is one synthesis result: raw 16 kHz mono PCM plus its provenance.
type Audio struct {
	Samples     []int16
	SampleRate  int
	AdapterName string
}

// DurationMs computes the audio's duration from its sample count and rate.
func (a Audio) DurationMs() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) * 1000 / float64(a.SampleRate)
}

// Synthesizer turns text into PCM audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice string) (Audio, error)
}

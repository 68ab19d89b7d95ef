// The voice/ namespace module (components C14-C20, spec §6's `voice/*`
// commands): synthesize, transcribe, call/join, call/leave,
// call/push-audio, poll-transcriptions, buffer/get, buffer/discard.
// Wires callmanager.Manager (call lifecycle), stt.Stage (transcription),
// a tts.Synthesizer (synthesis), and audiobuffer.Pool (synthesized-audio
// storage) behind one command surface, defaulting to the localstub
// implementations when no real model backend is configured.
package main

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/runtime"
	"github.com/continuum-run/continuum/pkg/voicepipeline/audiobuffer"
	"github.com/continuum-run/continuum/pkg/voicepipeline/callmanager"
	"github.com/continuum-run/continuum/pkg/voicepipeline/localstub"
	"github.com/continuum-run/continuum/pkg/voicepipeline/stt"
	"github.com/continuum-run/continuum/pkg/voicepipeline/tts"
	"github.com/continuum-run/continuum/pkg/voicepipeline/vad"
)

type voiceModule struct {
	calls       *callmanager.Manager
	buffers     *audiobuffer.Pool
	transcriber stt.Transcriber
	synth       tts.Synthesizer
	classifiers callmanager.ClassifierFactory
	vadConfig   vad.Config
	frameSize   int
}

func newVoiceModule() *voiceModule {
	return &voiceModule{
		calls:       callmanager.NewManager(),
		buffers:     audiobuffer.New(audiobuffer.DefaultCapacity, audiobuffer.DefaultTTL),
		transcriber: localstub.PlaceholderTranscriber{},
		synth:       localstub.NewToneSynthesizer(),
		classifiers: localstub.NewClassifierFactory(),
		vadConfig:   vad.DefaultConfig(),
		frameSize:   vad.FrameSamples16kHz,
	}
}

func (m *voiceModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "voice",
		Priority:        runtime.PriorityNormal,
		CommandPrefixes: []string{"voice/"},
	}
}

func pcmFromBase64(params runtime.Params, key string) ([]int16, error) {
	encoded, err := params.String(key)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, core.NewKindError("voice", core.KindBadParam, "invalid base64 audio payload", err)
	}
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}
	return samples, nil
}

func pcmToBase64(samples []int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		raw[2*i] = byte(uint16(s))
		raw[2*i+1] = byte(uint16(s) >> 8)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func (m *voiceModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "voice/synthesize":
		text, err := params.String("text")
		if err != nil {
			return nil, err
		}
		voice := params.StringOr("default", "voice")
		audio, err := m.synth.Synthesize(ctx, text, voice)
		if err != nil {
			return nil, core.NewKindError("voice/synthesize", core.KindInferenceFailed, "synthesis failed", err)
		}
		stored := m.buffers.Store(audio.Samples, audio.SampleRate, audio.AdapterName)
		return map[string]any{
			"handle":      stored.Handle,
			"sampleCount": stored.SampleCount,
			"sampleRate":  stored.SampleRate,
			"durationMs":  stored.DurationMs,
			"adapterName": stored.AdapterName,
		}, nil

	case "voice/transcribe":
		samples, err := pcmFromBase64(params, "audio")
		if err != nil {
			return nil, err
		}
		sampleRate := int(params.IntOr(16000, "sampleRate", "sample_rate"))
		result, err := m.transcriber.Transcribe(ctx, samples, sampleRate)
		if err != nil {
			return nil, core.NewKindError("voice/transcribe", core.KindInferenceFailed, "transcription failed", err)
		}
		return map[string]any{"text": result.Text, "confidence": result.Confidence}, nil

	case "voice/call/join":
		sessionID, err := params.String("sessionId", "session_id")
		if err != nil {
			return nil, err
		}
		userID, err := params.String("userId", "user_id")
		if err != nil {
			return nil, err
		}
		displayName := params.StringOr(userID, "displayName", "display_name")
		kind := params.StringOr("human", "kind")

		call, ok := m.calls.GetCall(sessionID)
		if !ok {
			nowMs := func() int64 { return time.Now().UnixMilli() }
			call = callmanager.New(sessionID, m.frameSize, m.vadConfig, m.classifiers, nowMs, 64, 16)
			m.calls.StartCall(call, sessionID)
		}
		if err := call.Join(userID, displayName, kind); err != nil {
			return nil, err
		}
		return map[string]any{"sessionId": sessionID, "userId": userID}, nil

	case "voice/call/leave":
		sessionID, err := params.String("sessionId", "session_id")
		if err != nil {
			return nil, err
		}
		userID, err := params.String("userId", "user_id")
		if err != nil {
			return nil, err
		}
		call, ok := m.calls.GetCall(sessionID)
		if !ok {
			return nil, core.NewKindError("voice/call/leave", core.KindBadParam, "unknown call session", nil)
		}
		call.Leave(userID)
		if len(call.Participants()) == 0 {
			m.calls.EndCall(sessionID)
		}
		return map[string]any{"ok": true}, nil

	case "voice/call/push-audio":
		sessionID, err := params.String("sessionId", "session_id")
		if err != nil {
			return nil, err
		}
		userID, err := params.String("userId", "user_id")
		if err != nil {
			return nil, err
		}
		samples, err := pcmFromBase64(params, "audio")
		if err != nil {
			return nil, err
		}
		call, ok := m.calls.GetCall(sessionID)
		if !ok {
			return nil, core.NewKindError("voice/call/push-audio", core.KindBadParam, "unknown call session", nil)
		}
		if err := call.PushAudio(userID, samples); err != nil {
			return nil, err
		}
		return map[string]any{"ok": true}, nil

	case "voice/poll-transcriptions":
		sessionID, err := params.String("sessionId", "session_id")
		if err != nil {
			return nil, err
		}
		call, ok := m.calls.GetCall(sessionID)
		if !ok {
			return nil, core.NewKindError("voice/poll-transcriptions", core.KindBadParam, "unknown call session", nil)
		}
		maxEvents := int(params.IntOr(16, "max"))
		var results []map[string]any
		for i := 0; i < maxEvents; i++ {
			select {
			case ev := <-call.Utterances():
				result, err := m.transcriber.Transcribe(ctx, ev.Samples, 16000)
				entry := map[string]any{
					"speakerId":   ev.SpeakerID,
					"speakerName": ev.SpeakerName,
					"speakerKind": ev.SpeakerKind,
					"timestampMs": ev.TimestampMs,
					"text":        result.Text,
					"confidence":  result.Confidence,
				}
				if err != nil {
					entry["error"] = err.Error()
				}
				results = append(results, entry)
			default:
				i = maxEvents
			}
		}
		return map[string]any{"events": results}, nil

	case "voice/buffer/get":
		handle, err := params.String("handle")
		if err != nil {
			return nil, err
		}
		entry, err := m.buffers.Fetch(handle)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"audio":       pcmToBase64(entry.Samples),
			"sampleRate":  entry.SampleRate,
			"adapterName": entry.AdapterName,
			"durationMs":  entry.DurationMs(),
		}, nil

	case "voice/buffer/discard":
		handle, err := params.String("handle")
		if err != nil {
			return nil, err
		}
		m.buffers.Discard(handle)
		return map[string]any{"ok": true}, nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "voice module does not implement \""+command+"\"", nil)
	}
}

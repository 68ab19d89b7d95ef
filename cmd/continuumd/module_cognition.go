// The cognition/ namespace module (component C21, spec §6's
// `cognition/*` commands): create-engine, calculate-priority,
// fast-path-decision, enqueue-message, get-state. One pkg/cognition.Engine
// is kept per persona name, mirroring the embedding module's
// one-instance-per-name loaded-resource pattern.
package main

import (
	"context"
	"sync"

	"github.com/continuum-run/continuum/pkg/cognition"
	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/runtime"
)

type cognitionModule struct {
	mu      sync.Mutex
	engines map[string]*cognition.Engine
}

func newCognitionModule() *cognitionModule {
	return &cognitionModule{engines: make(map[string]*cognition.Engine)}
}

func (m *cognitionModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "cognition",
		Priority:        runtime.PriorityNormal,
		CommandPrefixes: []string{"cognition/"},
	}
}

func (m *cognitionModule) engine(persona string) (*cognition.Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[persona]
	return e, ok
}

func senderKindOf(s string) cognition.SenderKind {
	switch cognition.SenderKind(s) {
	case cognition.SenderHuman, cognition.SenderPersona, cognition.SenderAgent, cognition.SenderSystem:
		return cognition.SenderKind(s)
	default:
		return cognition.SenderAgent
	}
}

func messageFrom(params runtime.Params) (cognition.Message, error) {
	content, err := params.String("content")
	if err != nil {
		return cognition.Message{}, err
	}
	senderKind := params.StringOr(string(cognition.SenderAgent), "senderKind", "sender_kind")
	senderID := params.StringOr("", "senderId", "sender_id")
	roomID := params.StringOr("", "roomId", "room_id")
	isVoice := params.BoolOr(false, "isVoice", "is_voice")
	nowMs := params.IntOr(0, "nowMs", "now_ms")
	return cognition.Message{
		Content:    content,
		SenderKind: senderKindOf(senderKind),
		SenderID:   senderID,
		IsVoice:    isVoice,
		RoomID:     roomID,
		NowMs:      nowMs,
	}, nil
}

func (m *cognitionModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "cognition/create-engine":
		persona, err := params.String("persona", "personaName")
		if err != nil {
			return nil, err
		}
		var rooms []string
		if raw, err := params.Array("rooms"); err == nil {
			for _, v := range raw {
				if s, ok := v.(string); ok {
					rooms = append(rooms, s)
				}
			}
		}
		inboxCap := int(params.IntOr(256, "inboxCapacity", "inbox_capacity"))
		m.mu.Lock()
		m.engines[persona] = cognition.New(persona, rooms, cognition.DefaultWeights(), inboxCap)
		m.mu.Unlock()
		return map[string]any{"persona": persona}, nil

	case "cognition/calculate-priority":
		e, persona, err := m.resolveEngine(params)
		if err != nil {
			return nil, err
		}
		msg, err := messageFrom(params)
		if err != nil {
			return nil, err
		}
		_ = persona
		return e.CalculatePriority(msg), nil

	case "cognition/fast-path-decision":
		e, _, err := m.resolveEngine(params)
		if err != nil {
			return nil, err
		}
		msg, err := messageFrom(params)
		if err != nil {
			return nil, err
		}
		return e.FastPathDecision(msg), nil

	case "cognition/enqueue-message":
		e, _, err := m.resolveEngine(params)
		if err != nil {
			return nil, err
		}
		msg, err := messageFrom(params)
		if err != nil {
			return nil, err
		}
		e.Enqueue(msg)
		return map[string]any{"ok": true}, nil

	case "cognition/get-state":
		e, _, err := m.resolveEngine(params)
		if err != nil {
			return nil, err
		}
		return e.State(), nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "cognition module does not implement \""+command+"\"", nil)
	}
}

func (m *cognitionModule) resolveEngine(params runtime.Params) (*cognition.Engine, string, error) {
	persona, err := params.String("persona", "personaName")
	if err != nil {
		return nil, "", err
	}
	e, ok := m.engine(persona)
	if !ok {
		return nil, "", core.NewKindError("cognition", core.KindNotInitialized, "no cognition engine for persona \""+persona+"\"", nil)
	}
	return e, persona, nil
}

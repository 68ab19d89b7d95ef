// The inbox/ namespace module (spec §6's single `inbox/create` command):
// per-persona inbox creation as a standalone primitive, distinct from
// `cognition/create-engine` which additionally seeds room affinity and
// priority weights. Both commands ultimately provision the same
// pkg/cognition.Engine (inbox + state are one object there, per
// spec §4.12), so this module shares the cognition module's engine table
// rather than keeping a second one.
package main

import (
	"context"

	"github.com/continuum-run/continuum/pkg/cognition"
	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/runtime"
)

type inboxModule struct {
	cognition *cognitionModule
}

func newInboxModule(c *cognitionModule) *inboxModule {
	return &inboxModule{cognition: c}
}

func (m *inboxModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "inbox",
		Priority:        runtime.PriorityNormal,
		CommandPrefixes: []string{"inbox/"},
	}
}

func (m *inboxModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "inbox/create":
		persona, err := params.String("persona", "personaName")
		if err != nil {
			return nil, err
		}
		inboxCap := int(params.IntOr(256, "capacity", "inboxCapacity"))
		m.cognition.mu.Lock()
		if _, exists := m.cognition.engines[persona]; !exists {
			m.cognition.engines[persona] = cognition.New(persona, nil, cognition.DefaultWeights(), inboxCap)
		}
		m.cognition.mu.Unlock()
		return map[string]any{"persona": persona}, nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "inbox module does not implement \""+command+"\"", nil)
	}
}

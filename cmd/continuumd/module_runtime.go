// The runtime/ namespace module: self-introspection over the registry
// itself (spec §6's `runtime/control/*` commands). Grounded in
// pkg/runtime.Registry's own Info/ListModules/SetPriority accessors — this
// module is a thin command-surface wrapper, not new logic.
package main

import (
	"context"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/runtime"
)

type runtimeModule struct {
	reg *runtime.Registry
}

func newRuntimeModule(reg *runtime.Registry) *runtimeModule {
	return &runtimeModule{reg: reg}
}

func (m *runtimeModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "runtime",
		Priority:        runtime.PriorityHigh,
		CommandPrefixes: []string{"runtime/"},
	}
}

func (m *runtimeModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "runtime/control/list-modules":
		return m.reg.ListModules(), nil

	case "runtime/control/module-info":
		name, err := params.String("name")
		if err != nil {
			return nil, err
		}
		info, ok := m.reg.Info(name)
		if !ok {
			return nil, core.NewKindError("runtime/control/module-info", core.KindBadParam, "no such module \""+name+"\"", nil)
		}
		return info, nil

	case "runtime/control/set-priority":
		name, err := params.String("name")
		if err != nil {
			return nil, err
		}
		priority, err := params.String("priority")
		if err != nil {
			return nil, err
		}
		if !m.reg.SetPriority(name, runtime.Priority(priority)) {
			return nil, core.NewKindError("runtime/control/set-priority", core.KindBadParam, "no such module \""+name+"\"", nil)
		}
		return map[string]any{"ok": true}, nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "runtime module does not implement \""+command+"\"", nil)
	}
}

// The sentinel/ namespace module (component C12, spec §6's pipeline
// lifecycle commands: submit, status, cancel). Wraps
// pkg/sentinel.Interpreter's RunPipeline/Cancel, adding the handle-keyed
// result table a polling `status` command needs on top of the
// interpreter's fire-and-forget result channel.
package main

import (
	"context"
	"sync"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/runtime"
	"github.com/continuum-run/continuum/pkg/sentinel"
)

type pipelineState struct {
	done   bool
	result sentinel.PipelineResult
}

type sentinelModule struct {
	interpreter *sentinel.Interpreter

	mu    sync.Mutex
	state map[sentinel.Handle]*pipelineState
}

func newSentinelModule(interpreter *sentinel.Interpreter) *sentinelModule {
	return &sentinelModule{interpreter: interpreter, state: make(map[sentinel.Handle]*pipelineState)}
}

func (m *sentinelModule) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{
		Name:            "sentinel",
		Priority:        runtime.PriorityNormal,
		CommandPrefixes: []string{"sentinel/"},
	}
}

func (m *sentinelModule) Handle(ctx context.Context, command string, rawParams map[string]any) (any, error) {
	params := runtime.Params(rawParams)
	switch command {
	case "sentinel/submit":
		var steps []sentinel.Step
		if err := params.As(&steps, "steps"); err != nil {
			return nil, err
		}
		inputs, _ := params.Object("inputs")
		workDir := params.StringOr("", "workDir", "work_dir")

		handle, resultCh := m.interpreter.RunPipeline(ctx, steps, inputs, workDir)
		m.mu.Lock()
		m.state[handle] = &pipelineState{}
		m.mu.Unlock()

		go func() {
			result := <-resultCh
			m.mu.Lock()
			m.state[handle] = &pipelineState{done: true, result: result}
			m.mu.Unlock()
		}()

		return map[string]any{"handle": handle}, nil

	case "sentinel/status":
		handle, err := pipelineHandle(params)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		st, ok := m.state[handle]
		m.mu.Unlock()
		if !ok {
			return nil, core.NewKindError("sentinel/status", core.KindBadParam, "unknown pipeline handle", nil)
		}
		if !st.done {
			return map[string]any{"done": false}, nil
		}
		return map[string]any{"done": true, "result": st.result}, nil

	case "sentinel/cancel":
		handle, err := pipelineHandle(params)
		if err != nil {
			return nil, err
		}
		return map[string]any{"cancelled": m.interpreter.Cancel(handle)}, nil

	default:
		return nil, core.NewKindError(command, core.KindUnknownCommand, "sentinel module does not implement \""+command+"\"", nil)
	}
}

func pipelineHandle(params runtime.Params) (sentinel.Handle, error) {
	s, err := params.String("handle")
	if err != nil {
		return "", err
	}
	return sentinel.Handle(s), nil
}

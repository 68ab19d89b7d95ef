package sentinel

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/orchestration/messagebus"
	"github.com/google/uuid"
)

// Dispatcher is the subset of pkg/runtime.Registry the Command step needs.
// Declared locally to avoid an import cycle (pkg/runtime does not depend on
// sentinel, but a module that wraps sentinel lives in pkg/runtime's
// dependents, so the interpreter takes the dependency as an interface).
type Dispatcher interface {
	Dispatch(ctx context.Context, command string, params map[string]any) (any, error)
}

// LlmInvoker is the function the Llm step uses to reach the priority
// inference queue (C11) via the well-known command spec §4.3 describes
// ("Invokes C11 via a well-known command"). It returns generated text plus
// token usage.
type LlmInvoker func(ctx context.Context, spec LlmSpec) (text string, promptTokens, completionTokens int, err error)

// Interpreter is the recursive step evaluator (spec §4.3/§9). One
// Interpreter serves arbitrarily many concurrent pipeline runs; each run
// owns its own cancel channel and ExecContext.
type Interpreter struct {
	Bus        *messagebus.Bus
	Dispatcher Dispatcher
	Llm        LlmInvoker

	mu      sync.Mutex
	cancels map[string]chan struct{}
}

// NewInterpreter builds an Interpreter wired to the given bus, dispatcher,
// and LLM invoker.
func NewInterpreter(bus *messagebus.Bus, dispatcher Dispatcher, llm LlmInvoker) *Interpreter {
	return &Interpreter{
		Bus:        bus,
		Dispatcher: dispatcher,
		Llm:        llm,
		cancels:    make(map[string]chan struct{}),
	}
}

// Handle is the opaque 128-bit identifier spec §3 assigns to a pipeline run.
type Handle string

// newHandle mints a handle with the "pipe-" short prefix spec §3 calls for.
func newHandle() Handle {
	return Handle("pipe-" + uuid.NewString())
}

// Cancel requests cancellation of a running pipeline. The interpreter stops
// before the next step boundary (spec §5).
func (ip *Interpreter) Cancel(h Handle) bool {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ch, ok := ip.cancels[string(h)]
	if !ok {
		return false
	}
	select {
	case <-ch:
	default:
		close(ch)
	}
	return true
}

func (ip *Interpreter) register(h Handle) chan struct{} {
	ch := make(chan struct{})
	ip.mu.Lock()
	ip.cancels[string(h)] = ch
	ip.mu.Unlock()
	return ch
}

func (ip *Interpreter) unregister(h Handle) {
	ip.mu.Lock()
	delete(ip.cancels, string(h))
	ip.mu.Unlock()
}

// RunPipeline starts steps with the given inputs and working directory,
// returning a handle immediately; the pipeline runs to completion (or
// cancellation) on the calling goroutine's behalf via the returned result
// channel, matching spec §4.3's `run_pipeline(pipeline, inputs) -> (handle,
// eventual result)`.
func (ip *Interpreter) RunPipeline(ctx context.Context, steps []Step, inputs map[string]any, workDir string) (Handle, <-chan PipelineResult) {
	h := newHandle()
	cancelCh := ip.register(h)
	out := make(chan PipelineResult, 1)

	go func() {
		defer ip.unregister(h)
		defer close(out)
		execCtx := NewExecContext(inputs, workDir)
		results, err := ip.runSteps(ctx, cancelCh, steps, execCtx)
		out <- PipelineResult{Handle: h, Results: results, Err: err}
	}()

	return h, out
}

// PipelineResult is delivered on RunPipeline's result channel once the
// pipeline finishes, fails, or is cancelled.
type PipelineResult struct {
	Handle  Handle
	Results []StepResult
	Err     error
}

// isCancelled reports whether cancelCh has been closed.
func isCancelled(cancelCh <-chan struct{}) bool {
	select {
	case <-cancelCh:
		return true
	default:
		return false
	}
}

// runSteps evaluates a flat sequence of steps against execCtx, stopping at
// the first failing step (spec §4.3: "a failing step stops a sequential
// sequence") or at a cancellation boundary.
func (ip *Interpreter) runSteps(ctx context.Context, cancelCh <-chan struct{}, steps []Step, execCtx *ExecContext) ([]StepResult, error) {
	var produced []StepResult
	for _, step := range steps {
		if isCancelled(cancelCh) {
			r := execCtx.Append(StepResult{StepType: step.Kind, Success: false, Error: "cancelled"})
			produced = append(produced, r)
			return produced, core.NewKindError("sentinel.runSteps", core.KindCancelled, "pipeline cancelled", nil)
		}
		r := ip.runStep(ctx, cancelCh, step, execCtx)
		produced = append(produced, r)
		if !r.Success {
			return produced, nil
		}
	}
	return produced, nil
}

func durationMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// runStep evaluates one step and appends its result to execCtx.
func (ip *Interpreter) runStep(ctx context.Context, cancelCh <-chan struct{}, step Step, execCtx *ExecContext) StepResult {
	start := time.Now()
	var r StepResult

	switch step.Kind {
	case StepShell:
		r = ip.runShell(ctx, step.Shell, execCtx)
	case StepLlm:
		r = ip.runLlm(ctx, step.Llm, execCtx)
	case StepCommand:
		r = ip.runCommand(ctx, step.Command, execCtx)
	case StepCondition:
		r = ip.runCondition(ctx, cancelCh, step.Condition, execCtx)
	case StepLoop:
		r = ip.runLoop(ctx, cancelCh, step.Loop, execCtx)
	case StepParallel:
		r = ip.runParallel(ctx, step.Parallel, execCtx)
	case StepEmit:
		r = ip.runEmit(step.Emit, execCtx)
	case StepWatch:
		r = ip.runWatch(ctx, step.Watch)
	case StepSentinel:
		r = ip.runNested(ctx, cancelCh, step.Sentinel, execCtx)
	default:
		r = StepResult{Success: false, Error: "unknown step kind"}
	}

	r.StepType = step.Kind
	r.DurationMs = durationMs(start)
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	return execCtx.Append(r)
}

func (ip *Interpreter) runShell(ctx context.Context, spec *ShellSpec, execCtx *ExecContext) StepResult {
	runCtx := ctx
	var cancel context.CancelFunc
	if spec.TimeoutSecs > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(spec.TimeoutSecs*float64(time.Second)))
		defer cancel()
	}

	args := make([]string, len(spec.Args))
	for i, a := range spec.Args {
		args[i] = InterpolateString(a, execCtx)
	}
	cmdStr := InterpolateString(spec.Cmd, execCtx)

	cmd := exec.CommandContext(runCtx, cmdStr, args...)
	wd := spec.WorkingDir
	if wd == "" {
		wd = execCtx.WorkDir()
	}
	if wd != "" {
		cmd.Dir = wd
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return StepResult{
			Success: false,
			Error:   "shell step timed out",
			Data:    map[string]any{"stdout": stdout.String(), "stderr": stderr.String()},
		}
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return StepResult{
		Success:  exitCode == 0,
		Output:   stdout.String(),
		ExitCode: &exitCode,
		Data:     map[string]any{"stdout": stdout.String(), "stderr": stderr.String()},
	}
}

func (ip *Interpreter) runLlm(ctx context.Context, spec *LlmSpec, execCtx *ExecContext) StepResult {
	if ip.Llm == nil {
		return StepResult{Success: false, Error: "no LLM invoker configured"}
	}
	s := *spec
	s.Prompt = InterpolateString(spec.Prompt, execCtx)
	text, promptTokens, completionTokens, err := ip.Llm(ctx, s)
	if err != nil {
		return StepResult{Success: false, Error: err.Error()}
	}
	return StepResult{
		Success: true,
		Output:  text,
		Data: map[string]any{
			"promptTokens":     promptTokens,
			"completionTokens": completionTokens,
		},
	}
}

func (ip *Interpreter) runCommand(ctx context.Context, spec *CommandSpec, execCtx *ExecContext) StepResult {
	if ip.Dispatcher == nil {
		return StepResult{Success: false, Error: "no dispatcher configured"}
	}
	params := make(map[string]any, len(spec.Params))
	for k, v := range spec.Params {
		if s, ok := v.(string); ok {
			params[k] = Interpolate(s, execCtx)
		} else {
			params[k] = v
		}
	}
	result, err := ip.Dispatcher.Dispatch(ctx, InterpolateString(spec.Command, execCtx), params)
	if err != nil {
		return StepResult{Success: false, Error: err.Error()}
	}
	return StepResult{Success: true, Data: map[string]any{"result": result}}
}

func (ip *Interpreter) runCondition(ctx context.Context, cancelCh <-chan struct{}, spec *ConditionSpec, execCtx *ExecContext) StepResult {
	branch := spec.Else
	if EvaluateCondition(spec.Condition, execCtx) {
		branch = spec.Then
	}
	sub, err := ip.runSteps(ctx, cancelCh, branch, execCtx)
	success := err == nil
	var lastOutput string
	if len(sub) > 0 {
		lastOutput = sub[len(sub)-1].Output
		success = success && sub[len(sub)-1].Success
	}
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return StepResult{Success: success, Output: lastOutput, Error: errMsg, Data: map[string]any{"branchResults": sub}}
}

func (ip *Interpreter) runLoop(ctx context.Context, cancelCh <-chan struct{}, spec *LoopSpec, execCtx *ExecContext) StepResult {
	var all []StepResult
	i := 0
	runOnce := func() ([]StepResult, bool) {
		execCtx.SetInput("iteration", i)
		sub, err := ip.runSteps(ctx, cancelCh, spec.Steps, execCtx)
		all = append(all, sub...)
		ok := err == nil
		if len(sub) > 0 {
			ok = ok && sub[len(sub)-1].Success
		}
		return sub, ok
	}

	switch spec.Mode {
	case LoopCount:
		for ; i < spec.Count; i++ {
			if isCancelled(cancelCh) {
				break
			}
			if _, ok := runOnce(); !ok {
				break
			}
		}
	case LoopWhile:
		for EvaluateCondition(spec.While, execCtx) {
			if isCancelled(cancelCh) {
				break
			}
			if _, ok := runOnce(); !ok {
				break
			}
			i++
		}
	case LoopUntil:
		for {
			if isCancelled(cancelCh) {
				break
			}
			if _, ok := runOnce(); !ok {
				break
			}
			i++
			if EvaluateCondition(spec.Until, execCtx) {
				break
			}
		}
	default: // continuous
		max := spec.MaxIterations
		if max <= 0 {
			max = DefaultMaxContinuousIterations
		}
		for ; i < max; i++ {
			if isCancelled(cancelCh) {
				break
			}
			if _, ok := runOnce(); !ok {
				break
			}
		}
	}

	// Spec §4.3: "the loop's own success is still true unless a sub-step's
	// failure propagates" — a loop always reports success; failures are
	// visible in the nested results.
	return StepResult{Success: true, Data: map[string]any{"iterations": i, "stepResults": all}}
}

func (ip *Interpreter) runParallel(ctx context.Context, spec *ParallelSpec, execCtx *ExecContext) StepResult {
	n := len(spec.Branches)
	branchResults := make([][]StepResult, n)
	branchOK := make([]bool, n)

	if n == 0 {
		return StepResult{Success: true, Data: map[string]any{"branchResults": branchResults}}
	}

	branchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var failOnce sync.Once
	for idx, branch := range spec.Branches {
		wg.Add(1)
		forkedCtx := execCtx.Clone()
		forkedCancel := make(chan struct{})
		go func(idx int, branch []Step, forked *ExecContext) {
			defer wg.Done()
			sub, err := ip.runSteps(branchCtx, forkedCancel, branch, forked)
			ok := err == nil
			if len(sub) > 0 {
				ok = ok && sub[len(sub)-1].Success
			}
			branchResults[idx] = sub
			branchOK[idx] = ok
			if !ok && spec.FailFast {
				failOnce.Do(cancel)
			}
		}(idx, branch, forkedCtx)
	}
	wg.Wait()

	allOK := true
	for _, ok := range branchOK {
		allOK = allOK && ok
	}

	return StepResult{Success: allOK, Data: map[string]any{"branchResults": branchResults}}
}

func (ip *Interpreter) runEmit(spec *EmitSpec, execCtx *ExecContext) StepResult {
	payload := spec.Payload
	if s, ok := payload.(string); ok {
		payload = Interpolate(s, execCtx)
	}
	if ip.Bus != nil {
		ip.Bus.Publish(InterpolateString(spec.Event, execCtx), payload, "")
	}
	return StepResult{Success: true, Data: map[string]any{"payload": payload}}
}

func (ip *Interpreter) runWatch(ctx context.Context, spec *WatchSpec) StepResult {
	timeout := DefaultWatchTimeout
	if spec.TimeoutSecs > 0 {
		timeout = time.Duration(spec.TimeoutSecs * float64(time.Second))
	}
	if ip.Bus == nil {
		return StepResult{Success: false, Error: "no event bus configured"}
	}
	evt, err := ip.Bus.Watch(ctx, spec.Event, timeout)
	if err != nil {
		return StepResult{Success: false, Error: err.Error()}
	}
	payload, _ := evt.Payload.(map[string]any)
	return StepResult{Success: true, Data: payload}
}

func (ip *Interpreter) runNested(ctx context.Context, cancelCh <-chan struct{}, spec *SentinelSpec, execCtx *ExecContext) StepResult {
	child := execCtx.Child(nil, execCtx.WorkDir())
	sub, err := ip.runSteps(ctx, cancelCh, spec.Pipeline, child)
	success := err == nil
	var lastOutput string
	if len(sub) > 0 {
		lastOutput = sub[len(sub)-1].Output
		success = success && sub[len(sub)-1].Success
	}
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return StepResult{Success: success, Output: lastOutput, Error: errMsg, Data: map[string]any{"stepResults": sub}}
}

// Package sentinel implements the pipeline orchestrator (spec component
// C12): a recursive interpreter for user-defined pipelines with branching,
// loops, parallel fan-out, nested pipelines, and event emit/watch (§3
// "Pipeline step", §4.3). It is a new package — the teacher's
// `pkg/orchestration` models Chains/Graphs/Workflows as Runnable
// compositions rather than an interpreted step tree — but its recursive,
// tagged-union shape follows spec §9's explicit design note ("implement as
// a tagged union with an interpreter that recurses on the tree; do not
// flatten to a VM instruction stream") and its execution-context-threading
// style mirrors the teacher's `core.Runnable` context-propagation
// convention (`pkg/core/runnable.go`).
package sentinel

import "time"

// StepKind tags which variant of the Step sum type is populated.
type StepKind string

const (
	StepShell     StepKind = "shell"
	StepLlm       StepKind = "llm"
	StepCommand   StepKind = "command"
	StepCondition StepKind = "condition"
	StepLoop      StepKind = "loop"
	StepParallel  StepKind = "parallel"
	StepEmit      StepKind = "emit"
	StepWatch     StepKind = "watch"
	StepSentinel  StepKind = "sentinel"
)

// Step is spec §3's "Pipeline step (sum type)". Exactly one of the pointer
// fields matching Kind is populated; the rest are nil.
type Step struct {
	Kind StepKind

	Shell     *ShellSpec
	Llm       *LlmSpec
	Command   *CommandSpec
	Condition *ConditionSpec
	Loop      *LoopSpec
	Parallel  *ParallelSpec
	Emit      *EmitSpec
	Watch     *WatchSpec
	Sentinel  *SentinelSpec
}

type ShellSpec struct {
	Cmd         string
	Args        []string
	TimeoutSecs float64
	WorkingDir  string
}

type LlmSpec struct {
	Prompt       string
	Model        string
	Provider     string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

type CommandSpec struct {
	Command string
	Params  map[string]any
}

type ConditionSpec struct {
	Condition string
	Then      []Step
	Else      []Step
}

// LoopMode is exactly-one-of {count, while, until, continuous}, spec §3/§4.3.
type LoopMode string

const (
	LoopCount      LoopMode = "count"
	LoopWhile      LoopMode = "while"
	LoopUntil      LoopMode = "until"
	LoopContinuous LoopMode = "continuous"
)

// DefaultMaxContinuousIterations bounds a continuous loop when
// MaxIterations is unset (spec §3).
const DefaultMaxContinuousIterations = 10_000

type LoopSpec struct {
	Mode          LoopMode
	Count         int
	While         string
	Until         string
	MaxIterations int
	Steps         []Step
}

type ParallelSpec struct {
	Branches [][]Step
	FailFast bool
}

type EmitSpec struct {
	Event   string
	Payload any
}

// DefaultWatchTimeout is spec §4.2/§5's default Watch timeout.
const DefaultWatchTimeout = 300 * time.Second

type WatchSpec struct {
	Event       string
	TimeoutSecs float64
}

type SentinelSpec struct {
	Pipeline []Step
}

// StepResult is spec §3's "Step result".
type StepResult struct {
	StepIndex  int
	StepType   StepKind
	Success    bool
	DurationMs float64
	Output     string
	Error      string
	ExitCode   *int
	Data       map[string]any
}

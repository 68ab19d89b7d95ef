package sentinel

import "sync"

// ExecContext is spec §3's "Execution context": the mutable state threaded
// through one pipeline invocation, cloned at Parallel fork points.
type ExecContext struct {
	mu      sync.Mutex
	results []StepResult
	inputs  map[string]any
	workDir string
	named   map[string]StepResult
}

// NewExecContext builds a root execution context for a pipeline run with the
// given inputs and working directory.
func NewExecContext(inputs map[string]any, workDir string) *ExecContext {
	cp := make(map[string]any, len(inputs))
	for k, v := range inputs {
		cp[k] = v
	}
	return &ExecContext{
		inputs:  cp,
		workDir: workDir,
		named:   make(map[string]StepResult),
	}
}

// Results returns a snapshot slice of the step results recorded so far.
func (c *ExecContext) Results() []StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StepResult, len(c.results))
	copy(out, c.results)
	return out
}

// Append records r as the next step result and assigns it an index.
func (c *ExecContext) Append(r StepResult) StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.StepIndex = len(c.results)
	c.results = append(c.results, r)
	return r
}

// SetNamed records r under label for later `named.label` template lookups.
func (c *ExecContext) SetNamed(label string, r StepResult) {
	if label == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.named[label] = r
}

// Named returns the step result recorded under label, if any.
func (c *ExecContext) Named(label string) (StepResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.named[label]
	return r, ok
}

// Input returns a pipeline input by name.
func (c *ExecContext) Input(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.inputs[name]
	return v, ok
}

// SetInput sets (or overrides) a pipeline input, used by Loop to publish the
// current "iteration" input on each pass.
func (c *ExecContext) SetInput(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs[name] = v
}

// WorkDir returns the pipeline's working directory.
func (c *ExecContext) WorkDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workDir
}

// Clone produces the fork-point snapshot spec §4.3 requires for Parallel
// branches: each branch sees the same prefix of results, named outputs, and
// inputs, but mutations in one branch are invisible to siblings and the
// parent.
func (c *ExecContext) Clone() *ExecContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]StepResult, len(c.results))
	copy(results, c.results)

	inputs := make(map[string]any, len(c.inputs))
	for k, v := range c.inputs {
		inputs[k] = v
	}

	named := make(map[string]StepResult, len(c.named))
	for k, v := range c.named {
		named[k] = v
	}

	return &ExecContext{
		results: results,
		inputs:  inputs,
		workDir: c.workDir,
		named:   named,
	}
}

// Child creates a nested execution context for a Sentinel step: its named
// outputs inherit the parent's, and its inputs are nestedInputs overridden
// by... spec §4.3 says parent inputs fill in where the child does NOT
// override, i.e. nestedInputs take precedence and parentInputs fill gaps.
func (c *ExecContext) Child(nestedInputs map[string]any, workDir string) *ExecContext {
	c.mu.Lock()
	parentInputs := make(map[string]any, len(c.inputs))
	for k, v := range c.inputs {
		parentInputs[k] = v
	}
	named := make(map[string]StepResult, len(c.named))
	for k, v := range c.named {
		named[k] = v
	}
	c.mu.Unlock()

	merged := parentInputs
	for k, v := range nestedInputs {
		merged[k] = v
	}

	return &ExecContext{
		inputs:  merged,
		workDir: workDir,
		named:   named,
	}
}

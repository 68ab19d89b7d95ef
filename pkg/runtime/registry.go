// Package runtime implements the command dispatch plane: the module registry
// (C2) and command dispatcher (C3) from spec §2/§4.1. It is a new package —
// the teacher has no direct equivalent of "route a command string to a
// registered handler by prefix" — but its shape (a concurrency-safe registry
// keyed by name with a factory/lookup split, per-entity atomic metrics) is
// grounded in the teacher's `pkg/llms.Registry` (map + sync.RWMutex,
// `pkg/llms/registry.go`) and its Op/Code error convention
// (`pkg/core.FrameworkError`, generalized here to `core.KindError`).
package runtime

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"golang.org/x/sync/semaphore"
)

// Priority mirrors spec §3's module priority tiers.
type Priority string

const (
	PriorityCritical   Priority = "Critical"
	PriorityHigh       Priority = "High"
	PriorityNormal     Priority = "Normal"
	PriorityLow        Priority = "Low"
	PriorityBackground Priority = "Background"
)

// Descriptor is spec §3's "Module descriptor".
type Descriptor struct {
	Name                 string
	Priority             Priority
	CommandPrefixes      []string // each ends in "/"; exact match also allowed
	EventSubscriptions   []string
	NeedsDedicatedThread bool
	MaxConcurrency       uint32 // 0 => inherit runtime default
}

// Module is anything the registry can dispatch commands to. Handle receives
// the command's trailing path (after the matched prefix is stripped is NOT
// done — Handle gets the full command string so modules can route
// sub-commands themselves) and the extracted params object.
type Module interface {
	Descriptor() Descriptor
	Handle(ctx context.Context, command string, params map[string]any) (any, error)
}

// Metrics holds the monotonic counters spec §3 requires per module.
type Metrics struct {
	mu               sync.Mutex
	Calls            uint64
	Errors           uint64
	TotalLatencyNs   uint64
	LastLatencyNs    uint64
	PeakLatencyNs    uint64
}

func (m *Metrics) recordSuccess(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns := uint64(d.Nanoseconds())
	m.Calls++
	m.TotalLatencyNs += ns
	m.LastLatencyNs = ns
	if ns > m.PeakLatencyNs {
		m.PeakLatencyNs = ns
	}
}

func (m *Metrics) recordError(d time.Duration) {
	m.recordSuccess(d)
	m.mu.Lock()
	m.Errors++
	m.mu.Unlock()
}

// Snapshot is a point-in-time, lock-free copy of Metrics plus the derived
// average latency spec §3 calls for.
type Snapshot struct {
	Calls          uint64
	Errors         uint64
	TotalLatencyNs uint64
	LastLatencyNs  uint64
	PeakLatencyNs  uint64
	AvgLatencyNs   float64
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Calls:          m.Calls,
		Errors:         m.Errors,
		TotalLatencyNs: m.TotalLatencyNs,
		LastLatencyNs:  m.LastLatencyNs,
		PeakLatencyNs:  m.PeakLatencyNs,
	}
	if m.Calls > 0 {
		s.AvgLatencyNs = float64(m.TotalLatencyNs) / float64(m.Calls)
	}
	return s
}

type entry struct {
	module  Module
	desc    Descriptor
	metrics *Metrics
	sem     *semaphore.Weighted // nil => uses the registry's shared pool
}

// DefaultConcurrency is the shared dispatcher pool size used by modules whose
// MaxConcurrency is 0 (spec §4.1: "0 ⇒ shared pool").
const DefaultConcurrency = 64

// Registry is the process-wide module registry and command dispatcher.
type Registry struct {
	mu         sync.RWMutex
	modules    map[string]*entry
	prefixes   []prefixEntry // sorted longest-first
	sharedSem  *semaphore.Weighted
}

type prefixEntry struct {
	prefix string
	module string
}

// New creates an empty Registry with the shared pool sized to
// DefaultConcurrency.
func New() *Registry {
	return &Registry{
		modules:   make(map[string]*entry),
		sharedSem: semaphore.NewWeighted(DefaultConcurrency),
	}
}

// Register adds a module to the registry under its descriptor's command
// prefixes. Re-registering a name replaces the previous entry.
func (r *Registry) Register(m Module) error {
	d := m.Descriptor()
	if d.Name == "" {
		return core.NewKindError("runtime.Register", core.KindBadParam, "module descriptor requires a name", nil)
	}
	e := &entry{module: m, desc: d, metrics: &Metrics{}}
	if d.MaxConcurrency > 0 {
		e.sem = semaphore.NewWeighted(int64(d.MaxConcurrency))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[d.Name] = e
	for _, p := range d.CommandPrefixes {
		r.prefixes = append(r.prefixes, prefixEntry{prefix: p, module: d.Name})
	}
	sort.Slice(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i].prefix) > len(r.prefixes[j].prefix)
	})
	return nil
}

// resolve finds the module owning command by longest-prefix match (spec
// §4.1). An exact match to a prefix (with or without its trailing "/") also
// counts as owning the command.
func (r *Registry) resolve(command string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pe := range r.prefixes {
		if command == pe.prefix || command == strings.TrimSuffix(pe.prefix, "/") || strings.HasPrefix(command, pe.prefix) {
			return r.modules[pe.module], true
		}
	}
	return nil, false
}

// Dispatch resolves command to its owning module and invokes it, bounded by
// the module's concurrency cap (or the shared pool when MaxConcurrency==0).
// It increments the module's call counter on entry and its error counter and
// latency on return, per spec §4.1.
func (r *Registry) Dispatch(ctx context.Context, command string, params map[string]any) (any, error) {
	e, ok := r.resolve(command)
	if !ok {
		return nil, core.NewKindError("runtime.Dispatch", core.KindUnknownCommand,
			"no module claims command \""+command+"\"", nil)
	}

	sem := e.sem
	if sem == nil {
		sem = r.sharedSem
	}
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, core.NewKindError("runtime.Dispatch", core.KindCancelled, "dispatch cancelled waiting for a worker slot", err)
	}
	defer sem.Release(1)

	start := time.Now()
	result, err := e.module.Handle(ctx, command, params)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.recordError(elapsed)
		return nil, err
	}
	e.metrics.recordSuccess(elapsed)
	return result, nil
}

// ModuleInfo is the payload for `runtime/control/module-info`.
type ModuleInfo struct {
	Descriptor Descriptor
	Metrics    Snapshot
}

// Info returns the descriptor and metrics snapshot for name.
func (r *Registry) Info(name string) (ModuleInfo, bool) {
	r.mu.RLock()
	e, ok := r.modules[name]
	r.mu.RUnlock()
	if !ok {
		return ModuleInfo{}, false
	}
	return ModuleInfo{Descriptor: e.desc, Metrics: e.metrics.Snapshot()}, true
}

// ListModules returns every registered module's info, for
// `runtime/control/list-modules`.
func (r *Registry) ListModules() []ModuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ModuleInfo, 0, len(r.modules))
	for _, e := range r.modules {
		out = append(out, ModuleInfo{Descriptor: e.desc, Metrics: e.metrics.Snapshot()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Descriptor.Name < out[j].Descriptor.Name })
	return out
}

// SetPriority updates a registered module's priority, for
// `runtime/control/set-priority`. It does not affect dispatch ordering
// across modules (spec §4.1: different modules dispatch independently); it
// is bookkeeping surfaced via Info/ListModules only.
func (r *Registry) SetPriority(name string, p Priority) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.modules[name]
	if !ok {
		return false
	}
	e.desc.Priority = p
	return true
}

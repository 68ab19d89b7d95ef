// Package gpubroker implements spec component C23: a process-wide GPU
// memory accounting broker. It recommends evictions but never performs
// them itself. No teacher package allocates GPU memory, so this is
// grounded on spec §5's own stated rationale ("a single mutex — contention
// is tolerable because operations are O(n) in allocations, n is small"),
// mirroring the single-mutex discipline the inference queue (C11,
// `pkg/inference/queue`) already uses for its tier lists.
package gpubroker

import (
	"sort"
	"sync"
	"time"
)

// Allocation is one tracked GPU memory grant.
type Allocation struct {
	ID       string
	Owner    string
	SizeMB   int64
	LastUsed time.Time
	Priority float64
}

// Request is allocate's input.
type Request struct {
	ID       string
	Owner    string
	SizeMB   int64
	Priority float64
}

// Decision is allocate's outcome kind.
type Decision string

const (
	Granted      Decision = "Granted"
	NeedEviction Decision = "NeedEviction"
	Denied       Decision = "Denied"
)

// AllocateResult is allocate's return value.
type AllocateResult struct {
	Decision         Decision
	SuggestedVictims []Allocation
	Reason           string
}

// Status is status()'s return value.
type Status struct {
	TotalMB         int64
	UsedMB          int64
	AvailableMB     int64
	Pressure        float64
	AllocationCount int
}

// defaultEvictionThreshold is the fraction of total memory above which
// eviction candidates (priority < 0.9, not requester-owned) are surfaced,
// per spec §4.14's default of 0.8.
const defaultEvictionThreshold = 0.8

// evictionPriorityCeiling excludes high-priority allocations from ever
// being suggested as victims, per spec §4.14.
const evictionPriorityCeiling = 0.9

// Broker is a process-wide GPU memory accounting broker, normally accessed
// through a singleton handle (see Default).
type Broker struct {
	mu sync.Mutex

	totalMB           int64
	evictionThreshold float64
	now               func() time.Time

	allocations map[string]Allocation
}

// New builds a Broker with the given total memory budget.
func New(totalMB int64) *Broker {
	return &Broker{
		totalMB:           totalMB,
		evictionThreshold: defaultEvictionThreshold,
		now:               time.Now,
		allocations:       make(map[string]Allocation),
	}
}

var (
	defaultMu     sync.Mutex
	defaultBroker *Broker
)

// Default returns the process-wide singleton handle, constructing it with
// totalMB on first call. Subsequent calls ignore totalMB and return the
// existing instance.
func Default(totalMB int64) *Broker {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBroker == nil {
		defaultBroker = New(totalMB)
	}
	return defaultBroker
}

func (b *Broker) usedLocked() int64 {
	var used int64
	for _, a := range b.allocations {
		used += a.SizeMB
	}
	return used
}

// Allocate grants, requests eviction, or denies a GPU memory request per
// spec §4.14's three-way decision.
func (b *Broker) Allocate(req Request) AllocateResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()

	if existing, ok := b.allocations[req.ID]; ok {
		existing.LastUsed = now
		b.allocations[req.ID] = existing
		return AllocateResult{Decision: Granted}
	}

	used := b.usedLocked()
	if used+req.SizeMB <= b.totalMB {
		b.allocations[req.ID] = Allocation{
			ID:       req.ID,
			Owner:    req.Owner,
			SizeMB:   req.SizeMB,
			LastUsed: now,
			Priority: req.Priority,
		}
		return AllocateResult{Decision: Granted}
	}

	shortfall := used + req.SizeMB - b.totalMB
	victims := b.evictionCandidatesLocked(req.Owner, now)

	var coveredSize int64
	suggested := make([]Allocation, 0, len(victims))
	for _, v := range victims {
		if coveredSize >= shortfall {
			break
		}
		suggested = append(suggested, v)
		coveredSize += v.SizeMB
	}

	if coveredSize >= shortfall {
		return AllocateResult{Decision: NeedEviction, SuggestedVictims: suggested}
	}

	return AllocateResult{Decision: Denied, Reason: "insufficient evictable memory to cover request"}
}

// evictionCandidatesLocked ranks evictable allocations (not owned by
// requester, priority < ceiling) by eviction score
// age_seconds/(priority*10) descending, per spec §4.14. Callers must hold
// b.mu.
func (b *Broker) evictionCandidatesLocked(requesterOwner string, now time.Time) []Allocation {
	var candidates []Allocation
	for _, a := range b.allocations {
		if a.Owner == requesterOwner || a.Priority >= evictionPriorityCeiling {
			continue
		}
		candidates = append(candidates, a)
	}

	score := func(a Allocation) float64 {
		ageSeconds := now.Sub(a.LastUsed).Seconds()
		priority := a.Priority
		if priority <= 0 {
			priority = 0.01
		}
		return ageSeconds / (priority * 10)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})
	return candidates
}

// Release removes an allocation. Releasing an unknown id is a no-op.
func (b *Broker) Release(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.allocations, id)
}

// Touch refreshes an allocation's last_used timestamp. Touching an unknown
// id is a no-op.
func (b *Broker) Touch(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a, ok := b.allocations[id]; ok {
		a.LastUsed = b.now()
		b.allocations[id] = a
	}
}

// Status reports the broker's current memory accounting.
func (b *Broker) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	used := b.usedLocked()
	pressure := 0.0
	if b.totalMB > 0 {
		pressure = float64(used) / float64(b.totalMB)
	}

	return Status{
		TotalMB:         b.totalMB,
		UsedMB:          used,
		AvailableMB:     b.totalMB - used,
		Pressure:        pressure,
		AllocationCount: len(b.allocations),
	}
}

// ListAllocations returns a snapshot of all tracked allocations.
func (b *Broker) ListAllocations() []Allocation {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Allocation, 0, len(b.allocations))
	for _, a := range b.allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Package cognition implements spec component C21: a per-persona inbox and
// message-priority engine. There is no direct teacher equivalent (the
// teacher's agents are request/response, not inbox-driven personas), so the
// shape is grounded on the same registry/metrics idiom used throughout this
// module (mutex-guarded state, monotonic counters) and on
// `pkg/runtime/registry.go`'s clamped-weighted-sum style for scoring.
package cognition

import (
	"strings"
	"sync"
)

// SenderKind ranks the source of an inbound message for priority scoring.
type SenderKind string

const (
	SenderHuman   SenderKind = "Human"
	SenderPersona SenderKind = "Persona"
	SenderAgent   SenderKind = "Agent"
	SenderSystem  SenderKind = "System"
)

// senderWeight assigns the per-kind constant spec §4.12 requires:
// Human > Persona > Agent > System.
var senderWeight = map[SenderKind]float64{
	SenderHuman:   1.0,
	SenderPersona: 0.7,
	SenderAgent:   0.4,
	SenderSystem:  0.1,
}

// Weights controls calculate_priority's scoring. Values are configuration,
// per spec §4.12's "exact weights are configuration."
type Weights struct {
	Recency           float64
	Mention           float64
	Room              float64
	Sender            float64
	VoiceBoost        float64
	// RecencyHalfLifeMs controls how fast the recency factor decays.
	RecencyHalfLifeMs float64
}

// DefaultWeights returns a reasonable starting configuration.
func DefaultWeights() Weights {
	return Weights{
		Recency:           0.2,
		Mention:           0.35,
		Room:              0.15,
		Sender:            0.2,
		VoiceBoost:        0.1,
		RecencyHalfLifeMs: 60_000,
	}
}

// Message is an inbound item considered for priority scoring and enqueue.
type Message struct {
	Content    string
	SenderKind SenderKind
	SenderID   string
	IsVoice    bool
	RoomID     string
	NowMs      int64
}

// PriorityFactors breaks down calculate_priority's contributing terms.
type PriorityFactors struct {
	Recency    float64
	Mention    float64
	Room       float64
	Sender     float64
	VoiceBoost float64
}

// PriorityResult is calculate_priority's return value.
type PriorityResult struct {
	Score   float64
	Factors PriorityFactors
}

// FastPathDecision is fast_path_decision's return value.
type FastPathDecision struct {
	ShouldRespond  bool
	Confidence     float64
	Reason         string
	DecisionTimeMs float64
	FastPathUsed   bool
}

// State is a persona's mutable cognition state, per spec §4.12.
type State struct {
	Energy           float64
	Attention        float64
	Mood             string
	InboxLoad        int
	LastActivityTime int64
	ResponseCount    uint64
	ComputeBudget    float64
	ServiceCadenceMs int64
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Engine holds one persona's inbox and state, guarded by a single mutex —
// contention is tolerable since inbox operations are O(1)/O(capacity) and
// capacity is small, mirroring the GPU broker's single-mutex rationale in
// spec §5.
type Engine struct {
	mu sync.Mutex

	personaName  string
	roomAffinity map[string]bool
	weights      Weights
	inboxCap     int

	state State
	inbox []Message
}

// New builds an Engine for a persona with the given display name and the
// rooms it's a member of (used for the "room" priority factor).
func New(personaName string, rooms []string, weights Weights, inboxCap int) *Engine {
	affinity := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		affinity[r] = true
	}
	return &Engine{
		personaName:  personaName,
		roomAffinity: affinity,
		weights:      weights,
		inboxCap:     inboxCap,
		state: State{
			Energy:           1,
			Attention:        1,
			ComputeBudget:    1,
			ServiceCadenceMs: 1000,
		},
	}
}

// CalculatePriority scores an inbound message per spec §4.12.
func (e *Engine) CalculatePriority(msg Message) PriorityResult {
	e.mu.Lock()
	lastActivity := e.state.LastActivityTime
	affinity := e.roomAffinity[msg.RoomID]
	e.mu.Unlock()

	factors := PriorityFactors{}

	elapsed := float64(msg.NowMs - lastActivity)
	if elapsed < 0 {
		elapsed = 0
	}
	halfLife := e.weights.RecencyHalfLifeMs
	if halfLife <= 0 {
		halfLife = 1
	}
	// Exponential decay: fresh activity yields recency near 1, decaying
	// toward 0 as elapsed time grows relative to the half-life.
	recency := 1.0 / (1.0 + elapsed/halfLife)
	factors.Recency = recency * e.weights.Recency

	if strings.Contains(strings.ToLower(msg.Content), strings.ToLower(e.personaName)) {
		factors.Mention = e.weights.Mention
	}

	if affinity {
		factors.Room = e.weights.Room
	}

	factors.Sender = senderWeight[msg.SenderKind] * e.weights.Sender

	if msg.IsVoice {
		factors.VoiceBoost = e.weights.VoiceBoost
	}

	score := clamp01(factors.Recency + factors.Mention + factors.Room + factors.Sender + factors.VoiceBoost)
	return PriorityResult{Score: score, Factors: factors}
}

// FastPathDecision makes a quick-reject decision per spec §4.12: a message
// plainly not addressing this persona (no mention, sender is another agent,
// low priority) is rejected without deeper consideration.
func (e *Engine) FastPathDecision(msg Message) FastPathDecision {
	result := e.CalculatePriority(msg)
	mentioned := result.Factors.Mention > 0

	if !mentioned && msg.SenderKind == SenderAgent && result.Score < 0.3 {
		return FastPathDecision{
			ShouldRespond:  false,
			Confidence:     0.9,
			Reason:         "no mention, low-priority agent message",
			DecisionTimeMs: 0,
			FastPathUsed:   true,
		}
	}

	if !mentioned && result.Score < 0.2 {
		return FastPathDecision{
			ShouldRespond:  false,
			Confidence:     0.7,
			Reason:         "low priority, no mention",
			DecisionTimeMs: 0,
			FastPathUsed:   true,
		}
	}

	return FastPathDecision{
		ShouldRespond:  true,
		Confidence:     result.Score,
		Reason:         "requires full consideration",
		DecisionTimeMs: 0,
		FastPathUsed:   false,
	}
}

// Enqueue inserts msg into the bounded inbox, dropping the oldest entry if
// at capacity, and updates inbox_load. The consumer side is out of scope
// per spec §4.12.
func (e *Engine) Enqueue(msg Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inboxCap > 0 && len(e.inbox) >= e.inboxCap {
		e.inbox = e.inbox[1:]
	}
	e.inbox = append(e.inbox, msg)
	e.state.InboxLoad = len(e.inbox)
}

// Dequeue removes and returns the oldest inbox entry, if any.
func (e *Engine) Dequeue() (Message, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.inbox) == 0 {
		return Message{}, false
	}
	msg := e.inbox[0]
	e.inbox = e.inbox[1:]
	e.state.InboxLoad = len(e.inbox)
	return msg, true
}

// Drift advances energy and attention toward 1 by the given amount, per
// spec §4.12's "monotonically drift towards 1 over time" invariant. Callers
// invoke this on their own service_cadence_ms cadence.
func (e *Engine) Drift(amount float64, nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Energy = driftToward(e.state.Energy, 1, amount)
	e.state.Attention = driftToward(e.state.Attention, 1, amount)
	e.state.LastActivityTime = nowMs
}

func driftToward(current, target, amount float64) float64 {
	if current < target {
		return clamp01(current + amount)
	}
	if current > target {
		return clamp01(current - amount)
	}
	return current
}

// RecordResponse decrements energy and attention and bumps response_count
// and last_activity_time, per spec §4.12's "each response decrements them."
func (e *Engine) RecordResponse(decrement float64, nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Energy = clamp01(e.state.Energy - decrement)
	e.state.Attention = clamp01(e.state.Attention - decrement)
	e.state.ResponseCount++
	e.state.LastActivityTime = nowMs
}

// State returns a copy of the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ServiceCadence returns the configured cadence, raised when inbox_load
// exceeds threshold, per spec §4.12's "higher cadence when inbox_load >
// threshold."
func (e *Engine) ServiceCadence(threshold int) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.InboxLoad > threshold && e.state.ServiceCadenceMs > 1 {
		return e.state.ServiceCadenceMs / 2
	}
	return e.state.ServiceCadenceMs
}

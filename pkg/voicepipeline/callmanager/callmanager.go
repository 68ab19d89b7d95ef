// Package callmanager implements spec component C20: the lifecycle of a
// call — its participant set, each participant's VAD/ring pairing, and the
// channel surface consumers use to receive completed utterances. It is a
// new package: the teacher's `pkg/voice/backend/iface.VoiceSession` models
// a single user/agent conversation (`ProcessAudio`/`ReceiveAudio`/
// `GetState`), not a multi-participant roster, so that interface isn't a
// structural fit here — but its lifecycle shape (Start/Stop, a receive
// channel, a state getter) is the direct model for Call's own
// Start/Stop/Utterances/State surface below.
package callmanager

import (
	"sync"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/voicepipeline/mixer"
	"github.com/continuum-run/continuum/pkg/voicepipeline/vad"
)

// State is a call's lifecycle state.
type State string

const (
	StateOpen   State = "Open"
	StateClosed State = "Closed"
)

// ClassifierFactory builds a fresh stage-2 VAD classifier for a newly
// joined participant.
type ClassifierFactory func() vad.Classifier

// Call owns a set of participants keyed by user-id and fans their
// completed utterances into a single channel, per spec §4.8.
type Call struct {
	mu    sync.Mutex
	state State

	sessionID         string
	frameSize         int
	vadConfig         vad.Config
	classifierFactory ClassifierFactory
	nowMs             func() int64

	participants map[string]*mixer.Participant
	utterances   chan mixer.UtteranceEvent
	interrupt    chan string // user-id of the participant that triggered an interrupt
}

// New builds a Call for sessionID. utteranceBuffer sizes the completed-
// utterance channel; interruptBuffer sizes the interrupt channel.
func New(sessionID string, frameSize int, vadConfig vad.Config, classifierFactory ClassifierFactory, nowMs func() int64, utteranceBuffer, interruptBuffer int) *Call {
	return &Call{
		state:             StateOpen,
		sessionID:         sessionID,
		frameSize:         frameSize,
		vadConfig:         vadConfig,
		classifierFactory: classifierFactory,
		nowMs:             nowMs,
		participants:      make(map[string]*mixer.Participant),
		utterances:        make(chan mixer.UtteranceEvent, utteranceBuffer),
		interrupt:         make(chan string, interruptBuffer),
	}
}

// Join adds a participant to the call.
func (c *Call) Join(userID, displayName, kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return core.NewKindError("callmanager.Join", core.KindBadParam, "call is not open", nil)
	}
	if _, exists := c.participants[userID]; exists {
		return core.NewKindError("callmanager.Join", core.KindBadParam, "participant already joined", nil)
	}

	detector := vad.NewDetector(c.vadConfig, c.classifierFactory())
	c.participants[userID] = mixer.NewParticipant(userID, displayName, kind, c.frameSize, detector)
	return nil
}

// Leave drops a participant's channel, per spec §5's "voice utterance
// loops end when the call manager drops the participant's channel."
func (c *Call) Leave(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.participants, userID)
}

// PushAudio feeds samples from userID's stream through its ring/VAD
// pipeline, publishing any completed utterances onto the call's
// utterance channel. Publishing is non-blocking: a full channel drops the
// utterance rather than stalling the audio ingest path, matching the
// event bus's own best-effort-with-overflow policy (spec §4.2).
func (c *Call) PushAudio(userID string, samples []int16) error {
	c.mu.Lock()
	p, ok := c.participants[userID]
	sessionID := c.sessionID
	c.mu.Unlock()

	if !ok {
		return core.NewKindError("callmanager.PushAudio", core.KindBadParam, "unknown participant", nil)
	}

	events := p.DrainFrames(samples, sessionID, c.nowMs)
	for _, ev := range events {
		select {
		case c.utterances <- ev:
		default:
		}
	}
	return nil
}

// Utterances returns the channel consumers read completed utterances
// from.
func (c *Call) Utterances() <-chan mixer.UtteranceEvent {
	return c.utterances
}

// Interrupt signals that userID should interrupt any in-flight TTS
// playback for this call.
func (c *Call) Interrupt(userID string) {
	select {
	case c.interrupt <- userID:
	default:
	}
}

// Interrupts returns the channel consumers read interrupt signals from.
func (c *Call) Interrupts() <-chan string {
	return c.interrupt
}

// Participants returns a snapshot of joined participant ids.
func (c *Call) Participants() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.participants))
	for id := range c.participants {
		ids = append(ids, id)
	}
	return ids
}

// State returns the call's current lifecycle state.
func (c *Call) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close ends the call and drops all participants.
func (c *Call) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.participants = make(map[string]*mixer.Participant)
}

// Manager owns the set of active calls, keyed by session id.
type Manager struct {
	mu    sync.Mutex
	calls map[string]*Call
}

// NewManager builds an empty Manager.
func NewManager() *Manager {
	return &Manager{calls: make(map[string]*Call)}
}

// StartCall registers and returns a new Call for sessionID.
func (m *Manager) StartCall(call *Call, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[sessionID] = call
}

// GetCall looks up an active call by session id.
func (m *Manager) GetCall(sessionID string) (*Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.calls[sessionID]
	return c, ok
}

// EndCall closes and removes a call.
func (m *Manager) EndCall(sessionID string) {
	m.mu.Lock()
	call, ok := m.calls[sessionID]
	delete(m.calls, sessionID)
	m.mu.Unlock()

	if ok {
		call.Close()
	}
}

// Package arbitration implements spec component C19: pure, synchronous
// turn arbitration across voice-session participants (direct address,
// topical expertise, round-robin, statement fall-through), plus the
// per-session TTS-responder record. No teacher package performs this kind
// of multi-participant turn selection, so the four-rule cascade below is
// taken directly from spec §4.9's own ordered algorithm description;
// session-keyed state uses the same mutex-guarded-map idiom as the rest
// of this runtime's small shared-state components (e.g.
// `pkg/gpubroker.Broker`).
package arbitration

import (
	"strings"
	"sync"
)

// Candidate is one AI participant eligible to respond, per spec §4.9.
type Candidate struct {
	UserID      string
	DisplayName string
	Expertise   []string
}

// expertiseWeight is spec §4.9's per-keyword score contribution.
const expertiseWeight = 0.3

// expertiseThreshold is the minimum score to win on expertise alone.
const expertiseThreshold = 0.2

var questionPrefixes = []string{"what", "how", "why", "can", "could", "should", "would"}

func isQuestion(transcript string) bool {
	if strings.Contains(transcript, "?") {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(transcript))
	for _, p := range questionPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// nameMatches checks transcript for candidate's display name, case-
// insensitively, also with hyphens-for-spaces, also as "@name", per spec
// §4.9 rule 1.
func nameMatches(transcriptLower, displayName string) bool {
	if displayName == "" {
		return false
	}
	nameLower := strings.ToLower(displayName)
	hyphenated := strings.ReplaceAll(nameLower, " ", "-")
	at := "@" + nameLower

	return strings.Contains(transcriptLower, nameLower) ||
		strings.Contains(transcriptLower, hyphenated) ||
		strings.Contains(transcriptLower, at)
}

// Select runs the four-rule cascade from spec §4.9 and returns the chosen
// candidate's index into candidates, or -1 if no responder is chosen.
// lastResponderID is used for the round-robin rule; pass "" if there is no
// prior responder for this session.
func Select(transcript string, candidates []Candidate, lastResponderID string) int {
	if len(candidates) == 0 {
		return -1
	}
	transcriptLower := strings.ToLower(transcript)

	// Rule 1: direct address.
	for i := range candidates {
		if nameMatches(transcriptLower, candidates[i].DisplayName) {
			return i
		}
	}

	// Rule 2: topical expertise.
	bestIdx := -1
	bestScore := 0.0
	for i := range candidates {
		var score float64
		for _, kw := range candidates[i].Expertise {
			if kw == "" {
				continue
			}
			if strings.Contains(transcriptLower, strings.ToLower(kw)) {
				score += expertiseWeight
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore > expertiseThreshold {
		return bestIdx
	}

	// Rule 3: round-robin on questions.
	if isQuestion(transcript) {
		if lastResponderID == "" {
			return 0
		}
		for i := range candidates {
			if candidates[i].UserID == lastResponderID {
				return (i + 1) % len(candidates)
			}
		}
		return 0
	}

	// Rule 4: statement fall-through.
	return -1
}

// Arbiter tracks per-session TTS-routed responders.
type Arbiter struct {
	mu         sync.Mutex
	responders map[string]string // sessionID -> personaID
}

// New builds an empty Arbiter.
func New() *Arbiter {
	return &Arbiter{responders: make(map[string]string)}
}

// RouteResponder records that persona was chosen as session's TTS
// responder.
func (a *Arbiter) RouteResponder(sessionID, personaID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responders[sessionID] = personaID
}

// ShouldRouteToTTS reports whether persona matches session's current
// recorded responder.
func (a *Arbiter) ShouldRouteToTTS(sessionID, personaID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.responders[sessionID] == personaID
}

// ClearVoiceResponder releases session's recorded responder.
func (a *Arbiter) ClearVoiceResponder(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.responders, sessionID)
}

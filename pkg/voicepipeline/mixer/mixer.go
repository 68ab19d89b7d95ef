// Package mixer implements spec component C18: a per-participant sample
// ring feeding the VAD stage, and the broadcast of utterance events once
// a sentence completes. Grounded on spec §4.8's "PCM is written to the
// ring in arbitrary-sized pushes; the VAD stage consumes in fixed
// frames" requirement; the ring itself follows the same small-buffer,
// single-owner-goroutine discipline as `pkg/voicepipeline/vad.Detector`
// (no internal locking — one ring belongs to one participant's frame
// loop, matching spec §5's "per-call tasks for the voice pipeline").
package mixer

import (
	"github.com/continuum-run/continuum/pkg/voicepipeline/vad"
)

// UtteranceEvent is spec §4.8's per-sentence transcription trigger.
type UtteranceEvent struct {
	SessionID   string
	SpeakerID   string
	SpeakerName string
	SpeakerKind string
	Samples     []int16
	TimestampMs int64
}

// Ring buffers arbitrary-sized PCM pushes and yields fixed-size frames for
// the VAD stage to consume.
type Ring struct {
	frameSize int
	buf       []int16
}

// NewRing builds a Ring yielding frames of frameSize samples (see
// vad.FrameSamples16kHz for the default 30ms cadence).
func NewRing(frameSize int) *Ring {
	if frameSize <= 0 {
		frameSize = vad.FrameSamples16kHz
	}
	return &Ring{frameSize: frameSize}
}

// Push appends samples to the ring's internal buffer.
func (r *Ring) Push(samples []int16) {
	r.buf = append(r.buf, samples...)
}

// PopFrame removes and returns one fixed-size frame if enough samples are
// buffered, else returns ok=false.
func (r *Ring) PopFrame() (frame []int16, ok bool) {
	if len(r.buf) < r.frameSize {
		return nil, false
	}
	frame = make([]int16, r.frameSize)
	copy(frame, r.buf[:r.frameSize])
	r.buf = r.buf[r.frameSize:]
	return frame, true
}

// Buffered reports the number of samples currently queued.
func (r *Ring) Buffered() int {
	return len(r.buf)
}

// Participant pairs a Ring with its VAD session, per spec §4.8's "each
// participant has a PCM ring [and] a VAD session."
type Participant struct {
	UserID      string
	DisplayName string
	Kind        string

	Ring     *Ring
	Detector *vad.Detector
}

// NewParticipant builds a Participant with a fresh ring and the given VAD
// detector.
func NewParticipant(userID, displayName, kind string, frameSize int, detector *vad.Detector) *Participant {
	return &Participant{
		UserID:      userID,
		DisplayName: displayName,
		Kind:        kind,
		Ring:        NewRing(frameSize),
		Detector:    detector,
	}
}

// DrainFrames pushes samples into the participant's ring, runs every
// complete frame through VAD, and returns any utterances that completed
// as a result, tagged with sessionID and a caller-provided timestamp
// function.
func (p *Participant) DrainFrames(samples []int16, sessionID string, nowMs func() int64) []UtteranceEvent {
	p.Ring.Push(samples)

	var events []UtteranceEvent
	for {
		frame, ok := p.Ring.PopFrame()
		if !ok {
			break
		}
		outcome := p.Detector.ProcessFrame(frame)
		if outcome.SentenceComplete {
			events = append(events, UtteranceEvent{
				SessionID:   sessionID,
				SpeakerID:   p.UserID,
				SpeakerName: p.DisplayName,
				SpeakerKind: p.Kind,
				Samples:     outcome.Utterance,
				TimestampMs: nowMs(),
			})
		}
	}
	return events
}

// Package messagebus implements the runtime's process-wide event bus (spec
// component C1): a publish/subscribe topic stream where watchers block on a
// matching event with a timeout. It is adapted from the teacher's
// InMemoryMessageBus (originally a schema.Message-typed pub/sub with
// unbounded, synchronous fan-out) into the spec's {topic, payload,
// timestamp_us, source_handle} event shape with bounded per-subscriber
// buffers, glob topic matching, and overflow accounting.
package messagebus

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
)

// Event is the wire shape described in spec §3 ("Event").
type Event struct {
	Topic        string
	Payload      any
	TimestampUs  uint64
	SourceHandle string
}

// DefaultSubscriberBuffer is the default bounded channel size for a
// subscription; once full, the oldest pending event is dropped (spec §4.2).
const DefaultSubscriberBuffer = 64

// subscription is one registered watcher/listener on the bus.
type subscription struct {
	id       uint64
	pattern  string
	ch       chan Event
	mu       sync.Mutex
	overflow atomic.Uint64
	closed   atomic.Bool
}

func (s *subscription) deliver(evt Event) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- evt:
		return
	default:
	}
	// Buffer full: drop the oldest pending event and retry once, per spec's
	// "lossy past subscriber buffer capacity ... best-effort with overflow
	// indication".
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.ch:
		s.overflow.Add(1)
	default:
	}
	select {
	case s.ch <- evt:
	default:
		s.overflow.Add(1)
	}
}

// Bus is the process-wide event bus. The zero value is not usable; use New.
type Bus struct {
	mu      sync.RWMutex
	subs    map[uint64]*subscription
	nextID  atomic.Uint64
	nowFunc func() time.Time
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		subs:    make(map[uint64]*subscription),
		nowFunc: time.Now,
	}
}

// topicMatch implements spec §3's "exact or glob" rule: a pattern ending in
// "*" matches any topic sharing its non-"*" prefix (e.g. "voice/*" matches
// "voice/session/open"); any other pattern must match exactly.
func topicMatch(pattern, topic string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(topic, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == topic
}

// Publish delivers payload on topic to every matching subscriber, in publish
// order per subscriber (spec §5 ordering guarantee). sourceHandle may be "".
func (b *Bus) Publish(topic string, payload any, sourceHandle string) Event {
	evt := Event{
		Topic:        topic,
		Payload:      payload,
		TimestampUs:  uint64(b.nowFunc().UnixMicro()),
		SourceHandle: sourceHandle,
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subs {
		if topicMatch(s.pattern, topic) {
			s.deliver(evt)
		}
	}
	return evt
}

// Subscription is the caller-visible handle for an active subscription.
type Subscription struct {
	bus *Bus
	sub *subscription
}

// Events returns the channel events for this subscription arrive on.
func (s *Subscription) Events() <-chan Event { return s.sub.ch }

// Overflow returns the count of events dropped due to a full buffer, reported
// on demand per spec's OverflowIndication policy (never raised as an error).
func (s *Subscription) Overflow() uint64 { return s.sub.overflow.Load() }

// Unsubscribe removes the subscription; further publishes are not delivered.
func (s *Subscription) Unsubscribe() {
	s.sub.closed.Store(true)
	s.bus.mu.Lock()
	delete(s.bus.subs, s.sub.id)
	s.bus.mu.Unlock()
}

// Subscribe registers a long-lived subscriber for pattern (exact topic or
// trailing-wildcard glob) with a bounded buffer of bufSize (DefaultSubscriberBuffer
// if <= 0).
func (b *Bus) Subscribe(pattern string, bufSize int) *Subscription {
	if bufSize <= 0 {
		bufSize = DefaultSubscriberBuffer
	}
	id := b.nextID.Add(1)
	s := &subscription{id: id, pattern: pattern, ch: make(chan Event, bufSize)}
	b.mu.Lock()
	b.subs[id] = s
	b.mu.Unlock()
	return &Subscription{bus: b, sub: s}
}

// Watch registers a one-shot subscriber for pattern and blocks until either a
// matching event arrives or timeout elapses, implementing the sentinel
// interpreter's Watch step (spec §4.2-§4.3). A zero or negative timeout uses
// the step default of 300s.
func (b *Bus) Watch(ctx context.Context, pattern string, timeout time.Duration) (Event, error) {
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	sub := b.Subscribe(pattern, 1)
	defer sub.Unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case evt := <-sub.Events():
		return evt, nil
	case <-timer.C:
		return Event{}, core.NewKindError("messagebus.Watch", core.KindTimeout,
			"no event matching \""+pattern+"\" within timeout", nil)
	case <-ctx.Done():
		return Event{}, core.NewKindError("messagebus.Watch", core.KindCancelled,
			"watch cancelled", ctx.Err())
	}
}

// SubscriberCount reports the number of active subscriptions, used by
// runtime/control introspection commands.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

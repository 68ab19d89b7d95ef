// Package queue implements the three-tier priority inference queue (spec
// component C11): Hot/Warm/Background requests feeding a single
// forward-pass worker, strict priority across tiers and FIFO within a tier.
package queue

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/inference/iface"
)

// Tier is one of spec §4.6's three strict priority tiers.
type Tier int

const (
	Hot Tier = iota
	Warm
	Background
)

func (t Tier) String() string {
	switch t {
	case Hot:
		return "hot"
	case Warm:
		return "warm"
	default:
		return "background"
	}
}

// Request is one forward-pass submission.
type Request struct {
	Tokens   []int
	Position int
}

// Result is what Submit returns on success.
type Result struct {
	Logits []float64
}

type job struct {
	ctx         context.Context
	req         Request
	submittedAt time.Time
	resultCh    chan jobOutcome
}

type jobOutcome struct {
	result Result
	err    error
}

// TierMetrics tracks spec §4.6's "per-tier counters: count completed,
// accumulated wait-time".
type TierMetrics struct {
	Completed        uint64
	AccumulatedWaitNs uint64
}

// AvgWaitNs derives the average wait time on request, per spec §4.6.
func (m TierMetrics) AvgWaitNs() float64 {
	if m.Completed == 0 {
		return 0
	}
	return float64(m.AccumulatedWaitNs) / float64(m.Completed)
}

// BackendProvider resolves the currently active backend on each forward
// pass, so a LoRA hot-swap (spec §9) is picked up without restarting the
// queue's worker.
type BackendProvider func() iface.Backend

// Queue is the three-tier scheduler. Create with New and start the worker
// with Run in its own goroutine.
type Queue struct {
	mu    sync.Mutex
	tiers [3]*list.List
	wake  chan struct{}

	metrics [3]TierMetrics

	backend BackendProvider
}

// New builds an empty Queue that will pull the active backend from
// backendProvider on each forward pass.
func New(backendProvider BackendProvider) *Queue {
	q := &Queue{
		wake:    make(chan struct{}, 1),
		backend: backendProvider,
	}
	for i := range q.tiers {
		q.tiers[i] = list.New()
	}
	return q
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Submit enqueues req on tier and blocks until its forward pass completes,
// ctx is cancelled, or the queue is stopped.
func (q *Queue) Submit(ctx context.Context, tier Tier, req Request) (Result, error) {
	j := &job{ctx: ctx, req: req, submittedAt: time.Now(), resultCh: make(chan jobOutcome, 1)}

	q.mu.Lock()
	q.tiers[tier].PushBack(j)
	q.mu.Unlock()
	q.notify()

	select {
	case out := <-j.resultCh:
		return out.result, out.err
	case <-ctx.Done():
		return Result{}, core.NewKindError("queue.Submit", core.KindCancelled, "inference request cancelled", ctx.Err())
	}
}

// next pops the highest-priority pending job: Hot first, then Warm, then
// Background (spec §4.6), FIFO within a tier.
func (q *Queue) next() (*job, Tier, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for tier := Hot; tier <= Background; tier++ {
		l := q.tiers[tier]
		if l.Len() == 0 {
			continue
		}
		front := l.Front()
		l.Remove(front)
		return front.Value.(*job), tier, true
	}
	return nil, 0, false
}

// Run drains the queue until ctx is cancelled. Intended to be the body of a
// single dedicated worker goroutine (spec §4.6: "requests are pulled by a
// single worker").
func (q *Queue) Run(ctx context.Context) {
	for {
		j, tier, ok := q.next()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-ctx.Done():
				return
			}
		}

		wait := time.Since(j.submittedAt)

		var outcome jobOutcome
		if j.ctx.Err() != nil {
			outcome = jobOutcome{err: core.NewKindError("queue.Run", core.KindCancelled, "request cancelled before dispatch", j.ctx.Err())}
		} else {
			b := q.backend()
			if b == nil {
				outcome = jobOutcome{err: core.NewKindError("queue.Run", core.KindNotInitialized, "no inference backend loaded", nil)}
			} else {
				logits, err := b.Forward(j.ctx, j.req.Tokens, j.req.Position)
				if err != nil {
					outcome = jobOutcome{err: err}
				} else {
					outcome = jobOutcome{result: Result{Logits: logits}}
				}
			}
		}

		q.mu.Lock()
		m := &q.metrics[tier]
		m.Completed++
		m.AccumulatedWaitNs += uint64(wait.Nanoseconds())
		q.mu.Unlock()

		select {
		case j.resultCh <- outcome:
		default:
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Metrics returns a snapshot of the per-tier counters.
func (q *Queue) Metrics() map[Tier]TierMetrics {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make(map[Tier]TierMetrics, 3)
	for tier := Hot; tier <= Background; tier++ {
		out[tier] = q.metrics[tier]
	}
	return out
}

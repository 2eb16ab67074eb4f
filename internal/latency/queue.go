// Package latency injects a fixed artificial one-way delay into message
// delivery while preserving submission order.
package latency

import (
	"sync"
	"time"
)

// Policy selects how Submit behaves when a bounded queue is full.
type Policy int

const (
	// Block makes Submit wait until the dispatcher frees a slot.
	Block Policy = iota
	// DropOldest evicts the head of the queue to admit the new payload.
	DropOldest
)

// Sink receives released payloads, one at a time, in submission order.
type Sink func(payload any)

type envelope struct {
	payload   any
	releaseAt time.Time
}

// Queue delays every submitted payload by a fixed duration and hands it to
// the sink no earlier than its release time. A single dispatcher goroutine
// releases envelopes strictly in submission order: the head waits out its
// own timer, and anything queued behind it can never overtake, regardless of
// timer granularity.
//
// With capacity <= 0 the queue is unbounded; a sink slower than the
// submission rate then grows it without limit, which is why Depth is exposed
// as a metric and bounded policies exist.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []envelope
	closed  bool
	dropped uint64

	delay    time.Duration
	capacity int
	policy   Policy
	sink     Sink
	now      func() time.Time
	done     chan struct{}
}

// NewQueue starts a delay queue delivering to sink. Close must be called to
// release the dispatcher goroutine.
func NewQueue(delay time.Duration, capacity int, policy Policy, sink Sink) *Queue {
	q := &Queue{
		delay:    delay,
		capacity: capacity,
		policy:   policy,
		sink:     sink,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.dispatch()
	return q
}

// Submit schedules the payload for release after the configured delay.
// Submissions after Close are dropped.
func (q *Queue) Submit(payload any) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	if q.capacity > 0 {
		switch q.policy {
		case DropOldest:
			if len(q.items) >= q.capacity {
				q.items = q.items[1:]
				q.dropped++
			}
		case Block:
			for len(q.items) >= q.capacity && !q.closed {
				q.cond.Wait()
			}
			if q.closed {
				q.mu.Unlock()
				return
			}
		}
	}
	q.items = append(q.items, envelope{payload: payload, releaseAt: q.now().Add(q.delay)})
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Depth reports the number of payloads waiting for release.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped reports how many payloads a bounded queue has evicted.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close stops the dispatcher. Payloads not yet released are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	close(q.done)
}

func (q *Queue) dispatch() {
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			q.mu.Unlock()
			return
		}
		head := q.items[0]
		q.mu.Unlock()

		if wait := head.releaseAt.Sub(q.now()); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-q.done:
				timer.Stop()
				return
			}
		}

		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return
		}
		// The head may have been evicted by DropOldest while we slept; the
		// replacement head is younger, so re-check its release time.
		head = q.items[0]
		if head.releaseAt.After(q.now()) {
			q.mu.Unlock()
			continue
		}
		q.items = q.items[1:]
		q.cond.Broadcast()
		q.mu.Unlock()

		q.sink(head.payload)
	}
}

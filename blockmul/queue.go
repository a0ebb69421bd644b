// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

import (
	"context"
	"sync"
)

// computation tracks completion of one multiply call's jobs.
// done can never exceed total; done == total is the sole release
// condition for the waiter.
type computation struct {
	total    int
	done     int
	finished chan struct{} // closed when done == total
	// abandoned is set when the waiter gave up (context cancellation);
	// the final reportDone then evicts the record instead of the waiter.
	abandoned bool
}

// jobQueue is the single synchronization point between dispatching
// goroutines and the worker pool: a monitor guarding the pending FIFO
// list, the drain flag, and the per-computation records.
type jobQueue[T Numeric] struct {
	mu       sync.Mutex
	jobReady *sync.Cond // pending grew, or draining began

	pending  []Job[T]
	draining bool

	nextID int
	live   map[int]*computation
}

func newJobQueue[T Numeric]() *jobQueue[T] {
	q := &jobQueue[T]{live: make(map[int]*computation)}
	q.jobReady = sync.NewCond(&q.mu)
	return q
}

// submit registers a new computation and appends all of its jobs in a
// single critical section, so a computation is either fully enqueued
// before a drain or rejected as a whole; drain can never observe a
// half-submitted computation. Returns the computation id, or ok=false
// once the queue is draining.
func (q *jobQueue[T]) submit(jobs []Job[T]) (id int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.draining {
		return 0, false
	}

	id = q.nextID
	q.nextID++
	c := &computation{total: len(jobs), finished: make(chan struct{})}
	q.live[id] = c
	if len(jobs) == 0 {
		close(c.finished)
		return id, true
	}

	for i := range jobs {
		jobs[i].ComputationID = id
		q.pending = append(q.pending, jobs[i])
	}
	if len(jobs) == 1 {
		q.jobReady.Signal()
	} else {
		q.jobReady.Broadcast()
	}
	return id, true
}

// dequeue blocks until a job is available or the queue is drained and
// empty. ok=false means Stopped: the caller must exit its work loop.
// Pending jobs are still handed out while draining, so everything
// accepted before the drain runs to completion.
func (q *jobQueue[T]) dequeue() (job Job[T], ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) == 0 && !q.draining {
		q.jobReady.Wait()
	}
	if len(q.pending) == 0 {
		return Job[T]{}, false
	}

	job = q.pending[0]
	q.pending = q.pending[1:]
	if len(q.pending) == 0 {
		q.pending = nil // release the backing array between bursts
	}
	return job, true
}

// reportDone records the completion of one job of the given computation
// and releases the waiter once the whole computation is done.
func (q *jobQueue[T]) reportDone(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	c := q.live[id]
	if c == nil {
		// A record is only evicted after its last job reported, so this
		// state is unreachable from the worker loop.
		panic("blockmul: completion reported for unknown computation")
	}
	c.done++
	if c.done == c.total {
		close(c.finished)
		if c.abandoned {
			delete(q.live, id)
		}
	}
}

// await blocks until every job of the computation has completed, then
// evicts its record so memory stays bounded across many calls. If ctx
// expires first the record is marked abandoned (the computation still
// runs to completion and is evicted by its final reportDone) and the
// context error is returned.
func (q *jobQueue[T]) await(ctx context.Context, id int) error {
	q.mu.Lock()
	c := q.live[id]
	q.mu.Unlock()
	if c == nil {
		return nil
	}

	select {
	case <-c.finished:
		q.mu.Lock()
		delete(q.live, id)
		q.mu.Unlock()
		return nil
	case <-ctx.Done():
		q.mu.Lock()
		defer q.mu.Unlock()
		select {
		case <-c.finished:
			// Completed concurrently with cancellation; report success.
			delete(q.live, id)
			return nil
		default:
			c.abandoned = true
			return ctx.Err()
		}
	}
}

// drain puts the queue in draining state and wakes every goroutine
// blocked in dequeue. This must be a genuine broadcast: an arbitrary
// number of workers may be waiting, and each has to observe the drain
// flag and return Stopped exactly once.
func (q *jobQueue[T]) drain() {
	q.mu.Lock()
	q.draining = true
	q.mu.Unlock()
	q.jobReady.Broadcast()
}

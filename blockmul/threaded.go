// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ajroetker/go-blockmul/internal/cputopo"
)

// ErrClosed is returned by multiply calls issued after (or racing with)
// Close once the queue has stopped accepting work.
var ErrClosed = errors.New("blockmul: multiplier is closed")

// Threaded is a reentrant block-decomposed multiplier. Workers are
// spawned once at construction and reused across all computations;
// overlapping Multiply calls from any number of goroutines share the
// pool safely because completion is tracked per computation id.
type Threaded[T Numeric] struct {
	queue         *jobQueue[T]
	numWorkers    int
	blocksPerSide int

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewThreaded creates a multiplier with the given worker count and
// default block grid dimension. Workers are spawned immediately and
// persist until Close. If workers <= 0, GOMAXPROCS workers are used.
// If blocksPerSide <= 0, each Multiply call picks a grid whose block
// side fits the cache-tiling target for the host CPU.
func NewThreaded[T Numeric](workers, blocksPerSide int) *Threaded[T] {
	if workers <= 0 {
		workers = cputopo.Workers()
	}

	m := &Threaded[T]{
		queue:         newJobQueue[T](),
		numWorkers:    workers,
		blocksPerSide: blocksPerSide,
	}

	m.wg.Add(workers)
	for w := 0; w < workers; w++ {
		go m.worker()
	}
	return m
}

// worker is the main loop of each pool goroutine: fetch a job, compute
// its block, report completion, until the queue signals Stopped. A job
// in progress always runs to completion; the only exit path is the
// drain signal.
func (m *Threaded[T]) worker() {
	defer m.wg.Done()
	for {
		job, ok := m.queue.dequeue()
		if !ok {
			return
		}
		computeBlock(job)
		m.queue.reportDone(job.ComputationID)
	}
}

// NumWorkers returns the number of workers in the pool.
func (m *Threaded[T]) NumWorkers() int { return m.numWorkers }

// Multiply computes c = a × b using the default block grid dimension.
// It blocks until every block of this computation has been computed.
func (m *Threaded[T]) Multiply(a, b, c Matrix[T]) error {
	return m.MultiplyContext(context.Background(), a, b, c, m.gridFor(a.Size()))
}

// MultiplyGrid computes c = a × b decomposed into a
// blocksPerSide × blocksPerSide grid of block jobs.
func (m *Threaded[T]) MultiplyGrid(a, b, c Matrix[T], blocksPerSide int) error {
	return m.MultiplyContext(context.Background(), a, b, c, blocksPerSide)
}

// MultiplyContext is MultiplyGrid with a deadline: if ctx expires before
// the computation completes, the call returns the context error early.
// The computation itself still runs to completion in the background (in
// that case the contents of c are unspecified until the pool finishes
// its blocks).
func (m *Threaded[T]) MultiplyContext(ctx context.Context, a, b, c Matrix[T], blocksPerSide int) error {
	n := a.Size()
	if b.Size() != n || c.Size() != n {
		return fmt.Errorf("blockmul: size mismatch: a=%d b=%d c=%d", n, b.Size(), c.Size())
	}
	if blocksPerSide <= 0 {
		return fmt.Errorf("blockmul: blocks per side must be positive, got %d", blocksPerSide)
	}
	if n%blocksPerSide != 0 {
		return fmt.Errorf("blockmul: blocks per side %d does not divide matrix size %d", blocksPerSide, n)
	}

	// The kernel writes, not accumulates, each block exactly once, so a
	// clean accumulation target is established up front.
	zeroFill(c)

	jobs := make([]Job[T], 0, blocksPerSide*blocksPerSide)
	for blockRow := 0; blockRow < blocksPerSide; blockRow++ {
		for blockCol := 0; blockCol < blocksPerSide; blockCol++ {
			jobs = append(jobs, Job[T]{
				A:             a,
				B:             b,
				C:             c,
				BlockRow:      blockRow,
				BlockCol:      blockCol,
				BlocksPerSide: blocksPerSide,
			})
		}
	}

	id, ok := m.queue.submit(jobs)
	if !ok {
		return ErrClosed
	}
	return m.queue.await(ctx, id)
}

// Close drains the queue and joins every worker. Jobs already accepted
// run to completion before the workers stop; no pending job is dropped.
// Close returns only after all workers have exited and is safe to call
// multiple times.
func (m *Threaded[T]) Close() {
	m.closeOnce.Do(func() {
		m.queue.drain()
		m.wg.Wait()
	})
}

// gridFor resolves the grid dimension for the convenience overload.
func (m *Threaded[T]) gridFor(n int) int {
	if m.blocksPerSide > 0 {
		return m.blocksPerSide
	}
	return defaultGrid(n)
}

// defaultGrid picks the smallest grid (largest blocks) whose block side
// does not exceed the host cache-tiling target. Falls back to one block
// per element only when n has no smaller divisor that fits.
func defaultGrid(n int) int {
	target := cputopo.BlockSide()
	for d := 1; d <= n; d++ {
		if n%d == 0 && n/d <= target {
			return d
		}
	}
	return 1
}

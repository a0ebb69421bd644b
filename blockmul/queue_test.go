// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

import (
	"context"
	"testing"
	"time"
)

func TestSubmitAssignsUniqueIDs(t *testing.T) {
	q := newJobQueue[int]()

	id1, ok := q.submit(make([]Job[int], 2))
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}
	id2, ok := q.submit(make([]Job[int], 2))
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}
	if id1 == id2 {
		t.Errorf("computation ids collide: %d", id1)
	}
}

func TestDequeueFIFO(t *testing.T) {
	q := newJobQueue[int]()

	jobs := make([]Job[int], 5)
	for i := range jobs {
		jobs[i].BlockRow = i
	}
	id, ok := q.submit(jobs)
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}

	for i := 0; i < 5; i++ {
		job, ok := q.dequeue()
		if !ok {
			t.Fatalf("dequeue %d returned Stopped with jobs pending", i)
		}
		if job.BlockRow != i {
			t.Errorf("dequeue %d: BlockRow = %d, want %d (FIFO order)", i, job.BlockRow, i)
		}
		if job.ComputationID != id {
			t.Errorf("dequeue %d: ComputationID = %d, want %d", i, job.ComputationID, id)
		}
	}
}

func TestAwaitReleasesOnCompletionAndEvicts(t *testing.T) {
	q := newJobQueue[int]()

	id, ok := q.submit(make([]Job[int], 3))
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}

	go func() {
		for r := 0; r < 3; r++ {
			job, ok := q.dequeue()
			if !ok {
				return
			}
			q.reportDone(job.ComputationID)
		}
	}()

	if err := q.await(context.Background(), id); err != nil {
		t.Fatalf("await: %v", err)
	}

	q.mu.Lock()
	live := len(q.live)
	q.mu.Unlock()
	if live != 0 {
		t.Errorf("%d computation records left after await, want 0", live)
	}
}

func TestAwaitEmptyComputation(t *testing.T) {
	q := newJobQueue[int]()

	id, ok := q.submit(nil)
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}
	if err := q.await(context.Background(), id); err != nil {
		t.Fatalf("await on empty computation: %v", err)
	}
}

func TestAwaitContextCancelled(t *testing.T) {
	q := newJobQueue[int]()

	id, ok := q.submit(make([]Job[int], 1))
	if !ok {
		t.Fatal("submit rejected on a live queue")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.await(ctx, id); err != context.Canceled {
		t.Fatalf("await = %v, want context.Canceled", err)
	}

	// The abandoned computation is evicted by its final completion.
	job, ok := q.dequeue()
	if !ok {
		t.Fatal("dequeue returned Stopped with a job pending")
	}
	q.reportDone(job.ComputationID)

	q.mu.Lock()
	live := len(q.live)
	q.mu.Unlock()
	if live != 0 {
		t.Errorf("%d computation records left after abandoned completion, want 0", live)
	}
}

func TestDrainWakesAllWaiters(t *testing.T) {
	q := newJobQueue[int]()

	const waiters = 8
	stopped := make(chan bool, waiters)
	for w := 0; w < waiters; w++ {
		go func() {
			_, ok := q.dequeue()
			stopped <- ok
		}()
	}

	// Let the consumers park in dequeue before draining.
	time.Sleep(50 * time.Millisecond)
	q.drain()

	for i := 0; i < waiters; i++ {
		select {
		case ok := <-stopped:
			if ok {
				t.Errorf("waiter %d got a job from an empty drained queue", i)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("waiter %d never woke after drain", i)
		}
	}
}

func TestDrainDeliversPendingJobs(t *testing.T) {
	q := newJobQueue[int]()

	if _, ok := q.submit(make([]Job[int], 3)); !ok {
		t.Fatal("submit rejected on a live queue")
	}
	q.drain()

	for i := 0; i < 3; i++ {
		if _, ok := q.dequeue(); !ok {
			t.Fatalf("dequeue %d returned Stopped before the queue was empty", i)
		}
	}
	if _, ok := q.dequeue(); ok {
		t.Error("dequeue returned a job from an empty drained queue")
	}
}

func TestSubmitAfterDrainRejected(t *testing.T) {
	q := newJobQueue[int]()
	q.drain()
	if _, ok := q.submit(make([]Job[int], 1)); ok {
		t.Error("submit accepted on a draining queue")
	}
}

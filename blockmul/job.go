// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

// Job describes one unit of work: computing a single output block of
// C = A × B. A Job is immutable once submitted; it is owned by the queue
// until a worker claims it, then exclusively by that worker. Because the
// block grid partitions the output, no two jobs ever write the same
// element of C.
type Job[T Numeric] struct {
	// A and B are the inputs; workers only read them.
	A, B Matrix[T]
	// C is the output; writes are confined to this job's block.
	C Matrix[T]

	// BlockRow and BlockCol locate the block in the grid.
	BlockRow, BlockCol int
	// BlocksPerSide is the grid dimension; the block side length is
	// C.Size() / BlocksPerSide.
	BlocksPerSide int

	// ComputationID ties the job to the multiply call that submitted it.
	// Assigned by the queue on submit.
	ComputationID int
}

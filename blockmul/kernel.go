// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

// computeBlock computes one complete output block:
//
//	C[i,j] = sum(A[i,k] * B[k,j]) for k in 0..n-1
//
// for every (i, j) inside the job's block. Each job performs the full
// K reduction for its block, and its writes to C are confined to the
// block's elements, so blocks of one computation never race.
func computeBlock[T Numeric](job Job[T]) {
	n := job.A.Size()
	blockSize := n / job.BlocksPerSide
	row0 := job.BlockRow * blockSize
	col0 := job.BlockCol * blockSize

	if a, ok := job.A.(*Dense[T]); ok {
		if b, ok := job.B.(*Dense[T]); ok {
			if c, ok := job.C.(*Dense[T]); ok {
				computeBlockDense(a, b, c, row0, col0, blockSize)
				return
			}
		}
	}

	for i := row0; i < row0+blockSize; i++ {
		for j := col0; j < col0+blockSize; j++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += job.A.At(i, k) * job.B.At(k, j)
			}
			job.C.Set(i, j, sum)
		}
	}
}

// computeBlockDense is the flat-slice fast path. The k loop sits in the
// middle with A[i,k] hoisted so the inner loop walks both B and C
// row-major. Requires the block region of c to be zeroed beforehand.
func computeBlockDense[T Numeric](a, b, c *Dense[T], row0, col0, blockSize int) {
	n := a.n
	for i := row0; i < row0+blockSize; i++ {
		ai := a.data[i*n : (i+1)*n]
		ci := c.data[i*n : (i+1)*n]
		for k := 0; k < n; k++ {
			aik := ai[k]
			bk := b.data[k*n : (k+1)*n]
			for j := col0; j < col0+blockSize; j++ {
				ci[j] += aik * bk[j]
			}
		}
	}
}

// zeroFill clears every element of c.
func zeroFill[T Numeric](c Matrix[T]) {
	if d, ok := c.(*Dense[T]); ok {
		clear(d.data)
		return
	}
	n := c.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c.Set(i, j, 0)
		}
	}
}

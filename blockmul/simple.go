// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

import "fmt"

// Multiplier multiplies square matrices: c = a × b.
type Multiplier[T Numeric] interface {
	Multiply(a, b, c Matrix[T]) error
}

// Simple is the single-threaded reference multiplier: a plain triple
// loop over the Matrix contract. It shares no code with the block
// kernel, which keeps it an independent baseline for correctness tests
// and benchmarks.
type Simple[T Numeric] struct{}

// Multiply computes c = a × b.
func (Simple[T]) Multiply(a, b, c Matrix[T]) error {
	n := a.Size()
	if b.Size() != n || c.Size() != n {
		return fmt.Errorf("blockmul: size mismatch: a=%d b=%d c=%d", n, b.Size(), c.Size())
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			c.Set(i, j, sum)
		}
	}
	return nil
}

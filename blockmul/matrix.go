// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

package blockmul

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Numeric is the set of element types the multipliers operate on.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Matrix is the element-access contract the multipliers consume.
// Implementations must support concurrent At calls and concurrent Set
// calls on disjoint elements; the multipliers never write the same
// element from two goroutines.
type Matrix[T Numeric] interface {
	// Size returns the side length of the square matrix.
	Size() int
	// At returns the element at (row, col).
	At(row, col int) T
	// Set stores v at (row, col).
	Set(row, col int, v T)
}

// Dense is a square matrix backed by a flat row-major slice.
type Dense[T Numeric] struct {
	n    int
	data []T
}

// NewDense creates a zero-initialized n×n matrix.
func NewDense[T Numeric](n int) *Dense[T] {
	return &Dense[T]{n: n, data: make([]T, n*n)}
}

// Identity creates the n×n identity matrix.
func Identity[T Numeric](n int) *Dense[T] {
	m := NewDense[T](n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Random creates an n×n matrix with elements drawn uniformly from
// [0, limit). Small integral values multiply exactly in every Numeric
// type, which keeps result comparisons exact.
func Random[T Numeric](n, limit int) *Dense[T] {
	m := NewDense[T](n)
	for i := range m.data {
		m.data[i] = T(rand.Intn(limit))
	}
	return m
}

// Size returns the side length of the matrix.
func (m *Dense[T]) Size() int { return m.n }

// At returns the element at (row, col).
func (m *Dense[T]) At(row, col int) T { return m.data[row*m.n+col] }

// Set stores v at (row, col).
func (m *Dense[T]) Set(row, col int, v T) { m.data[row*m.n+col] = v }

// Equal reports whether a and b have the same size and identical elements.
func Equal[T Numeric](a, b Matrix[T]) bool {
	return EqualTol(a, b, 0)
}

// EqualTol reports whether a and b have the same size and elements equal
// within tol. Use tol = 0 for exact comparison (integer element types).
func EqualTol[T Numeric](a, b Matrix[T], tol float64) bool {
	n := a.Size()
	if b.Size() != n {
		return false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(float64(a.At(i, j))-float64(b.At(i, j))) > tol {
				return false
			}
		}
	}
	return true
}

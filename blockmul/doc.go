// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

// Package blockmul multiplies dense square matrices by decomposing the
// output into a grid of independent rectangular blocks and distributing
// one job per block to a fixed pool of long-lived workers.
//
// The pool is created once and reused across computations. Each multiply
// call registers a computation with the shared job queue, enqueues its
// block jobs, and waits for that computation's completion counter; because
// bookkeeping is keyed by a unique computation id, multiply calls may
// overlap freely on one multiplier (the pool interleaves jobs from
// different computations arbitrarily but correctly).
//
// Usage:
//
//	m := blockmul.NewThreaded[float64](runtime.GOMAXPROCS(0), 4)
//	defer m.Close()
//
//	a := blockmul.Random[float64](512, 10)
//	b := blockmul.Random[float64](512, 10)
//	c := blockmul.NewDense[float64](512)
//
//	if err := m.Multiply(a, b, c); err != nil {
//		log.Fatal(err)
//	}
//
// Matrices are consumed through the narrow Matrix element-access contract;
// the provided Dense implementation additionally enables a flat-slice fast
// path in the block kernel.
package blockmul

// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

// Command blockbench exercises the block-decomposed multiplier and
// reports throughput.
//
// Usage:
//
//	blockbench -size 500 -workers 4 -blocks 5
//	blockbench -size 500 -workers 4 -blocks 5 -parallel 2   # overlapping multiplies
//	blockbench -size 128 -verify                            # compare against reference
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-blockmul/blockmul"
)

var (
	size     = flag.Int("size", 500, "Matrix side length")
	workers  = flag.Int("workers", 0, "Worker count (0 = GOMAXPROCS)")
	blocks   = flag.Int("blocks", 0, "Blocks per side (0 = cache-sized default)")
	runs     = flag.Int("runs", 3, "Number of timed multiplications")
	parallel = flag.Int("parallel", 1, "Concurrent multiplications per run (reentrancy)")
	verify   = flag.Bool("verify", false, "Check results against the single-threaded reference")
)

func main() {
	flag.Parse()
	if *size <= 0 || *runs <= 0 || *parallel <= 0 {
		fmt.Fprintln(os.Stderr, "blockbench: -size, -runs and -parallel must be positive")
		os.Exit(1)
	}

	m := blockmul.NewThreaded[float64](*workers, *blocks)
	defer m.Close()

	p := message.NewPrinter(language.English)
	p.Printf("size=%d workers=%d blocks=%d runs=%d parallel=%d (%d elements per matrix)\n",
		*size, m.NumWorkers(), *blocks, *runs, *parallel, (*size)*(*size))

	// One independent matrix triple per concurrent multiply so results
	// never cross-contaminate.
	type triple struct{ a, b, c *blockmul.Dense[float64] }
	triples := make([]triple, *parallel)
	for i := range triples {
		triples[i] = triple{
			a: blockmul.Random[float64](*size, 10),
			b: blockmul.Random[float64](*size, 10),
			c: blockmul.NewDense[float64](*size),
		}
	}

	var best time.Duration
	for run := 0; run < *runs; run++ {
		start := time.Now()
		var g errgroup.Group
		for i := range triples {
			tr := triples[i]
			g.Go(func() error {
				if *blocks > 0 {
					return m.MultiplyGrid(tr.a, tr.b, tr.c, *blocks)
				}
				return m.Multiply(tr.a, tr.b, tr.c)
			})
		}
		if err := g.Wait(); err != nil {
			fmt.Fprintf(os.Stderr, "blockbench: %v\n", err)
			os.Exit(1)
		}
		elapsed := time.Since(start)
		if best == 0 || elapsed < best {
			best = elapsed
		}
		flops := 2 * float64(*size) * float64(*size) * float64(*size) * float64(*parallel)
		p.Printf("run %d: %v  (%.2f GFLOP/s)\n", run+1, elapsed, flops/elapsed.Seconds()/1e9)
	}
	p.Printf("best: %v\n", best)

	if *verify {
		ref := blockmul.NewDense[float64](*size)
		for i := range triples {
			if err := (blockmul.Simple[float64]{}).Multiply(triples[i].a, triples[i].b, ref); err != nil {
				fmt.Fprintf(os.Stderr, "blockbench: reference: %v\n", err)
				os.Exit(1)
			}
			if !blockmul.Equal[float64](triples[i].c, ref) {
				fmt.Fprintf(os.Stderr, "blockbench: result %d does not match reference\n", i)
				os.Exit(1)
			}
		}
		fmt.Println("verify: all results match the reference")
	}
}

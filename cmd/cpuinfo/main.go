// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

// Command cpuinfo prints the CPU features go-blockmul inspects and the
// engine defaults derived from them.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-blockmul/internal/cputopo"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Println()

	switch runtime.GOARCH {
	case "amd64":
		printAMD64Features()
	case "arm64":
		printARM64Features()
	}

	fmt.Println()
	fmt.Printf("Default workers: %d\n", cputopo.Workers())
	fmt.Printf("Default block side: %d\n", cputopo.BlockSide())
}

func printAMD64Features() {
	fmt.Println("AMD64 features:")
	fmt.Printf("  AVX:       %v\n", cpu.X86.HasAVX)
	fmt.Printf("  AVX2:      %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  AVX512F:   %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  FMA:       %v\n", cpu.X86.HasFMA)
}

func printARM64Features() {
	fmt.Println("ARM64 features:")
	fmt.Printf("  ASIMD (NEON): %v\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  FP:           %v\n", cpu.ARM64.HasFP)
	fmt.Printf("  SVE:          %v\n", cpu.ARM64.HasSVE)
}

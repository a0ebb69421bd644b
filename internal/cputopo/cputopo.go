// Copyright 2025 The go-blockmul Authors. SPDX-License-Identifier: Apache-2.0

// Package cputopo derives engine defaults from the host CPU.
package cputopo

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Workers returns the default worker-pool size: one worker per
// schedulable CPU.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// BlockSide returns the target side length for output blocks. A 48×48
// float32 working set keeps the three operand tiles of a block under a
// typical 32KB L1 data cache; on AVX-512 parts the wider vector units
// and larger L1 favor 64-wide tiles, and on unknown architectures a
// conservative 32 is used.
func BlockSide() int {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasAVX512F {
			return 64
		}
		return 48
	case "arm64":
		return 48
	default:
		return 32
	}
}

// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command ringstat is a read-only stats and demo binary for the ring
// package: it builds a ring.Buffer, drives a scripted multi-owner
// workload against it, and prints a utilization table. It is not the
// line-oriented file editor the core spec carves out as an external
// collaborator, and it does not dump cell-by-cell internals — it
// reports aggregate counters.
package main

import (
	"context"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

func main() {
	ctx := context.Background()

	shutdown, err := setupTracing(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tracing setup failed:", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

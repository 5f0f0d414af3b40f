// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fefa4ka/lr-go/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ringstat",
		Short: "Run scripted workloads against a ring.Buffer and report utilization",
	}

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newRunCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newInspectCmd())

	return root
}

func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// newBufferLogger builds the logr.Logger passed to ring.WithLogger so
// the buffer's own diagnostic events (resize, integrity failures,
// owner-registry exhaustion) reach the CLI's output instead of being
// silently discarded, stdr being the stdlib-log-backed logr
// implementation rather than a logrus bridge since no logrus-to-logr
// adapter is available in the dependency set.
func newBufferLogger(level string) logr.Logger {
	verbosity := 0
	if level == "debug" {
		verbosity = 1
	}
	std := stdr.New(log.New(log.Writer(), "", log.LstdFlags))
	stdr.SetVerbosity(verbosity)
	return std
}

// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a one-shot multi-owner workload and print a utilization table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel)

			buf, err := ring.New(cfg.Size, ring.WithLocker(ring.NewMutexLocker()), ring.WithLogger(newBufferLogger(cfg.LogLevel)))
			if err != nil {
				return err
			}

			metrics := startMetrics(log, cfg, buf)
			defer metrics.Close(cmd.Context())

			owners := demoOwners(cfg)
			runWorkload(log, buf, owners, cfg.PerOwner)

			printReport(buf, collectUtilization(buf, owners))
			return nil
		},
	}
}

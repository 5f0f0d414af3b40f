// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
)

func newInspectCmd() *cobra.Command {
	var growTo int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run a workload, optionally resize, then report utilization and integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel)

			tracer := otel.Tracer("ringstat")
			buf, err := ring.New(cfg.Size,
				ring.WithLocker(ring.NewMutexLocker()),
				ring.WithTracer(tracer),
				ring.WithLogger(newBufferLogger(cfg.LogLevel)))
			if err != nil {
				return err
			}

			metrics := startMetrics(log, cfg, buf)
			defer metrics.Close(cmd.Context())

			owners := demoOwners(cfg)
			runWorkload(log, buf, owners, cfg.PerOwner)

			if growTo > 0 {
				if err := buf.Resize(cmd.Context(), growTo); err != nil {
					return fmt.Errorf("resize: %w", err)
				}
				metrics.sink.RecordResize()
			}

			printReport(buf, collectUtilization(buf, owners))

			if violations := buf.Verify(); len(violations) > 0 {
				fmt.Println("\nintegrity violations:")
				for _, v := range violations {
					fmt.Printf("  owner=%d: %s\n", v.Owner, v.Message)
				}
			} else {
				fmt.Println("\nintegrity: ok")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&growTo, "resize-to", 0, "resize the arena to this size before reporting (0 = skip)")
	return cmd
}

// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
)

func newBenchCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive a paced multi-owner producer workload for a fixed duration",
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

			var limiter *rate.Limiter
			if cfg.RatePerSecond > 0 {
				limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()

			pushed, dropped := 0, 0
			i := 0
		loop:
			for {
				select {
				case <-ctx.Done():
					break loop
				default:
				}

				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						break loop
					}
				}

				owner := owners[i%len(owners)]
				if err := buf.PushTail(owner, ring.Value(i)); err != nil {
					dropped++
				} else {
					pushed++
				}
				i++
			}

			fmt.Printf("pushed=%d dropped=%d\n", pushed, dropped)
			printReport(buf, collectUtilization(buf, owners))
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 2*time.Second, "how long to run the paced producer")
	return cmd
}

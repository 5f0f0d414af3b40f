// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
)

// demoOwners derives cfg.Owners Owner ids from freshly generated
// UUIDs, truncated to the low 64 bits — good enough for a demo
// workload where ids only need to be distinct, not stable across runs.
func demoOwners(cfg config.Config) []ring.Owner {
	owners := make([]ring.Owner, cfg.Owners)
	for i := range owners {
		id := uuid.New()
		var low uint64
		for _, b := range id[8:] {
			low = low<<8 | uint64(b)
		}
		owners[i] = ring.Owner(low)
	}
	return owners
}

// runWorkload pushes cfg.PerOwner values to each of owners, in round-
// robin order, logging (at debug level) any failure without aborting
// the whole run — a single BufferFull on a saturated demo arena is
// expected, not fatal.
func runWorkload(log *logrus.Logger, buf *ring.Buffer, owners []ring.Owner, perOwner int) {
	for i := 0; i < perOwner; i++ {
		for _, owner := range owners {
			if err := buf.PushTail(owner, ring.Value(i)); err != nil {
				log.WithFields(logrus.Fields{"owner": owner, "value": i}).Debugf("push failed: %v", err)
			}
		}
	}
}

type utilizationRow struct {
	owner string
	count int
}

func collectUtilization(buf *ring.Buffer, owners []ring.Owner) []utilizationRow {
	rows := make([]utilizationRow, 0, len(owners))
	for _, owner := range owners {
		rows = append(rows, utilizationRow{
			owner: fmt.Sprintf("%d", owner),
			count: buf.CountOwned(owner),
		})
	}
	return rows
}

func printReport(buf *ring.Buffer, rows []utilizationRow) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Owner", "Queued")
	for _, r := range rows {
		_ = table.Append(r.owner, fmt.Sprintf("%d", r.count))
	}
	_ = table.Render()

	fmt.Printf("\nArena size=%d used=%d free=%d owners=%d\n",
		buf.Size(), buf.Count(), buf.Available(), len(rows))
}

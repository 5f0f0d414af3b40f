// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
)

func TestDemoOwnersAreDistinct(t *testing.T) {
	cfg := config.Default()
	cfg.Owners = 6

	owners := demoOwners(cfg)
	if len(owners) != cfg.Owners {
		t.Fatalf("len(owners) = %d, want %d", len(owners), cfg.Owners)
	}

	seen := make(map[ring.Owner]bool, len(owners))
	for _, o := range owners {
		if seen[o] {
			t.Fatalf("duplicate owner id %d", o)
		}
		seen[o] = true
	}
}

func TestRunWorkloadAndCollectUtilization(t *testing.T) {
	buf, err := ring.New(64)
	if err != nil {
		t.Fatalf("ring.New: %v", err)
	}
	owners := []ring.Owner{1, 2, 3}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	runWorkload(log, buf, owners, 5)

	rows := collectUtilization(buf, owners)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for _, r := range rows {
		if r.count != 5 {
			t.Fatalf("owner %s queued %d, want 5", r.owner, r.count)
		}
	}
}

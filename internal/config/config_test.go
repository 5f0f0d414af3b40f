// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaultsWithNoOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadHonorsExplicitFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--size=1024", "--owners=8"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Size != 1024 {
		t.Fatalf("Size = %d, want 1024", cfg.Size)
	}
	if cfg.Owners != 8 {
		t.Fatalf("Owners = %d, want 8", cfg.Owners)
	}
}

func TestValidateRejectsUndersizedArena(t *testing.T) {
	cfg := Config{Size: 4, Owners: 4, PerOwner: 32}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want an error for an undersized arena")
	}
}

func TestValidateRejectsNegativeRate(t *testing.T) {
	cfg := Default()
	cfg.RatePerSecond = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want an error for a negative rate")
	}
}

func TestValidateRejectsMalformedMetricsAddr(t *testing.T) {
	cfg := Default()
	cfg.MetricsAddr = "not-a-host-port"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want an error for a malformed metrics-addr")
	}
}

func TestValidateAcceptsEmptyMetricsAddr(t *testing.T) {
	cfg := Default()
	cfg.MetricsAddr = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for empty metrics-addr", err)
	}
}

func TestLoadHonorsMetricsAddrFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--metrics-addr=:9090"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("MetricsAddr = %q, want %q", cfg.MetricsAddr, ":9090")
	}
}

// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config loads cmd/ringstat's settings from flags, environment
// variables (RINGSTAT_ prefix), and an optional config file, layered
// through viper the way the teacher keeps viper out of its core
// storage package and confined to the outer binary.
package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds cmd/ringstat's tunables.
type Config struct {
	// Size is the arena's cell capacity.
	Size int `mapstructure:"size"`
	// Owners is the number of distinct owner ids the demo workload
	// drives.
	Owners int `mapstructure:"owners"`
	// PerOwner is how many values each owner pushes in the demo
	// workload.
	PerOwner int `mapstructure:"per-owner"`
	// RatePerSecond throttles the bench subcommand's producer; 0
	// means unthrottled.
	RatePerSecond float64 `mapstructure:"rate"`
	// LogLevel selects verbosity ("debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log-level"`
	// MetricsAddr, if non-empty, is the address ringstat serves
	// /metrics (Prometheus) on and periodically updates the
	// ringmetrics go-metrics sink from. Empty disables both.
	MetricsAddr string `mapstructure:"metrics-addr"`
	// ConfigFile, if set, is read by viper in addition to flags/env.
	ConfigFile string `mapstructure:"config-file"`
}

// Default returns the baseline configuration used when no flag, env
// var, or config file overrides a field.
func Default() Config {
	return Config{
		Size:          256,
		Owners:        4,
		PerOwner:      32,
		RatePerSecond: 0,
		LogLevel:      "info",
	}
}

// BindFlags registers every Config field onto fs so a cobra command
// can expose them as flags.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("size", d.Size, "arena cell capacity")
	fs.Int("owners", d.Owners, "number of distinct owner ids in the demo workload")
	fs.Int("per-owner", d.PerOwner, "values pushed per owner in the demo workload")
	fs.Float64("rate", d.RatePerSecond, "bench producer rate in values/sec (0 = unthrottled)")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("metrics-addr", d.MetricsAddr, "address to serve /metrics on, e.g. :9090 (empty disables metrics)")
	fs.String("config-file", "", "optional YAML/TOML/JSON config file")
}

// Load builds a Config from flags, RINGSTAT_-prefixed environment
// variables, and — if --config-file was set — a config file, in that
// ascending precedence (file and env both override flag defaults;
// explicitly-set flags win over both, since viper's BindPFlag honors
// pflag.Changed).
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ringstat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", err)
	}

	if cf := v.GetString("config-file"); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", cf, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Validate checks that cfg's numeric fields describe a workload that
// could actually fit in an arena of Size cells (each owner record plus
// at least one data cell costs 2 cells minimum).
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("config: size must be positive, got %d", c.Size)
	}
	if c.Owners <= 0 {
		return fmt.Errorf("config: owners must be positive, got %d", c.Owners)
	}
	if c.PerOwner < 0 {
		return fmt.Errorf("config: per-owner must be >= 0, got %d", c.PerOwner)
	}
	if need := c.Owners * (c.PerOwner + 1); need > c.Size {
		return fmt.Errorf("config: workload needs at least %d cells, arena size is %d", need, c.Size)
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("config: rate must be >= 0, got %v", c.RatePerSecond)
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return fmt.Errorf("config: metrics-addr %q: %w", c.MetricsAddr, err)
		}
	}
	return nil
}

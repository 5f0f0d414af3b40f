// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ringmetrics mirrors a ring.Buffer's utilization counters
// into a github.com/rcrowley/go-metrics registry, for deployments that
// report through that legacy sink (graphite/statsd bridges) instead of
// scraping Prometheus.
package ringmetrics

import (
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/fefa4ka/lr-go/ring"
)

// Sink periodically (on Update) snapshots a *ring.Buffer into a
// go-metrics registry under a name prefix.
type Sink struct {
	buf    *ring.Buffer
	prefix string

	cellsTotal gometrics.GaugeFloat64
	cellsFree  gometrics.GaugeFloat64
	cellsOwned gometrics.GaugeFloat64
	ownersUsed gometrics.GaugeFloat64
	resizes    gometrics.Counter
}

// NewSink registers prefix-qualified gauges and a resize counter into
// registry (use gometrics.DefaultRegistry if the caller has no other
// preference) and returns a Sink bound to buf.
func NewSink(registry gometrics.Registry, prefix string, buf *ring.Buffer) *Sink {
	s := &Sink{
		buf:        buf,
		prefix:     prefix,
		cellsTotal: gometrics.NewGaugeFloat64(),
		cellsFree:  gometrics.NewGaugeFloat64(),
		cellsOwned: gometrics.NewGaugeFloat64(),
		ownersUsed: gometrics.NewGaugeFloat64(),
		resizes:    gometrics.NewCounter(),
	}

	registry.Register(prefix+".cells_total", s.cellsTotal)
	registry.Register(prefix+".cells_free", s.cellsFree)
	registry.Register(prefix+".cells_owned", s.cellsOwned)
	registry.Register(prefix+".owners_total", s.ownersUsed)
	registry.Register(prefix+".resize_total", s.resizes)

	return s
}

// Update re-reads the bound Buffer's counters into the registered
// gauges. It takes the Buffer's own Locker on each read, same as any
// other caller.
func (s *Sink) Update() {
	size := s.buf.Size()
	free := s.buf.Available()
	data := s.buf.Count()

	s.cellsTotal.Update(float64(size))
	s.cellsFree.Update(float64(free))
	s.cellsOwned.Update(float64(data))
	s.ownersUsed.Update(float64(size - free - data))
}

// RecordResize increments the resize counter; callers wrap
// (*ring.Buffer).Resize and call this on success.
func (s *Sink) RecordResize() {
	s.resizes.Inc(1)
}

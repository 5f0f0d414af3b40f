// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ringprom exposes a ring.Buffer's utilization counters as
// Prometheus metrics via the prometheus.Collector interface, so a
// caller registers one Collector per Buffer instead of polling and
// setting gauges by hand.
package ringprom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fefa4ka/lr-go/ring"
)

// Collector snapshots a *ring.Buffer's Count, Available, and owner
// count on every Collect call. It takes the Buffer's own Locker
// contract — no separate locking is introduced.
type Collector struct {
	buf *ring.Buffer

	cellsTotal prometheus.Gauge
	cellsFree  prometheus.Gauge
	cellsOwned prometheus.Gauge
	ownersUsed prometheus.Gauge
}

// New constructs a Collector for buf. namespace/subsystem name the
// registered metric family, e.g. "myapp"/"eventring" produces
// myapp_eventring_cells_total.
func New(namespace, subsystem string, buf *ring.Buffer) *Collector {
	mk := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Collector{
		buf:        buf,
		cellsTotal: mk("cells_total", "Total cells in the arena's backing storage."),
		cellsFree:  mk("cells_free", "Cells currently on the free list."),
		cellsOwned: mk("cells_owned", "Cells currently holding live data across all owners."),
		ownersUsed: mk("owners_total", "Live owner records currently registered."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cellsTotal.Desc()
	ch <- c.cellsFree.Desc()
	ch <- c.cellsOwned.Desc()
	ch <- c.ownersUsed.Desc()
}

// Collect implements prometheus.Collector, reading a fresh snapshot of
// buf on every call rather than caching between scrapes.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	size := c.buf.Size()
	free := c.buf.Available()
	data := c.buf.Count()
	owners := size - free - data

	c.cellsTotal.Set(float64(size))
	c.cellsFree.Set(float64(free))
	c.cellsOwned.Set(float64(data))
	c.ownersUsed.Set(float64(owners))

	ch <- c.cellsTotal
	ch <- c.cellsFree
	ch <- c.cellsOwned
	ch <- c.ownersUsed
}

var _ prometheus.Collector = (*Collector)(nil)

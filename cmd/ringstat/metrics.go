// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/fefa4ka/lr-go/internal/config"
	"github.com/fefa4ka/lr-go/ring"
	"github.com/fefa4ka/lr-go/ring/ringmetrics"
	"github.com/fefa4ka/lr-go/ring/ringprom"
)

// metricsHandle is what a subcommand holds onto for the lifetime of a
// run: a go-metrics sink to update and, if metrics were enabled, an
// HTTP server to shut down on exit.
type metricsHandle struct {
	sink   *ringmetrics.Sink
	stop   func(context.Context) error
	ticker *time.Ticker
	done   chan struct{}
}

// startMetrics wires buf into both of ringstat's metrics sinks
// (ringprom's Prometheus Collector, ringmetrics' go-metrics Sink). When
// cfg.MetricsAddr is empty, metrics are still tracked in-process (the
// sink is returned so RecordResize can be called) but nothing is
// served or refreshed on a timer.
func startMetrics(log *logrus.Logger, cfg config.Config, buf *ring.Buffer) *metricsHandle {
	registry := gometrics.NewRegistry()
	sink := ringmetrics.NewSink(registry, "ringstat.ring", buf)

	h := &metricsHandle{
		sink: sink,
		stop: func(context.Context) error { return nil },
	}

	if cfg.MetricsAddr == "" {
		return h
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(ringprom.New("ringstat", "ring", buf))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped unexpectedly")
		}
	}()

	h.ticker = time.NewTicker(2 * time.Second)
	h.done = make(chan struct{})
	go func() {
		for {
			select {
			case <-h.ticker.C:
				sink.Update()
			case <-h.done:
				return
			}
		}
	}()

	h.stop = srv.Shutdown
	return h
}

// Close stops the refresh loop and, if one was started, the metrics
// HTTP server.
func (h *metricsHandle) Close(ctx context.Context) error {
	if h.ticker != nil {
		h.ticker.Stop()
		close(h.done)
	}
	return h.stop(ctx)
}

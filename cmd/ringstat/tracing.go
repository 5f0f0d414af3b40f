// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupTracing installs a global TracerProvider exporting spans over
// OTLP/HTTP when RINGSTAT_OTLP_ENDPOINT is set, matching the domain
// stack's rule that the core ring package only ever depends on the
// otel/trace API — the SDK and exporter choice live here, in the
// binary that actually ships spans somewhere. It returns a shutdown
// func that must be called before process exit to flush pending spans;
// when tracing isn't configured, shutdown is a no-op.
func setupTracing(ctx context.Context) (shutdown func(context.Context) error, err error) {
	endpoint := os.Getenv("RINGSTAT_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(semconv.ServiceName("ringstat")))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

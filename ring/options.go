// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import (
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithLogger attaches a structured logger used only for diagnostic
// events (resize, owner-registry exhaustion, integrity failures) — never
// on the hot path of Put/Get. The zero value is logr.Discard().
func WithLogger(l logr.Logger) Option {
	return func(b *Buffer) { b.log = l }
}

// WithLocker binds the external mutex implementation. Equivalent to
// calling BindLocker after construction.
func WithLocker(l Locker) Option {
	return func(b *Buffer) { b.locker = l }
}

// WithTracer wraps Resize (the one O(size) operation) in spans from the
// given tracer. The zero value is trace.NewNoopTracerProvider().Tracer("").
func WithTracer(t trace.Tracer) Option {
	return func(b *Buffer) { b.tracer = t }
}

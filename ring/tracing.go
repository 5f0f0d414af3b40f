// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// startSpan starts a span on b's tracer, falling back to the global
// no-op tracer when none was supplied via WithTracer. It never takes
// the Locker, so it is safe to call before (*Buffer).withLock.
func (b *Buffer) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	tracer := b.tracer
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("")
	}
	return tracer.Start(ctx, name)
}

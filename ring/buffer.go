// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ring implements a multi-producer, multi-tenant ring buffer on a
// single fixed-size arena of cells. Every logical sub-queue, identified by
// an opaque owner id, is threaded as a circular singly linked list through
// that arena; owner metadata lives in the same arena, growing inward from
// the high end while the free list grows from the low end.
//
// The design has zero heap allocation after Init, pointer-sized payloads,
// and an externally supplied Locker. It is the Go port of
// fefa4ka/linked_ring, re-expressed with arena indices in place of raw
// pointers.
package ring

import (
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"
)

// Buffer is the arena: it owns the backing cell slice and the two cursors
// that partition it into free list, data cells, and owner registry.
type Buffer struct {
	cells []cell

	// write is the head of the free list, a next-linked chain through
	// unused cells. nilIndex means the arena has no free cell.
	write index

	// owners is the index of the lowest-addressed owner record, or
	// nilIndex if no owner exists. Owner records occupy the
	// highest-addressed cells and grow downward from size-1.
	owners index

	locker Locker
	log    logr.Logger
	tracer trace.Tracer
}

// New constructs a Buffer over a freshly allocated backing array of the
// given size. size must be at least 1.
func New(size int, opts ...Option) (*Buffer, error) {
	b := &Buffer{log: logr.Discard()}
	if err := b.Init(size); err != nil {
		return nil, err
	}
	b.applyOptions(opts)
	return b, nil
}

func (b *Buffer) applyOptions(opts []Option) {
	for _, opt := range opts {
		opt(b)
	}
}

// Init (re)initializes the arena over size cells, discarding any existing
// content. It is the Go port of lr_init: every cell is chained onto the
// free list in order, the owner registry starts empty, and no Locker is
// bound (single-threaded until WithLocker/BindLocker is called).
//
// Init requires size >= 1; size == 0 fails with ErrNoMemory, mirroring the
// C signature's NULL-cells-or-zero-size contract (there is no caller-
// supplied backing array in the Go port, since the Buffer owns its own
// slice, so only the size check applies).
func (b *Buffer) Init(size int) error {
	if size <= 0 {
		return newErr(CodeNoMemory, "size must be >= 1, got %d", size)
	}

	cells := make([]cell, size)
	for i := 0; i < size-1; i++ {
		cells[i].next = index(i + 1)
	}
	cells[size-1].next = nilIndex

	b.cells = cells
	b.write = 0
	b.owners = nilIndex
	b.locker = nil
	if b.log.GetSink() == nil {
		b.log = logr.Discard()
	}
	return nil
}

// BindLocker sets the external mutex binding. Not concurrent-safe with
// other operations; call before any goroutine accesses the Buffer,
// exactly as lr_set_mutex documents.
func (b *Buffer) BindLocker(l Locker) {
	b.locker = l
}

// lastCell returns the index of the array's final cell — always the
// first-added owner's record when any owner exists.
func (b *Buffer) lastCell() index {
	return index(len(b.cells) - 1)
}

// ownerCount returns the number of live owner records, derived from the
// owners cursor: owner_count = (cells + size) - owners when non-empty.
func (b *Buffer) ownerCount() int {
	if b.owners == nilIndex {
		return 0
	}
	return len(b.cells) - int(b.owners)
}

// Size returns the arena's total cell capacity.
func (b *Buffer) Size() int { return len(b.cells) }

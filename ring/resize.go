// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import "context"

// Resize replaces the arena's backing storage with one of newSize
// cells, preserving every owner's (id, ordered data sequence) pair.
//
// Unlike the original C lr_resize, which block-copies the old layout
// position-for-position (including free cells) and therefore only
// ever grows or holds steady, this port walks each owner's live data
// in head-to-tail order and rebuilds the ring from scratch against a
// freshly initialized buffer of the requested size. That lets Resize
// genuinely shrink, as long as newSize is still large enough to hold
// every owner record plus every live data cell; ErrNoMemory reports
// when it isn't.
//
// Resize is the one operation expensive enough to be worth a span: it
// is O(size), touching every live cell, where every other operation
// here is O(1) or O(owner sub-list length).
func (b *Buffer) Resize(ctx context.Context, newSize int) error {
	ctx, span := b.startSpan(ctx, "ring.Resize")
	defer span.End()
	_ = ctx

	oldSize := len(b.cells)

	return b.withLock(func() error {
		if newSize <= 0 {
			return newErr(CodeNoMemory, "size must be >= 1, got %d", newSize)
		}

		owners, total := b.snapshotOwners()
		if newSize < total+len(owners) {
			b.log.Error(nil, "resize rejected: arena too small for live data",
				"oldSize", oldSize, "newSize", newSize, "dataCells", total, "owners", len(owners))
			return newErr(CodeNoMemory,
				"resize to %d too small for %d data cells across %d owners",
				newSize, total, len(owners))
		}

		fresh := &Buffer{log: b.log}
		if err := fresh.Init(newSize); err != nil {
			return err
		}

		for _, od := range owners {
			for _, v := range od.values {
				if err := fresh.pushBack(od.owner, v); err != nil {
					return newErr(CodeUnknown, "resize: rebuild failed: %v", err)
				}
			}
		}

		b.cells = fresh.cells
		b.write = fresh.write
		b.owners = fresh.owners
		b.log.Info("arena resized", "oldSize", oldSize, "newSize", newSize, "owners", len(owners))
		return nil
	})
}

type ownerSnapshot struct {
	owner  Owner
	values []Value
}

// snapshotOwners walks every live owner's sub-list head-to-tail and
// returns its values alongside the grand total data cell count. Not
// safe to call without the Locker held.
func (b *Buffer) snapshotOwners() ([]ownerSnapshot, int) {
	if b.owners == nilIndex {
		return nil, 0
	}

	var owners []ownerSnapshot
	total := 0
	for rec := b.owners; rec <= b.lastCell(); rec++ {
		tail := b.ownerTail(rec)
		if tail == nilIndex {
			continue
		}
		head := b.ownerHead(rec)

		var values []Value
		for needle := head; ; {
			values = append(values, b.cells[needle].data)
			if needle == tail {
				break
			}
			needle = b.cells[needle].next
		}

		owners = append(owners, ownerSnapshot{owner: b.cells[rec].data, values: values})
		total += len(values)
	}
	return owners, total
}

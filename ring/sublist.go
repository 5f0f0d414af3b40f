// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

// This file implements the sub-list engine: insertion, removal, and
// read operations over a single owner's circular sub-list threaded
// through the arena. Every exported method here takes the Locker for
// its full duration; none of the unexported helpers below touch the
// lock themselves.
//
// A grounding note on PutHead vs PushTail: the original C sources for
// lr_put and lr_push are, in the revision this port follows, the same
// splice — insert the new cell immediately after the current tail and
// make it the new tail — with the distinction between "head" and
// "tail" insertion collapsing into one append operation once the
// single-global-ring interpretation is adopted (a sub-list's head is
// discovered through its registry neighbor, not through its own
// record, so appending after the owner's own tail never touches its
// own head). Both names are kept on the public API because callers
// reason about them as the two ends of a queue, but they share pushBack.

// allocFree removes and returns the head of the free list, or nilIndex
// if the arena has no free cell.
func (b *Buffer) allocFree() index {
	c := b.write
	if c == nilIndex {
		return nilIndex
	}
	b.write = b.cells[c].next
	return c
}

// freeCell returns idx to the head of the free list, clearing its data.
func (b *Buffer) freeCell(idx index) {
	b.cells[idx] = cell{data: 0, next: b.write}
	b.write = idx
}

// pushBack splices a freshly allocated cell holding v immediately after
// owner's current tail (or bootstraps the owner's singleton/ring-join
// if it has none yet) and makes it the new tail. Shared by PutHead and
// PushTail.
func (b *Buffer) pushBack(owner Owner, v Value) error {
	if b.write == nilIndex {
		return ErrBufferFull
	}

	rec := b.getOrAllocateOwner(owner)
	if rec == nilIndex {
		b.log.Info("owner registry exhausted, cannot admit new owner",
			"owner", owner, "size", len(b.cells))
		return ErrBufferFull
	}
	if b.write == nilIndex {
		// Allocating the owner record itself consumed the last free
		// cell; nothing remains for the data cell, so a record created
		// by this call is given back before failing.
		if b.ownerTail(rec) == nilIndex {
			b.releaseOwner(rec)
		}
		return ErrBufferFull
	}

	tail := b.ownerTail(rec)

	c := b.allocFree()
	b.cells[c].data = v

	if tail != nilIndex {
		b.cells[c].next = b.cells[tail].next
		b.cells[tail].next = c
	} else {
		b.joinRing(rec, c)
	}

	b.cells[rec].next = c
	return nil
}

// joinRing links a brand-new owner's first cell c into the arena's
// single global ring: if rec is the very first owner ever created (it
// occupies lastCell), c self-loops; otherwise c is spliced in right
// after the registry neighbor's tail, exactly where that neighbor's
// head used to be reachable.
func (b *Buffer) joinRing(rec, c index) {
	last := b.lastCell()
	if rec == last {
		b.cells[c].next = c
		return
	}

	prev := rec + 1
	for b.cells[prev].next == nilIndex && prev < last {
		prev++
	}
	if b.cells[prev].next == nilIndex {
		b.cells[c].next = c
		return
	}

	neighborHead := b.cells[b.cells[prev].next].next
	b.cells[c].next = neighborHead
	b.cells[b.cells[prev].next].next = c
}

// PutHead inserts v into owner's sub-list. See the file comment for
// why this shares pushBack with PushTail.
func (b *Buffer) PutHead(owner Owner, v Value) error {
	return b.withLock(func() error { return b.pushBack(owner, v) })
}

// PushTail inserts v at the tail of owner's sub-list.
func (b *Buffer) PushTail(owner Owner, v Value) error {
	return b.withLock(func() error { return b.pushBack(owner, v) })
}

// InsertNext inserts v unconditionally after the arbitrary cell
// addressed by afterIdx, a raw arena cell index (ReadAt and the other
// readers return values, not cell indices). It does not validate that
// afterIdx belongs to any owner's live sub-list, and it never moves an
// owner's tail; callers that don't already hold a valid cell index
// should use InsertAt instead.
func (b *Buffer) InsertNext(v Value, afterIdx int) error {
	return b.withLock(func() error {
		if b.write == nilIndex {
			return ErrBufferFull
		}
		needle := index(afterIdx)
		if needle < 0 || needle > b.lastCell() {
			return ErrInvalidIndex
		}

		c := b.allocFree()
		b.cells[c].data = v
		b.cells[c].next = b.cells[needle].next
		b.cells[needle].next = c
		return nil
	})
}

// InsertAt inserts v into owner's sub-list at the given position:
// index 0 inserts at the head, index k>0 walks k-1 steps from the head
// and splices after that cell, advancing the owner's tail pointer if
// the walk lands on the tail. An index at or beyond the sub-list's
// length inserts at the tail, matching PushTail.
func (b *Buffer) InsertAt(owner Owner, v Value, idx int) error {
	return b.withLock(func() error {
		if idx < 0 {
			return ErrInvalidIndex
		}

		rec := b.findOwner(owner)
		if rec == nilIndex {
			return b.pushBack(owner, v)
		}

		tail := b.ownerTail(rec)
		if tail == nilIndex {
			return b.pushBack(owner, v)
		}

		if b.write == nilIndex {
			return ErrBufferFull
		}

		head := b.ownerHead(rec)
		if head == nilIndex {
			return ErrBufferEmpty
		}

		c := b.allocFree()
		b.cells[c].data = v

		if idx == 0 {
			neighborSlot := b.registryNeighborTail(rec)
			neighborTailCell := b.cells[neighborSlot].next
			b.cells[c].next = head
			b.cells[neighborTailCell].next = c
			return nil
		}

		needle := head
		at := 1
		for at != idx && needle != tail {
			needle = b.cells[needle].next
			at++
		}

		if needle == tail {
			b.cells[rec].next = c
		}
		b.cells[c].next = b.cells[needle].next
		b.cells[needle].next = c
		return nil
	})
}

// registryNeighborTail returns rec's registry neighbor's record index
// (prev_owner in the original source). cells[result].next is the
// neighbor's tail cell; cells[cells[result].next].next is the cell
// that must be rewritten to retarget rec's head, since a tail cell's
// next field doubles as the next owner's head pointer.
func (b *Buffer) registryNeighborTail(rec index) index {
	last := b.lastCell()
	var prev index
	if rec == last {
		prev = b.owners
	} else {
		prev = rec + 1
	}
	for b.cells[prev].next == nilIndex && prev < last {
		prev++
	}
	return prev
}

// PutStringHead writes each byte of s into owner's sub-list in order
// via repeated PutHead, returning the number of bytes actually written
// before any failure (e.g. BufferFull partway through). The write is
// not atomic: a failure partway leaves the prefix already appended.
func (b *Buffer) PutStringHead(owner Owner, s []byte) (int, error) {
	for i, c := range s {
		if err := b.PutHead(owner, Value(c)); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// GetHead removes and returns owner's head element — the oldest
// element still queued for that owner, discovered through the
// registry-neighbor adjacency described in owner.go.
func (b *Buffer) GetHead(owner Owner) (Value, error) {
	return withLock(b, func() (Value, error) {
		rec := b.findOwner(owner)
		if rec == nilIndex {
			return 0, ErrBufferEmpty
		}

		neighborSlot := b.registryNeighborTail(rec)
		neighborTailCell := b.cells[neighborSlot].next
		if neighborTailCell == nilIndex {
			return 0, ErrBufferEmpty
		}

		head := b.cells[neighborTailCell].next
		b.cells[neighborTailCell].next = b.cells[head].next

		v := b.cells[head].data
		tail := b.ownerTail(rec)

		if head == tail {
			b.releaseOwner(rec)
		}

		b.freeCell(head)
		return v, nil
	})
}

// PopTail removes and returns owner's tail element — the most
// recently inserted element — which requires an O(n) walk from the
// head to find the tail's predecessor, since cells carry no back
// pointer.
func (b *Buffer) PopTail(owner Owner) (Value, error) {
	return withLock(b, func() (Value, error) {
		rec := b.findOwner(owner)
		if rec == nilIndex {
			return 0, ErrBufferEmpty
		}

		neighborSlot := b.registryNeighborTail(rec)
		neighborTailCell := b.cells[neighborSlot].next
		if neighborTailCell == nilIndex {
			return 0, ErrBufferEmpty
		}

		head := b.cells[neighborTailCell].next
		tail := b.ownerTail(rec)
		v := b.cells[tail].data

		if head == tail {
			if neighborSlot != rec {
				b.cells[neighborTailCell].next = b.cells[tail].next
			}
			b.releaseOwner(rec)
			b.freeCell(tail)
			return v, nil
		}

		needle := head
		for needle != tail {
			if b.cells[needle].next == tail {
				b.cells[rec].next = needle
				b.cells[needle].next = b.cells[tail].next
				needle = tail
			} else {
				needle = b.cells[needle].next
			}
		}

		b.freeCell(tail)
		return v, nil
	})
}

// PullAt removes and returns the element at position idx (0-based from
// the head) of owner's sub-list.
func (b *Buffer) PullAt(owner Owner, idx int) (Value, error) {
	return withLock(b, func() (Value, error) {
		if idx < 0 {
			return 0, ErrInvalidIndex
		}

		rec := b.findOwner(owner)
		if rec == nilIndex {
			return 0, ErrBufferEmpty
		}

		neighborSlot := b.registryNeighborTail(rec)
		neighborTailCell := b.cells[neighborSlot].next
		if neighborTailCell == nilIndex {
			return 0, ErrBufferEmpty
		}

		head := b.cells[neighborTailCell].next
		tail := b.ownerTail(rec)

		if head == tail {
			if idx != 0 {
				return 0, ErrInvalidIndex
			}
			v := b.cells[head].data
			b.cells[neighborTailCell].next = b.cells[tail].next
			b.releaseOwner(rec)
			b.freeCell(head)
			return v, nil
		}

		var selected index
		if idx == 0 {
			selected = head
			b.cells[neighborTailCell].next = b.cells[selected].next
			if selected == tail {
				b.cells[rec].next = nilIndex
			}
		} else {
			needle := head
			at := 0
			for at < idx-1 && b.cells[needle].next != tail && b.cells[needle].next != head {
				needle = b.cells[needle].next
				at++
			}
			if at < idx-1 {
				return 0, ErrInvalidIndex
			}

			selected = b.cells[needle].next
			b.cells[needle].next = b.cells[selected].next
			if selected == tail {
				b.cells[rec].next = needle
			}
		}

		v := b.cells[selected].data
		b.freeCell(selected)
		return v, nil
	})
}

// Read peeks at owner's head element without removing it. Equivalent
// to ReadAt(owner, 0).
func (b *Buffer) Read(owner Owner) (Value, error) {
	return b.ReadAt(owner, 0)
}

// ReadAt peeks at the element at position idx of owner's sub-list
// without removing it.
func (b *Buffer) ReadAt(owner Owner, idx int) (Value, error) {
	return withLock(b, func() (Value, error) {
		if idx < 0 {
			return 0, ErrInvalidIndex
		}

		rec := b.findOwner(owner)
		if rec == nilIndex {
			return 0, ErrBufferEmpty
		}

		head := b.ownerHead(rec)
		tail := b.ownerTail(rec)
		if head == nilIndex || tail == nilIndex {
			return 0, ErrBufferEmpty
		}

		needle := head
		count := 0
		for count < idx {
			if needle == tail {
				return 0, ErrInvalidIndex
			}
			needle = b.cells[needle].next
			count++
		}
		return b.cells[needle].data, nil
	})
}

// ReadString copies owner's entire sub-list into dst in head-to-tail
// order without removing any element, returning the sub-list's length.
// It returns ErrBufferEmpty if owner has no sub-list. If dst is shorter
// than the sub-list, only the first len(dst) bytes are written and the
// returned count still covers the whole sub-list, with no error. A
// sub-list holding a single 0 value returns 0.
func (b *Buffer) ReadString(owner Owner, dst []byte) (int, error) {
	return withLock(b, func() (int, error) {
		rec := b.findOwner(owner)
		if rec == nilIndex {
			return 0, ErrBufferEmpty
		}

		head := b.ownerHead(rec)
		tail := b.ownerTail(rec)
		if head == nilIndex || tail == nilIndex {
			return 0, ErrBufferEmpty
		}

		if head == tail && b.cells[tail].data == 0 {
			return 0, nil
		}

		n := 0
		needle := head
		for {
			if n < len(dst) {
				dst[n] = byte(b.cells[needle].data)
			}
			n++
			if needle == tail {
				break
			}
			needle = b.cells[needle].next
		}
		return n, nil
	})
}

// Exists reports whether owner currently has at least one queued
// element.
func (b *Buffer) Exists(owner Owner) bool {
	n, _ := withLock(b, func() (int, error) {
		return b.countOwnedLimited(owner, 1), nil
	})
	return n > 0
}

// CountOwned returns the number of elements currently queued for
// owner.
func (b *Buffer) CountOwned(owner Owner) int {
	n, _ := withLock(b, func() (int, error) {
		return b.countOwnedLimited(owner, 0), nil
	})
	return n
}

// CountLimited returns the number of elements queued for owner, capped
// at limit (0 means unlimited).
func (b *Buffer) CountLimited(owner Owner, limit int) int {
	n, _ := withLock(b, func() (int, error) {
		return b.countOwnedLimited(owner, limit), nil
	})
	return n
}

func (b *Buffer) countOwnedLimited(owner Owner, limit int) int {
	rec := b.findOwner(owner)
	if rec == nilIndex {
		return 0
	}

	head := b.ownerHead(rec)
	tail := b.ownerTail(rec)
	if head == nilIndex || tail == nilIndex {
		return 0
	}

	length := 1
	needle := head
	for needle != tail && (limit == 0 || length < limit) {
		needle = b.cells[needle].next
		length++
	}
	return length
}

// Count returns the total number of data cells in use across every
// owner, found in O(total) by walking the single global ring once
// starting from an arbitrary owner's head.
func (b *Buffer) Count() int {
	n, _ := withLock(b, func() (int, error) {
		if b.owners == nilIndex {
			return 0, nil
		}

		last := b.lastCell()
		rec := b.owners
		for b.cells[rec].next == nilIndex && rec < last {
			rec++
		}
		if b.cells[rec].next == nilIndex {
			return 0, nil
		}

		head := b.cells[b.cells[rec].next].next
		length := 1
		for needle := b.cells[head].next; needle != head; needle = b.cells[needle].next {
			length++
		}
		return length, nil
	})
	return n
}

// Available returns the number of cells still on the free list: the
// arena's remaining capacity for new data cells and owner records
// combined.
func (b *Buffer) Available() int {
	n, _ := withLock(b, func() (int, error) {
		length := 0
		for c := b.write; c != nilIndex; c = b.cells[c].next {
			length++
		}
		return length, nil
	})
	return n
}

// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

// This file implements the owner registry: a reverse-stacked table of
// owner records occupying the highest-addressed cells of the arena,
// growing downward as owners are added. An owner record is a cell whose
// data holds the owner id and whose next points at the tail of that
// owner's data sub-list (never at its head — see ownerHead below, the
// design's defining invariant).

// findOwner performs the linear scan over [owners, size) for a matching
// owner id. Not safe to call without the Locker held.
func (b *Buffer) findOwner(owner Owner) index {
	if b.owners == nilIndex {
		return nilIndex
	}
	for i := b.owners; i <= b.lastCell(); i++ {
		if b.cells[i].data == owner {
			return i
		}
	}
	return nilIndex
}

// getOrAllocateOwner returns the existing record for owner, or allocates
// one at cells+size-owner_count-1 (one cell below the current owners
// cursor). Allocation removes that specific cell from the free list; if
// the free list is empty, or that cell is not on the free list because
// it holds data, it returns nilIndex (BufferFull upstream).
func (b *Buffer) getOrAllocateOwner(owner Owner) index {
	if existing := b.findOwner(owner); existing != nilIndex {
		return existing
	}
	if b.write == nilIndex {
		return nilIndex
	}

	target := index(len(b.cells) - b.ownerCount() - 1)

	if target == b.write {
		b.write = b.cells[target].next
	} else {
		prev := b.write
		for b.cells[prev].next != target {
			if b.cells[prev].next == nilIndex {
				// Free list exhausted before reaching target: target
				// currently holds a data cell, so no owner slot is free.
				return nilIndex
			}
			prev = b.cells[prev].next
		}
		b.cells[prev].next = b.cells[target].next
	}

	b.cells[target] = cell{data: owner, next: nilIndex}
	b.owners = target
	return target
}

// releaseOwner removes record from the registry once its last data cell
// has been unlinked by the caller (record's next is not consulted and
// may still name that cell, which the caller frees). It compacts
// the registry by shifting every record below record upward by one slot,
// then returns the freed low slot — the old owners position — to the
// free list and advances owners by one. This is O(owner_count), required
// because the registry is identified by the single owners cursor and
// must stay dense (invariant 4).
func (b *Buffer) releaseOwner(record index) {
	for at := record; at > b.owners; at-- {
		b.cells[at] = b.cells[at-1]
	}

	freed := b.owners
	b.cells[freed].next = b.write
	b.write = freed

	if b.owners == b.lastCell() {
		b.owners = nilIndex
	} else {
		b.owners++
	}
}

// ownerTail returns the tail cell index of the sub-list rooted at
// owner record. tail(O) = Ro.next, always.
func (b *Buffer) ownerTail(record index) index {
	return b.cells[record].next
}

// ownerHead locates the head of record's sub-list via its registry
// neighbor: the previous owner's tail's next points at this owner's
// head, a consequence of every owner's tail.next pointing at the next
// owner's head in registry order — the single global ring that closes
// the whole arena's data cells into one ring, partitioned by the
// registry into owner segments. Returns nilIndex if no registry neighbor
// (record itself included, when it is the only candidate) has a tail.
// record's own tail is not examined; callers check it separately.
func (b *Buffer) ownerHead(record index) index {
	last := b.lastCell()

	var prev index
	if record == last {
		prev = b.owners
	} else {
		prev = record + 1
	}

	for b.cells[prev].next == nilIndex && prev < last {
		prev++
	}
	if b.cells[prev].next == nilIndex {
		return nilIndex
	}
	return b.cells[b.cells[prev].next].next
}

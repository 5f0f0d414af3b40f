// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

// Value is the pointer-sized payload carried by a data cell.
type Value = uint64

// Owner is the opaque pointer-sized id partitioning the arena into
// logical sub-queues. The full range of Owner is valid; no value is
// reserved by the core.
type Owner = uint64

// index addresses a cell within Buffer.cells. It replaces the raw
// pointers of the original C implementation (struct lr_cell *) with an
// offset into a Go slice, per the arena-as-indices redesign: this
// eliminates self-referential and dangling-pointer bugs that are
// possible with raw pointer arithmetic into the same backing array.
type index int32

// nilIndex is the index sentinel, replacing C's NULL.
const nilIndex index = -1

// cell is the arena's unit of storage. It is in exactly one of three
// logical states at any instant: free (on the free list), data (in some
// owner's sub-list), or owner record (in the registry). Which state a
// cell is in is determined entirely by whether it lies in the registry
// range starting at Buffer.owners or is reachable on the free list from
// Buffer.write, never by a tag stored in the cell itself — exactly as
// struct lr_cell carries no discriminator.
type cell struct {
	data Value
	next index
}

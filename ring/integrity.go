// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import "fmt"

// This file is the structured counterpart of the original source's
// lr_debug_structure_circular: an optional diagnostic, not on any hot
// path, that walks the arena and reports structural violations. It
// intentionally does not print a box-drawn cell dump — that is an
// excluded external collaborator — and instead returns a typed report
// a caller can log, assert on in a test, or feed to WithLogger's
// sink.

// Violation describes one structural problem Verify found.
type Violation struct {
	// Owner is the owner whose sub-list the violation was found in,
	// or 0 for an arena-wide violation (e.g. the free list).
	Owner Owner
	// Message describes the violation in one line.
	Message string
}

// Verify walks every owner's sub-list and the free list, checking the
// invariants spec.md's integrity check names:
//
//   - each owner's sub-list, followed from head, terminates at its own
//     tail within size steps;
//   - no data cell is visited by more than one owner;
//   - the free list's length plus the total live data cell count plus
//     the owner count equals size.
//
// It takes the Locker for its duration, like any other operation, and
// never mutates state. A nil, empty return means the arena is
// structurally sound.
func (b *Buffer) Verify() []Violation {
	v, _ := withLock(b, func() ([]Violation, error) {
		return b.verifyLocked(), nil
	})
	if len(v) > 0 {
		b.log.Error(nil, "integrity check found violations", "count", len(v))
		for _, violation := range v {
			b.log.Error(nil, violation.Message, "owner", violation.Owner)
		}
	}
	return v
}

func (b *Buffer) verifyLocked() []Violation {
	var violations []Violation
	visited := make(map[index]Owner, len(b.cells))
	dataTotal := 0

	if b.owners != nilIndex {
		for rec := b.owners; rec <= b.lastCell(); rec++ {
			owner := b.cells[rec].data
			tail := b.ownerTail(rec)
			if tail == nilIndex {
				violations = append(violations, Violation{
					Owner:   owner,
					Message: "owner record has no tail (never received data)",
				})
				continue
			}

			head := b.ownerHead(rec)
			if head == nilIndex {
				violations = append(violations, Violation{
					Owner:   owner,
					Message: "owner head could not be resolved via registry neighbor",
				})
				continue
			}

			steps := 0
			needle := head
			reachedTail := false
			for steps <= len(b.cells) {
				if prior, ok := visited[needle]; ok {
					violations = append(violations, Violation{
						Owner:   owner,
						Message: fmt.Sprintf("data cell visited by more than one owner (also owner %d)", prior),
					})
					break
				}
				visited[needle] = owner
				dataTotal++
				steps++
				if needle == tail {
					reachedTail = true
					break
				}
				needle = b.cells[needle].next
			}
			if !reachedTail {
				violations = append(violations, Violation{
					Owner:   owner,
					Message: "sub-list did not terminate at tail within size steps",
				})
			}
		}
	}

	freeLen := 0
	seenFree := make(map[index]bool, len(b.cells))
	for c := b.write; c != nilIndex; c = b.cells[c].next {
		if seenFree[c] {
			violations = append(violations, Violation{Message: "free list contains a cycle"})
			break
		}
		seenFree[c] = true
		freeLen++
	}

	if want := len(b.cells); freeLen+dataTotal+b.ownerCount() != want {
		violations = append(violations, Violation{
			Message: fmt.Sprintf("free(%d) + data(%d) + owners(%d) != size(%d)",
				freeLen, dataTotal, b.ownerCount(), want),
		})
	}

	return violations
}

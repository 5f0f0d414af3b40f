// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, size int) *Buffer {
	t.Helper()
	b, err := New(size)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", size, err)
	}
	return b
}

// Scenario 1 (spec.md §8): size 8, empty; Put then Get round-trips and
// releases the owner.
func TestScenarioSingleOwnerRoundTrip(t *testing.T) {
	b := mustNew(t, 8)

	if err := b.PutHead(1, 42); err != nil {
		t.Fatalf("PutHead: %v", err)
	}
	v, err := b.GetHead(1)
	if err != nil {
		t.Fatalf("GetHead: %v", err)
	}
	if v != 42 {
		t.Fatalf("GetHead = %d, want 42", v)
	}
	if got := b.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}

// Scenario 2: multiple owners, interleaved puts, FIFO get per owner.
func TestScenarioMultiOwnerFIFO(t *testing.T) {
	b := mustNew(t, 10)

	puts := []struct {
		v     Value
		owner Owner
	}{
		{100, 1}, {200, 2}, {300, 3}, {101, 1},
	}
	for _, p := range puts {
		if err := b.PutHead(p.owner, p.v); err != nil {
			t.Fatalf("PutHead(%d, %d): %v", p.v, p.owner, err)
		}
	}

	if got := b.CountOwned(1); got != 2 {
		t.Fatalf("CountOwned(1) = %d, want 2", got)
	}
	if got := b.CountOwned(2); got != 1 {
		t.Fatalf("CountOwned(2) = %d, want 1", got)
	}
	if got := b.CountOwned(3); got != 1 {
		t.Fatalf("CountOwned(3) = %d, want 1", got)
	}
	if got := b.Count(); got != 4 {
		t.Fatalf("Count = %d, want 4", got)
	}

	if v, err := b.GetHead(2); err != nil || v != 200 {
		t.Fatalf("GetHead(2) = (%d, %v), want (200, nil)", v, err)
	}
	if v, err := b.GetHead(1); err != nil || v != 100 {
		t.Fatalf("GetHead(1) = (%d, %v), want (100, nil)", v, err)
	}

	if got := b.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if got := b.CountOwned(1); got != 1 {
		t.Fatalf("CountOwned(1) = %d, want 1", got)
	}
	if got := b.CountOwned(2); got != 0 {
		t.Fatalf("CountOwned(2) = %d, want 0", got)
	}
}

// Scenario 3: a size-5 arena exhausts with one owner, a second owner
// cannot even be allocated, and freeing one cell lets the next put in.
func TestScenarioBufferFullBoundary(t *testing.T) {
	b := mustNew(t, 5)

	for i := Value(0); i < 4; i++ {
		if err := b.PutHead(1, i); err != nil {
			t.Fatalf("PutHead(%d): %v", i, err)
		}
	}

	if err := b.PutHead(1, 999); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("PutHead when full = %v, want ErrBufferFull", err)
	}
	if err := b.PutHead(2, 888); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("PutHead for new owner when full = %v, want ErrBufferFull", err)
	}

	if v, err := b.GetHead(1); err != nil || v != 0 {
		t.Fatalf("GetHead(1) = (%d, %v), want (0, nil)", v, err)
	}
	if err := b.PutHead(1, 777); err != nil {
		t.Fatalf("PutHead(777) after freeing a cell: %v", err)
	}
}

// Scenario 4: PutStringHead/GetHead round-trip a string byte by byte,
// in FIFO order.
func TestScenarioPutStringHeadRoundTrip(t *testing.T) {
	b := mustNew(t, 20)

	n, err := b.PutStringHead(1, []byte("Hello"))
	if err != nil {
		t.Fatalf("PutStringHead: %v", err)
	}
	if n != 5 {
		t.Fatalf("PutStringHead wrote %d bytes, want 5", n)
	}

	want := "Hello"
	for i := 0; i < len(want); i++ {
		v, err := b.GetHead(1)
		if err != nil {
			t.Fatalf("GetHead[%d]: %v", i, err)
		}
		if byte(v) != want[i] {
			t.Fatalf("GetHead[%d] = %q, want %q", i, byte(v), want[i])
		}
	}
	if got := b.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}

// Scenario 5: InsertAt splices into the middle of a sub-list.
func TestScenarioInsertAtMiddle(t *testing.T) {
	b := mustNew(t, 15)

	if err := b.PutHead(1, 'A'); err != nil {
		t.Fatalf("PutHead(A): %v", err)
	}
	if err := b.PutHead(1, 'C'); err != nil {
		t.Fatalf("PutHead(C): %v", err)
	}
	if err := b.InsertAt(1, 'B', 1); err != nil {
		t.Fatalf("InsertAt(B, 1): %v", err)
	}

	want := []byte{'A', 'B', 'C'}
	for i, w := range want {
		v, err := b.GetHead(1)
		if err != nil {
			t.Fatalf("GetHead[%d]: %v", i, err)
		}
		if byte(v) != w {
			t.Fatalf("GetHead[%d] = %q, want %q", i, byte(v), w)
		}
	}
}

// TestInsertNextSplicesAfterArbitraryCell exercises InsertNext
// directly against a raw cell index obtained via the package's own
// traversal helpers, distinct from InsertAt's owner-relative indexing.
func TestInsertNextSplicesAfterArbitraryCell(t *testing.T) {
	b := mustNew(t, 10)

	if err := b.PutHead(1, 'A'); err != nil {
		t.Fatalf("PutHead(A): %v", err)
	}
	if err := b.PutHead(1, 'C'); err != nil {
		t.Fatalf("PutHead(C): %v", err)
	}

	rec := b.findOwner(1)
	if rec == nilIndex {
		t.Fatalf("findOwner(1): not found")
	}
	head := b.ownerHead(rec)

	if err := b.InsertNext('B', int(head)); err != nil {
		t.Fatalf("InsertNext(B, after head): %v", err)
	}

	want := []byte{'A', 'B', 'C'}
	for i, w := range want {
		v, err := b.GetHead(1)
		if err != nil {
			t.Fatalf("GetHead[%d]: %v", i, err)
		}
		if byte(v) != w {
			t.Fatalf("GetHead[%d] = %q, want %q", i, byte(v), w)
		}
	}
}

func TestInsertNextRejectsOutOfRangeIndex(t *testing.T) {
	b := mustNew(t, 4)

	if err := b.InsertNext('X', 99); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("InsertNext(out of range) = %v, want ErrInvalidIndex", err)
	}
	if err := b.InsertNext('X', -1); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("InsertNext(negative) = %v, want ErrInvalidIndex", err)
	}
}

// Scenario 6: fill a size-6 arena, drain one element, refill it, and
// confirm FIFO order continues across the fill/drain boundary.
func TestScenarioFillDrainRefill(t *testing.T) {
	b := mustNew(t, 6)

	for i := Value(0); i < 5; i++ {
		if err := b.PutHead(1, i*10); err != nil {
			t.Fatalf("PutHead(%d): %v", i*10, err)
		}
	}

	if v, err := b.GetHead(1); err != nil || v != 0 {
		t.Fatalf("GetHead(1) = (%d, %v), want (0, nil)", v, err)
	}
	if err := b.PutHead(1, 999); err != nil {
		t.Fatalf("PutHead(999): %v", err)
	}

	want := []Value{10, 20, 30, 40, 999}
	for i, w := range want {
		v, err := b.GetHead(1)
		if err != nil {
			t.Fatalf("GetHead[%d]: %v", i, err)
		}
		if v != w {
			t.Fatalf("GetHead[%d] = %d, want %d", i, v, w)
		}
	}
}

func TestEmptyArenaReadsAreBufferEmpty(t *testing.T) {
	b := mustNew(t, 4)

	if _, err := b.GetHead(1); !errors.Is(err, ErrBufferEmpty) {
		t.Fatalf("GetHead on empty = %v, want ErrBufferEmpty", err)
	}
	if _, err := b.PopTail(1); !errors.Is(err, ErrBufferEmpty) {
		t.Fatalf("PopTail on empty = %v, want ErrBufferEmpty", err)
	}
	if _, err := b.Read(1); !errors.Is(err, ErrBufferEmpty) {
		t.Fatalf("Read on empty = %v, want ErrBufferEmpty", err)
	}
	if _, err := b.PullAt(1, 0); !errors.Is(err, ErrBufferEmpty) {
		t.Fatalf("PullAt on empty = %v, want ErrBufferEmpty", err)
	}
	if got := b.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
	if b.Exists(1) {
		t.Fatalf("Exists(1) = true on empty arena")
	}
}

func TestSingletonReleaseCompactsRegistry(t *testing.T) {
	b := mustNew(t, 8)

	for _, owner := range []Owner{1, 2, 3} {
		if err := b.PutHead(owner, Value(owner)*10); err != nil {
			t.Fatalf("PutHead(owner %d): %v", owner, err)
		}
	}
	if got := b.CountOwned(2); got != 1 {
		t.Fatalf("CountOwned(2) = %d, want 1", got)
	}

	if _, err := b.GetHead(2); err != nil {
		t.Fatalf("GetHead(2): %v", err)
	}
	if b.Exists(2) {
		t.Fatalf("owner 2 still exists after draining its only element")
	}

	// owners 1 and 3 must still be independently intact.
	if v, err := b.Read(1); err != nil || v != 10 {
		t.Fatalf("Read(1) = (%d, %v), want (10, nil)", v, err)
	}
	if v, err := b.Read(3); err != nil || v != 30 {
		t.Fatalf("Read(3) = (%d, %v), want (30, nil)", v, err)
	}
}

func TestPopTailLIFO(t *testing.T) {
	b := mustNew(t, 10)

	for _, v := range []Value{1, 2, 3, 4} {
		if err := b.PushTail(7, v); err != nil {
			t.Fatalf("PushTail(%d): %v", v, err)
		}
	}

	for _, want := range []Value{4, 3, 2, 1} {
		v, err := b.PopTail(7)
		if err != nil {
			t.Fatalf("PopTail: %v", err)
		}
		if v != want {
			t.Fatalf("PopTail = %d, want %d", v, want)
		}
	}
	if b.Exists(7) {
		t.Fatalf("owner 7 still exists after draining via PopTail")
	}
}

func TestReadAtInvalidIndex(t *testing.T) {
	b := mustNew(t, 10)
	if err := b.PutHead(1, 1); err != nil {
		t.Fatalf("PutHead: %v", err)
	}
	if err := b.PutHead(1, 2); err != nil {
		t.Fatalf("PutHead: %v", err)
	}

	if v, err := b.ReadAt(1, 1); err != nil || v != 2 {
		t.Fatalf("ReadAt(1,1) = (%d, %v), want (2, nil)", v, err)
	}
	if _, err := b.ReadAt(1, 5); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("ReadAt(1,5) = %v, want ErrInvalidIndex", err)
	}
	// Reading must not have removed anything.
	if got := b.CountOwned(1); got != 2 {
		t.Fatalf("CountOwned(1) = %d, want 2 (Read must not mutate)", got)
	}
}

func TestReadStringPeeksWithoutRemoving(t *testing.T) {
	b := mustNew(t, 20)
	if _, err := b.PutStringHead(1, []byte("abc")); err != nil {
		t.Fatalf("PutStringHead: %v", err)
	}

	buf := make([]byte, 3)
	n, err := b.ReadString(1, buf)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if n != 3 || string(buf) != "abc" {
		t.Fatalf("ReadString = (%q, %d), want (\"abc\", 3)", buf, n)
	}
	if got := b.CountOwned(1); got != 3 {
		t.Fatalf("CountOwned(1) = %d, want 3 (ReadString must not mutate)", got)
	}
}

func TestPullAtMiddle(t *testing.T) {
	b := mustNew(t, 10)
	for _, v := range []Value{'A', 'B', 'C', 'D'} {
		if err := b.PutHead(1, v); err != nil {
			t.Fatalf("PutHead: %v", err)
		}
	}

	v, err := b.PullAt(1, 1)
	if err != nil {
		t.Fatalf("PullAt(1,1): %v", err)
	}
	if v != 'B' {
		t.Fatalf("PullAt(1,1) = %q, want 'B'", byte(v))
	}

	want := []Value{'A', 'C', 'D'}
	for i, w := range want {
		v, err := b.GetHead(1)
		if err != nil {
			t.Fatalf("GetHead[%d]: %v", i, err)
		}
		if v != w {
			t.Fatalf("GetHead[%d] = %q, want %q", i, byte(v), byte(w))
		}
	}
}

func TestInvariantConservationAfterMixedOps(t *testing.T) {
	size := 12
	b := mustNew(t, size)

	ops := []struct {
		owner Owner
		v     Value
	}{
		{1, 1}, {2, 2}, {1, 3}, {3, 4}, {2, 5},
	}
	for _, op := range ops {
		if err := b.PutHead(op.owner, op.v); err != nil {
			t.Fatalf("PutHead: %v", err)
		}
	}

	if got, want := b.Count()+b.ownerCount()+b.Available(), size; got != want {
		t.Fatalf("count+owners+available = %d, want %d", got, want)
	}

	if _, err := b.GetHead(1); err != nil {
		t.Fatalf("GetHead(1): %v", err)
	}
	if _, err := b.GetHead(1); err != nil {
		t.Fatalf("GetHead(1): %v", err)
	}

	if got, want := b.Count()+b.ownerCount()+b.Available(), size; got != want {
		t.Fatalf("count+owners+available after drain = %d, want %d", got, want)
	}
}

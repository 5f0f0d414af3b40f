// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import "sync"

// Locker is the Go port of struct lr_mutex_attr: the externally supplied
// mutex binding every mutating and read operation acquires on entry and
// releases on every exit path. A Buffer never retries or times out a lock
// internally — that belongs to the Locker implementation.
type Locker interface {
	// Lock blocks (or otherwise waits) until exclusive access is granted.
	// A non-nil error is treated as lock failure; the Buffer returns
	// immediately without touching state and without calling Unlock.
	Lock() error
	// Unlock releases exclusive access previously granted by Lock.
	Unlock() error
}

// NoopLocker is a Locker that never blocks, for single-threaded use. It is
// the zero-value behavior when no Locker is bound.
type NoopLocker struct{}

func (NoopLocker) Lock() error   { return nil }
func (NoopLocker) Unlock() error { return nil }

// MutexLocker adapts a *sync.Mutex to the Locker interface.
type MutexLocker struct {
	mu sync.Mutex
}

// NewMutexLocker returns a Locker backed by a fresh sync.Mutex.
func NewMutexLocker() *MutexLocker { return &MutexLocker{} }

func (l *MutexLocker) Lock() error   { l.mu.Lock(); return nil }
func (l *MutexLocker) Unlock() error { l.mu.Unlock(); return nil }

// lock acquires b's Locker, translating a failure into ErrLock. It is the
// single suspension point at entry to every public operation.
func (b *Buffer) lock() error {
	if b.locker == nil {
		return nil
	}
	if err := b.locker.Lock(); err != nil {
		return newErr(CodeLock, "%v", err)
	}
	return nil
}

// unlock releases b's Locker. It is called at every exit path once lock
// has succeeded.
func (b *Buffer) unlock() error {
	if b.locker == nil {
		return nil
	}
	if err := b.locker.Unlock(); err != nil {
		return newErr(CodeUnlock, "%v", err)
	}
	return nil
}

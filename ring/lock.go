// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

// withLock wraps fn in the Buffer's Locker: lock, run fn, unlock. A
// lock failure returns immediately without running fn or attempting to
// unlock. An unlock failure is only surfaced if fn itself succeeded, so
// a real operation error always takes priority over a cleanup error.
func (b *Buffer) withLock(fn func() error) error {
	if err := b.lock(); err != nil {
		return err
	}
	err := fn()
	if uerr := b.unlock(); uerr != nil && err == nil {
		err = uerr
	}
	return err
}

// withLock is the value-returning counterpart of (*Buffer).withLock,
// used by every read/remove operation that reports a Value alongside
// an error.
func withLock[T any](b *Buffer, fn func() (T, error)) (T, error) {
	var zero T
	if err := b.lock(); err != nil {
		return zero, err
	}
	v, err := fn()
	if uerr := b.unlock(); uerr != nil && err == nil {
		err = uerr
	}
	return v, err
}

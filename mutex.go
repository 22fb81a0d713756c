// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sync2

import "context"

// Mutex is a mutual-exclusion lock built directly on [BinarySemaphore]:
// Lock is Acquire, Unlock is Release. Unlike [sync.Mutex] it exposes a
// context-aware LockContext for callers that need to give up on a
// contended lock.
//
// The zero value is an unlocked Mutex, ready to use.
type Mutex struct {
	sem BinarySemaphore
}

// NewMutex returns an unlocked Mutex. Equivalent to the zero value; kept
// for symmetry with the other constructors in this package.
func NewMutex() *Mutex {
	return &Mutex{sem: BinarySemaphore{state: binAvailable}}
}

// Lock blocks until the mutex is available.
func (m *Mutex) Lock() {
	// context.Background never expires, so the only error Acquire can
	// return is a canceled context, which never happens here.
	_ = m.sem.Acquire(context.Background())
}

// LockContext blocks until the mutex is available or ctx is done. It
// reports whether the lock was acquired.
func (m *Mutex) LockContext(ctx context.Context) bool {
	return m.sem.Acquire(ctx) == nil
}

// TryLock acquires the mutex without blocking.
func (m *Mutex) TryLock() bool {
	return m.sem.TryAcquire()
}

// Unlock releases the mutex. Unlocking an already-unlocked Mutex is a
// caller error, same as [sync.Mutex].
func (m *Mutex) Unlock() {
	m.sem.Release()
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sync2

import (
	"context"
	"sync/atomic"
	"time"

	"code.hybscloud.com/atomix"

	iwait "github.com/kelborn-sh/sync2/internal/wait"
)

// CountingSemaphore is a counting semaphore with an upper bound on the
// number of outstanding permits. Acquire blocks until a permit is
// available; Release returns n permits to the pool, clamped to never
// exceed the bound the semaphore was constructed with.
//
// permits and waiters are tracked as two independently atomic cells
// rather than packed into one word: the only cross-field invariant that
// matters for correctness — a Release can never race past a waiter that
// is about to park — is already guaranteed by the wait substrate's
// atomic recheck of the monitored cell against its expected value, so
// nothing is gained by packing them together here. permits is the one
// that has to be a raw *uint32 — it is the address handed to the wait
// substrate — so waiters, which is never a wait address, is an
// atomix.Int32 rather than a second sync/atomic field.
type CountingSemaphore struct {
	_       noCopy
	permits uint32
	waiters atomix.Int32
	max     uint32
}

// NewCountingSemaphore returns a semaphore initialized with n permits and
// an upper bound of max. n must not exceed max.
func NewCountingSemaphore(n, max uint32) *CountingSemaphore {
	return &CountingSemaphore{permits: n, max: max}
}

// TryAcquire acquires a permit without blocking. It reports whether a
// permit was available.
func (s *CountingSemaphore) TryAcquire() bool {
	for {
		p := atomic.LoadUint32(&s.permits)
		if p == 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(&s.permits, p, p-1) {
			return true
		}
	}
}

// Acquire blocks until a permit is available or ctx is done.
func (s *CountingSemaphore) Acquire(ctx context.Context) error {
	for {
		if s.TryAcquire() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.waiters.AddAcqRel(1)
		v := atomic.LoadUint32(&s.permits)
		if v == 0 {
			s.parkUntilDeadline(ctx, v)
		}
		s.waiters.AddAcqRel(-1)
	}
}

// TryAcquireContext is Acquire reporting its outcome as a bool: true once
// a permit is acquired, false once ctx is done.
func (s *CountingSemaphore) TryAcquireContext(ctx context.Context) bool {
	return s.Acquire(ctx) == nil
}

func (s *CountingSemaphore) parkUntilDeadline(ctx context.Context, expected uint32) {
	d := pollInterval
	if dl, ok := ctx.Deadline(); ok {
		remaining := time.Until(dl)
		if remaining <= 0 {
			return
		}
		if remaining < d {
			d = remaining
		}
	}
	iwait.WaitTimeout(&s.permits, expected, d)
}

// Release returns n permits to the semaphore, clamped so the total never
// exceeds the configured max, and wakes waiters if there were any at the
// moment of release.
func (s *CountingSemaphore) Release(n uint32) {
	for {
		p := atomic.LoadUint32(&s.permits)
		next := p + n
		if next > s.max {
			next = s.max
		}
		if atomic.CompareAndSwapUint32(&s.permits, p, next) {
			break
		}
	}
	if s.waiters.LoadAcquire() > 0 {
		iwait.Wake(&s.permits, int(n))
	}
}

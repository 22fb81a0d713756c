// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sync2

import (
	"context"
	"sync/atomic"
	"time"

	iwait "github.com/kelborn-sh/sync2/internal/wait"
)

// Ternary states for BinarySemaphore, the standard futex-mutex encoding:
// available permit, held with no one waiting, held with a waiter parked.
// The third state lets Release skip the wake syscall whenever nobody is
// contending for the semaphore.
const (
	binAvailable uint32 = 0
	binHeld      uint32 = 1
	binContended uint32 = 2
)

// BinarySemaphore is a semaphore with at most one outstanding permit. It
// is the specialization [CountingSemaphore] degenerates to at bound 1,
// kept as its own type because the ternary state below is cheaper than
// the general counting path and because [Mutex] is built directly on it.
type BinarySemaphore struct {
	_     noCopy
	state uint32
}

// NewBinarySemaphore returns a semaphore holding a permit if available is
// true, or empty otherwise.
func NewBinarySemaphore(available bool) *BinarySemaphore {
	s := &BinarySemaphore{state: binHeld}
	if available {
		s.state = binAvailable
	}
	return s
}

// TryAcquire acquires the permit without blocking.
func (s *BinarySemaphore) TryAcquire() bool {
	return atomic.CompareAndSwapUint32(&s.state, binAvailable, binHeld)
}

// Acquire blocks until the permit is available or ctx is done.
func (s *BinarySemaphore) Acquire(ctx context.Context) error {
	if s.TryAcquire() {
		return nil
	}
	// Once this goroutine has had to mark the semaphore contended, it no
	// longer knows whether other waiters are parked behind it, so every
	// acquire from here on re-stores binContended rather than binHeld —
	// otherwise the next Release would see binHeld and skip the wake,
	// stranding the other waiters until the poll-interval backstop.
	contended := false
	for {
		old := atomic.LoadUint32(&s.state)
		switch old {
		case binAvailable:
			target := binHeld
			if contended {
				target = binContended
			}
			if atomic.CompareAndSwapUint32(&s.state, binAvailable, target) {
				return nil
			}
			continue
		case binHeld:
			if atomic.CompareAndSwapUint32(&s.state, binHeld, binContended) {
				contended = true
			}
			continue
		default: // binContended
			contended = true
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.park(ctx)
	}
}

func (s *BinarySemaphore) park(ctx context.Context) {
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
	iwait.WaitTimeout(&s.state, binContended, d)
}

// Release returns the permit, waking one waiter if the semaphore was
// contended.
func (s *BinarySemaphore) Release() {
	old := atomic.SwapUint32(&s.state, binAvailable)
	if old == binContended {
		iwait.Wake(&s.state, 1)
	}
}

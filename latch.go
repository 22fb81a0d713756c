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

// Latch is a single-use countdown gate: n goroutines call CountDown, and
// any number of goroutines call Wait to block until the count reaches
// zero. Unlike [Event] it does not auto-reset — once tripped, Wait always
// returns immediately.
type Latch struct {
	_     noCopy
	count uint32
}

// NewLatch returns a Latch that trips after n calls to CountDown. A Latch
// constructed with n == 0 is already tripped.
func NewLatch(n uint32) *Latch {
	return &Latch{count: n}
}

// CountDown decrements the latch by one, waking every blocked waiter if
// this call brings the count to zero. Calls made after the count has
// reached zero have no effect.
func (l *Latch) CountDown() {
	for {
		c := atomic.LoadUint32(&l.count)
		if c == 0 {
			return
		}
		if atomic.CompareAndSwapUint32(&l.count, c, c-1) {
			if c == 1 {
				iwait.WakeAll(&l.count)
			}
			return
		}
	}
}

// Wait blocks until the latch's count reaches zero.
func (l *Latch) Wait() {
	for {
		c := atomic.LoadUint32(&l.count)
		if c == 0 {
			return
		}
		iwait.Wait(&l.count, c)
	}
}

// WaitContext blocks until the latch's count reaches zero or ctx is done.
// It reports whether the latch tripped.
func (l *Latch) WaitContext(ctx context.Context) bool {
	for {
		c := atomic.LoadUint32(&l.count)
		if c == 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		default:
		}
		d := pollInterval
		if dl, ok := ctx.Deadline(); ok {
			remaining := time.Until(dl)
			if remaining <= 0 {
				return false
			}
			if remaining < d {
				d = remaining
			}
		}
		iwait.WaitTimeout(&l.count, c, d)
	}
}

// TryWait reports whether the latch has already tripped, without
// blocking.
func (l *Latch) TryWait() bool {
	return atomic.LoadUint32(&l.count) == 0
}

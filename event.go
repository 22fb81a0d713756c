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

// pollInterval bounds how long WaitContext blocks between checks of
// ctx.Done(). The wait substrate has no notion of a context, so
// cancellation is layered on top by waking up periodically.
const pollInterval = 20 * time.Millisecond

// Event is an auto-reset, broadcast-wake synchronization point: Signal
// wakes every goroutine currently parked in Wait or WaitContext, and the
// event is unsignaled again by the time Signal returns. It does not latch
// like [Latch] — a Wait that starts after Signal has returned blocks again
// until the next Signal.
//
// The zero value is an unsignaled Event, ready to use.
type Event struct {
	_     noCopy
	value uint32
}

// Signal wakes every goroutine currently blocked in Wait or WaitContext.
// It advances the counter twice, through an odd (signaled) value back to
// an even one. A waiter returns once the counter differs from the value
// it saw on entry, so by the time Signal returns the event is unsignaled
// again.
func (e *Event) Signal() {
	atomic.AddUint32(&e.value, 1)
	iwait.WakeAll(&e.value)
	atomic.AddUint32(&e.value, 1)
}

// Wait blocks until the next call to Signal.
func (e *Event) Wait() {
	start := atomic.LoadUint32(&e.value)
	if start&1 == 1 {
		return
	}
	for atomic.LoadUint32(&e.value) == start {
		iwait.Wait(&e.value, start)
	}
}

// WaitContext blocks until the next call to Signal, or until ctx is done.
// It reports whether it returned because of a Signal.
func (e *Event) WaitContext(ctx context.Context) bool {
	start := atomic.LoadUint32(&e.value)
	if start&1 == 1 {
		return true
	}
	for {
		if atomic.LoadUint32(&e.value) != start {
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
		iwait.WaitTimeout(&e.value, start, d)
	}
}

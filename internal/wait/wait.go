// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wait provides the address-wait/wake substrate that every
// primitive in sync2 is built on: park a goroutine on a 32-bit memory
// cell, and wake parked goroutines by address.
//
// The cell is monitored, not owned: ordering with respect to it is the
// caller's responsibility. Wait and WaitTimeout may return for reasons
// other than a matching Wake (spurious wakeups are explicitly permitted,
// mirroring futex/WaitOnAddress/ulock semantics) — callers must always
// re-check their condition in a loop.
package wait

import "time"

// Wait blocks the calling goroutine until the value at addr changes from
// expected, or until woken by Wake/WakeAll on the same address. It
// returns immediately, without blocking, if *addr != expected at entry.
func Wait(addr *uint32, expected uint32) {
	wait(addr, expected)
}

// WaitTimeout is Wait with a bound on how long the caller is willing to
// block. It reports whether the wait returned due to a value change or
// wake (true) as opposed to the deadline elapsing (false). As with Wait,
// a spurious true is always permitted.
func WaitTimeout(addr *uint32, expected uint32, d time.Duration) bool {
	if d <= 0 {
		return false
	}
	return waitTimeout(addr, expected, d)
}

// Wake wakes up to n goroutines blocked in Wait/WaitTimeout on addr.
func Wake(addr *uint32, n int) {
	wake(addr, n)
}

// WakeAll wakes every goroutine blocked in Wait/WaitTimeout on addr.
func WakeAll(addr *uint32) {
	wakeAll(addr)
}

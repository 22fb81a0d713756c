// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package wait

import (
	"sync"
	"time"
	"unsafe"
)

// Platforms without a pure-Go futex syscall (darwin's __ulock_wait/wake
// and windows' WaitOnAddress/WakeByAddress* both require cgo or a syscall
// table this module does not carry) fall back to a small striped table of
// condition variables keyed by address. This reproduces the compare-then-
// block/wake-by-address contract without depending on a platform-private
// API, at the cost of waking every waiter on the bucket rather than only
// those on the exact address (benign: every caller re-checks its own
// condition after waking, per the package doc comment).
const stripes = 256

type stripe struct {
	mu   sync.Mutex
	cond *sync.Cond
}

var table [stripes]*stripe

func init() {
	for i := range table {
		s := &stripe{}
		s.cond = sync.NewCond(&s.mu)
		table[i] = s
	}
}

func bucket(addr *uint32) *stripe {
	h := uintptr(unsafe.Pointer(addr))
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return table[h%stripes]
}

func load(addr *uint32) uint32 {
	return *addr
}

func wait(addr *uint32, expected uint32) {
	s := bucket(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	if load(addr) != expected {
		return
	}
	s.cond.Wait()
}

func waitTimeout(addr *uint32, expected uint32, d time.Duration) bool {
	s := bucket(addr)
	done := make(chan struct{})
	woken := make(chan bool, 1)

	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if load(addr) != expected {
			woken <- true
			close(done)
			return
		}
		s.cond.Wait()
		select {
		case woken <- true:
		default:
		}
		close(done)
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return <-woken
	case <-timer.C:
		// The goroutine above may still be parked in cond.Wait; a
		// subsequent Wake/WakeAll on this bucket will drain it. This
		// leaks at most one spurious wakeup per timeout, the same
		// trade-off the binary semaphore already accepts in §4.3.
		return false
	}
}

func wake(addr *uint32, n int) {
	s := bucket(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	// A bucket's waiters may be parked on other addresses; signaling only
	// n of them could pick those and leave addr's waiters asleep.
	s.cond.Broadcast()
}

func wakeAll(addr *uint32) {
	s := bucket(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cond.Broadcast()
}

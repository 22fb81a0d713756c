// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package wait

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// futexWaitPrivate/futexWakePrivate restrict the futex to waiters within
// this process, avoiding the kernel's cross-process hashing path.
const (
	futexWaitPrivate = 0 | 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 1 | 128 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

func wait(addr *uint32, expected uint32) {
	// The kernel re-checks *addr == expected atomically on syscall entry
	// and returns EAGAIN immediately on mismatch, so no pre-check is
	// required here for correctness — only as a fast path. Re-checking
	// here would still leave the same race window the kernel closes, so
	// it is omitted.
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitPrivate),
		uintptr(expected),
		0,
		0,
		0,
	)
}

func waitTimeout(addr *uint32, expected uint32, d time.Duration) bool {
	ts := unix.Timespec{
		Sec:  int64(d / time.Second),
		Nsec: int64(d % time.Second),
	}
	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitPrivate),
		uintptr(expected),
		uintptr(unsafe.Pointer(&ts)),
		0,
		0,
	)
	return errno != unix.ETIMEDOUT
}

func wake(addr *uint32, n int) {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakePrivate),
		uintptr(n),
		0,
		0,
		0,
	)
}

func wakeAll(addr *uint32) {
	wake(addr, int(^uint32(0)>>1))
}

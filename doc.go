// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sync2 provides blocking synchronization primitives built on top
// of an address-based wait/wake substrate (a futex on Linux, a condition
// variable table elsewhere): an auto-reset [Event], a [CountingSemaphore]
// and its [BinarySemaphore] specialization, a [Mutex], and a [Latch].
//
// The companion package [github.com/kelborn-sh/sync2/mpsc] builds a
// multi-producer single-consumer channel family on the same substrate.
//
// # Quick Start
//
//	var mu sync2.Mutex
//	mu.Lock()
//	defer mu.Unlock()
//
//	sem := sync2.NewCountingSemaphore(0, 4)
//	go func() { sem.Release(1) }()
//	_ = sem.Acquire(context.Background())
//
//	latch := sync2.NewLatch(3)
//	for i := 0; i < 3; i++ {
//	    go func() { defer latch.CountDown(); doWork() }()
//	}
//	latch.Wait()
//
// # Context support
//
// Every blocking call either takes a context itself (the semaphores'
// Acquire) or has a context-aware counterpart next to the plain blocking
// form (LockContext, WaitContext). The wait
// substrate itself has no notion of a context; cancellation is layered on
// top by parking with a bounded timeout and re-checking ctx.Done()
// between parks, so cancellation latency is bounded by that timeout
// rather than being instantaneous.
//
// # Race detector
//
// [RaceEnabled] reports whether the binary was built with -race, so
// tests can skip timing-sensitive stress scenarios under the detector's
// instrumentation overhead rather than produce flaky failures.
package sync2

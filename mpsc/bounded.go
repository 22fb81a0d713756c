// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"github.com/kelborn-sh/sync2/internal/cachepad"
	iwait "github.com/kelborn-sh/sync2/internal/wait"
)

// boundedNode is shared between the linked queue and the free list: a
// node is either threaded onto the queue's tail or onto the free list's
// head, never both, so the same next pointer serves both structures.
type boundedNode[T any] struct {
	next atomic.Pointer[boundedNode[T]]
	item T
}

// bounded is a multi-producer single-consumer queue with a fixed
// capacity: Send blocks (or fails fast under [BlockingNever]) once
// capacity outstanding items have been sent and not yet received. Nodes
// are recycled through a Treiber free-list stack rather than left to the
// garbage collector, so steady-state throughput allocates nothing past
// the initial capacity nodes.
type bounded[T any] struct {
	head atomic.Pointer[boundedNode[T]] // consumer-owned
	_    cachepad.Ptr
	tail atomic.Pointer[boundedNode[T]] // producer-shared
	free atomic.Pointer[boundedNode[T]] // free-list head; pushed by the consumer, popped by producers
	_    cachepad.Ptr

	permits       uint32 // outstanding-capacity counter, producers' wait cell
	seq           uint32 // consumer's wait cell, bumped on enqueue
	producers     atomix.Int64
	producersGone atomix.Bool
	receiverDone  atomix.Bool
}

func newBounded[T any](capacity int, producers int64) *bounded[T] {
	dummy := &boundedNode[T]{}
	q := &bounded[T]{permits: uint32(capacity)}
	q.producers.StoreRelease(producers)
	q.head.Store(dummy)
	q.tail.Store(dummy)

	var backoff spin.Wait
	for i := 0; i < capacity; i++ {
		q.pushFree(&boundedNode[T]{})
		backoff.Once()
	}
	return q
}

func (q *bounded[T]) addSender() {
	q.producers.AddAcqRel(1)
}

func (q *bounded[T]) dropSender() {
	if q.producers.AddAcqRel(-1) == 0 {
		q.producersGone.StoreRelease(true)
		atomic.AddUint32(&q.seq, 1)
		iwait.WakeAll(&q.seq)
	}
}

func (q *bounded[T]) closeReceiver() {
	q.receiverDone.StoreRelease(true)
	iwait.WakeAll(&q.permits)
}

func (q *bounded[T]) sendBlocks() Blocking { return BlockingSometimes }
func (q *bounded[T]) recvBlocks() Blocking { return BlockingSometimes }

func (q *bounded[T]) pushFree(n *boundedNode[T]) {
	var backoff spin.Wait
	for {
		head := q.free.Load()
		n.next.Store(head)
		if q.free.CompareAndSwap(head, n) {
			return
		}
		backoff.Once()
	}
}

func (q *bounded[T]) popFree() *boundedNode[T] {
	var backoff spin.Wait
	for {
		head := q.free.Load()
		if head == nil {
			// Transient: a producer raced ahead of the consumer's
			// recycle. The permit count guarantees a node becomes
			// available without an external allocation.
			backoff.Once()
			continue
		}
		next := head.next.Load()
		if q.free.CompareAndSwap(head, next) {
			return head
		}
		backoff.Once()
	}
}

func (q *bounded[T]) acquirePermit(ctx context.Context, blocking Blocking) Status {
	for {
		p := atomic.LoadUint32(&q.permits)
		if p > 0 {
			if atomic.CompareAndSwapUint32(&q.permits, p, p-1) {
				return StatusOK
			}
			continue
		}
		if q.receiverDone.LoadAcquire() {
			return StatusClosed
		}
		if blocking == BlockingNever {
			return StatusWouldBlock
		}
		if err := parkCtx(ctx, &q.permits, 0); err != nil {
			return StatusTimeout
		}
	}
}

func (q *bounded[T]) send(ctx context.Context, item T, blocking Blocking) SendResult[T] {
	if q.receiverDone.LoadAcquire() {
		return SendResult[T]{Status: StatusClosed, Item: item, HasItem: true}
	}

	switch status := q.acquirePermit(ctx, blocking); status {
	case StatusOK:
	default:
		return SendResult[T]{Status: status, Item: item, HasItem: true}
	}

	n := q.popFree()
	n.item = item
	n.next.Store(nil)

	var backoff spin.Wait
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(tail, n)
				break
			}
		} else {
			q.tail.CompareAndSwap(tail, next)
		}
		backoff.Once()
	}

	atomic.AddUint32(&q.seq, 1)
	iwait.Wake(&q.seq, 1)
	return SendResult[T]{Status: StatusOK}
}

func (q *bounded[T]) tryDequeue() (T, bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	item := next.item
	q.head.Store(next)
	q.pushFree(head)

	atomic.AddUint32(&q.permits, 1)
	iwait.Wake(&q.permits, 1)
	return item, true
}

func (q *bounded[T]) recv(ctx context.Context, blocking Blocking) RecvResult[T] {
	for {
		if item, ok := q.tryDequeue(); ok {
			return RecvResult[T]{Status: StatusOK, Item: item}
		}
		if q.producersGone.LoadAcquire() {
			// See unbounded.recv: producersGone becoming visible does not
			// guarantee the last producer's enqueue is visible too, so
			// re-check once before declaring the queue drained.
			if item, ok := q.tryDequeue(); ok {
				return RecvResult[T]{Status: StatusOK, Item: item}
			}
			return RecvResult[T]{Status: StatusClosed}
		}
		if blocking == BlockingNever {
			return RecvResult[T]{Status: StatusWouldBlock}
		}
		seq := atomic.LoadUint32(&q.seq)
		if err := parkCtx(ctx, &q.seq, seq); err != nil {
			return RecvResult[T]{Status: StatusTimeout}
		}
	}
}

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

// unboundedNode is a Michael & Scott queue node. next is an atomic
// pointer because producers race each other (and the consumer reading it
// just ahead of them) to link the next node onto the tail.
type unboundedNode[T any] struct {
	next atomic.Pointer[unboundedNode[T]]
	item T
}

// unbounded is a multi-producer single-consumer queue with no capacity
// bound: Send never blocks on space. It is a Michael & Scott linked
// queue with a permanent dummy head node, so the consumer never contends
// with producers over the head pointer — only the tail is shared.
type unbounded[T any] struct {
	head atomic.Pointer[unboundedNode[T]] // consumer-owned
	_    cachepad.Ptr
	tail atomic.Pointer[unboundedNode[T]] // producer-shared
	_    cachepad.Ptr

	seq           uint32 // bumped on every successful enqueue; consumer's wait cell
	producers     atomix.Int64
	producersGone atomix.Bool
	receiverDone  atomix.Bool
}

func newUnbounded[T any](producers int64) *unbounded[T] {
	dummy := &unboundedNode[T]{}
	q := &unbounded[T]{}
	q.producers.StoreRelease(producers)
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

func (q *unbounded[T]) addSender() {
	q.producers.AddAcqRel(1)
}

func (q *unbounded[T]) dropSender() {
	if q.producers.AddAcqRel(-1) == 0 {
		q.producersGone.StoreRelease(true)
		atomic.AddUint32(&q.seq, 1)
		iwait.WakeAll(&q.seq)
	}
}

func (q *unbounded[T]) closeReceiver() {
	q.receiverDone.StoreRelease(true)
}

func (q *unbounded[T]) sendBlocks() Blocking { return BlockingNever }
func (q *unbounded[T]) recvBlocks() Blocking { return BlockingSometimes }

func (q *unbounded[T]) send(_ context.Context, item T, _ Blocking) SendResult[T] {
	if q.receiverDone.LoadAcquire() {
		return SendResult[T]{Status: StatusClosed, Item: item, HasItem: true}
	}

	n := &unboundedNode[T]{item: item}
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
			// Another producer linked a node but has not yet swung
			// tail onto it; help it along before retrying.
			q.tail.CompareAndSwap(tail, next)
		}
		backoff.Once()
	}

	atomic.AddUint32(&q.seq, 1)
	iwait.Wake(&q.seq, 1)
	return SendResult[T]{Status: StatusOK}
}

func (q *unbounded[T]) tryDequeue() (T, bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	item := next.item
	q.head.Store(next)
	return item, true
}

func (q *unbounded[T]) recv(ctx context.Context, blocking Blocking) RecvResult[T] {
	for {
		if item, ok := q.tryDequeue(); ok {
			return RecvResult[T]{Status: StatusOK, Item: item}
		}
		if q.producersGone.LoadAcquire() {
			// producersGone only orders memory issued after it was set;
			// the last producer's final link may still be propagating
			// when this load observes true. Re-check once before
			// declaring the queue drained, or a send that landed right
			// at disconnect is lost instead of delivered.
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

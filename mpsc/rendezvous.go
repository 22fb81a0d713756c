// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/atomix"

	"github.com/kelborn-sh/sync2"
	iwait "github.com/kelborn-sh/sync2/internal/wait"
)

// rendezvous is a zero-capacity, multi-producer single-consumer channel:
// Send does not return until a consumer has actually taken the item, not
// merely until there was room to buffer it. throttle admits one producer
// at a time into the single slot, so a producer holds it for the entire
// deposit-then-wait-for-pickup handoff, not just the deposit.
type rendezvous[T any] struct {
	throttle sync2.Mutex
	item     T

	full     uint32 // 0 empty, 1 holding an undelivered item; consumer's wait cell
	takenSeq uint32 // bumped by the consumer after taking the item; depositing producer's wait cell
	waiting  atomix.Int64 // count of consumers currently parked in recv, checked by TrySend

	producers     atomix.Int64
	producersGone atomix.Bool
	receiverDone  atomix.Bool
}

func newRendezvous[T any](producers int64) *rendezvous[T] {
	q := &rendezvous[T]{}
	q.producers.StoreRelease(producers)
	return q
}

func (q *rendezvous[T]) addSender() {
	q.producers.AddAcqRel(1)
}

func (q *rendezvous[T]) dropSender() {
	if q.producers.AddAcqRel(-1) == 0 {
		q.producersGone.StoreRelease(true)
		iwait.WakeAll(&q.full)
	}
}

func (q *rendezvous[T]) closeReceiver() {
	q.receiverDone.StoreRelease(true)
	iwait.WakeAll(&q.full)
	iwait.WakeAll(&q.takenSeq)
}

func (q *rendezvous[T]) sendBlocks() Blocking { return BlockingAlways }
func (q *rendezvous[T]) recvBlocks() Blocking { return BlockingAlways }

func (q *rendezvous[T]) send(ctx context.Context, item T, blocking Blocking) SendResult[T] {
	if q.receiverDone.LoadAcquire() {
		return SendResult[T]{Status: StatusClosed, Item: item, HasItem: true}
	}

	if blocking == BlockingNever {
		// A rendezvous has no buffer to deposit into ahead of a reader:
		// committing to a deposit with no consumer parked would force
		// this call to block on pickup anyway, breaking the contract
		// that BlockingNever never blocks. So it only proceeds when a
		// consumer is known to be waiting right now.
		if q.waiting.LoadAcquire() == 0 {
			return SendResult[T]{Status: StatusWouldBlock, Item: item, HasItem: true}
		}
		if !q.throttle.TryLock() {
			return SendResult[T]{Status: StatusWouldBlock, Item: item, HasItem: true}
		}
	} else if !q.throttle.LockContext(ctx) {
		return SendResult[T]{Status: StatusTimeout, Item: item, HasItem: true}
	}

	if q.receiverDone.LoadAcquire() {
		q.throttle.Unlock()
		return SendResult[T]{Status: StatusClosed, Item: item, HasItem: true}
	}

	q.item = item
	takenBefore := atomic.LoadUint32(&q.takenSeq)
	atomic.StoreUint32(&q.full, 1)
	iwait.Wake(&q.full, 1)

	for {
		if atomic.LoadUint32(&q.takenSeq) != takenBefore {
			q.throttle.Unlock()
			return SendResult[T]{Status: StatusOK}
		}
		if q.receiverDone.LoadAcquire() {
			atomic.CompareAndSwapUint32(&q.full, 1, 0)
			q.throttle.Unlock()
			return SendResult[T]{Status: StatusClosed, Item: item, HasItem: true}
		}
		if blocking == BlockingNever {
			// A BlockingNever send that has already deposited the item
			// must still wait for the consumer to take it: there is no
			// way to retract a delivery in progress without risking the
			// consumer reading a half-retracted slot. This can only
			// loop as long as the consumer takes to notice full == 1.
			blocking = BlockingAlways
		}
		if err := parkCtx(ctx, &q.takenSeq, takenBefore); err != nil {
			atomic.CompareAndSwapUint32(&q.full, 1, 0)
			q.throttle.Unlock()
			return SendResult[T]{Status: StatusTimeout, Item: item, HasItem: true}
		}
	}
}

func (q *rendezvous[T]) recv(ctx context.Context, blocking Blocking) RecvResult[T] {
	registered := false
	defer func() {
		if registered {
			q.waiting.AddAcqRel(-1)
		}
	}()

	for {
		if atomic.LoadUint32(&q.full) == 1 {
			if atomic.CompareAndSwapUint32(&q.full, 1, 0) {
				item := q.item
				atomic.AddUint32(&q.takenSeq, 1)
				iwait.Wake(&q.takenSeq, 1)
				return RecvResult[T]{Status: StatusOK, Item: item}
			}
			continue
		}
		if q.producersGone.LoadAcquire() {
			return RecvResult[T]{Status: StatusClosed}
		}
		if blocking == BlockingNever {
			return RecvResult[T]{Status: StatusWouldBlock}
		}
		if !registered {
			q.waiting.AddAcqRel(1)
			registered = true
		}
		if err := parkCtx(ctx, &q.full, 0); err != nil {
			return RecvResult[T]{Status: StatusTimeout}
		}
	}
}

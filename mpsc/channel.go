// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import "context"

// transport is the behavior shared by the three channel implementations;
// Sender and Receiver are thin handles onto one.
type transport[T any] interface {
	send(ctx context.Context, item T, blocking Blocking) SendResult[T]
	recv(ctx context.Context, blocking Blocking) RecvResult[T]
	addSender()
	dropSender()
	closeReceiver()
	sendBlocks() Blocking
	recvBlocks() Blocking
}

// Channel creates a multi-producer single-consumer channel and returns
// its two ends. capacity selects the transport:
//
//   - [Unbounded]: an unbounded queue; Send never blocks on space.
//   - 0: a rendezvous channel; Send blocks until a consumer takes the item.
//   - a positive integer: a bounded queue holding at most capacity items.
//
// Any other capacity returns [ErrInvalidCapacity].
func Channel[T any](capacity int) (Sender[T], Receiver[T], error) {
	var t transport[T]
	switch {
	case capacity == Unbounded:
		t = newUnbounded[T](1)
	case capacity == 0:
		t = newRendezvous[T](1)
	case capacity > 0:
		t = newBounded[T](capacity, 1)
	default:
		return Sender[T]{}, Receiver[T]{}, ErrInvalidCapacity
	}
	return Sender[T]{t: t}, Receiver[T]{t: t}, nil
}

// Sender is the producer side of a channel. The zero value is not usable;
// obtain a Sender from [Channel] or by cloning an existing one.
type Sender[T any] struct {
	t transport[T]
}

// Send blocks until item is delivered, ctx is done, or the channel is
// closed. On the rendezvous transport, delivery means a consumer has
// taken the item; on the unbounded and bounded transports, it means the
// item has been placed in the queue.
func (s Sender[T]) Send(ctx context.Context, item T) error {
	r := s.t.send(ctx, item, BlockingAlways)
	return sendErr(ctx, r.Status)
}

// TrySend attempts to send without blocking.
func (s Sender[T]) TrySend(item T) error {
	r := s.t.send(context.Background(), item, BlockingNever)
	return sendErr(context.Background(), r.Status)
}

// TrySendContext attempts to send, parking only until ctx is done rather
// than indefinitely; it is the deadline-bounded counterpart to TrySend,
// for a caller that wants to give up on a contended or full channel after
// a bounded wait rather than failing immediately or waiting forever.
func (s Sender[T]) TrySendContext(ctx context.Context, item T) error {
	r := s.t.send(ctx, item, BlockingAlways)
	return sendErr(ctx, r.Status)
}

// SendResult is Send, returning the full [SendResult] instead of a bare
// error — useful when a caller wants the item back on failure without
// having kept their own copy.
func (s Sender[T]) SendResult(ctx context.Context, item T) SendResult[T] {
	return s.t.send(ctx, item, BlockingAlways)
}

// Clone returns a new Sender onto the same channel, registering an
// additional producer so the channel is not considered closed-by-senders
// until every clone (and the original) has called Close.
func (s Sender[T]) Clone() Sender[T] {
	s.t.addSender()
	return Sender[T]{t: s.t}
}

// Close deregisters this Sender. Once every Sender obtained from the same
// [Channel] call (including clones) has called Close, the Receiver's
// blocked and future Recv calls observe the channel as closed once
// drained.
func (s Sender[T]) Close() {
	s.t.dropSender()
}

// Blocks reports how far Send is willing to park: [BlockingNever] for the
// unbounded transport (space is never a constraint), [BlockingSometimes]
// for the bounded transport (only once capacity is exhausted), or
// [BlockingAlways] for the rendezvous transport (every send waits for a
// consumer).
func (s Sender[T]) Blocks() Blocking {
	return s.t.sendBlocks()
}

// Receiver is the consumer side of a channel. The zero value is not
// usable; obtain a Receiver from [Channel].
type Receiver[T any] struct {
	t transport[T]
}

// Recv blocks until an item is available, ctx is done, or the channel is
// closed and drained.
func (r Receiver[T]) Recv(ctx context.Context) (T, error) {
	res := r.t.recv(ctx, BlockingAlways)
	return res.Item, recvErr(ctx, res.Status)
}

// TryRecv attempts to receive without blocking.
func (r Receiver[T]) TryRecv() (T, error) {
	res := r.t.recv(context.Background(), BlockingNever)
	return res.Item, recvErr(context.Background(), res.Status)
}

// TryRecvContext attempts to receive, parking only until ctx is done
// rather than indefinitely; it is the deadline-bounded counterpart to
// TryRecv.
func (r Receiver[T]) TryRecvContext(ctx context.Context) (T, error) {
	res := r.t.recv(ctx, BlockingAlways)
	return res.Item, recvErr(ctx, res.Status)
}

// RecvResult is Recv, returning the full [RecvResult] instead of a
// (value, error) pair.
func (r Receiver[T]) RecvResult(ctx context.Context) RecvResult[T] {
	return r.t.recv(ctx, BlockingAlways)
}

// Close marks the channel closed from the consumer side: every pending
// and future Send observes [ErrClosed] immediately, regardless of
// whether any item was already in flight.
func (r Receiver[T]) Close() {
	r.t.closeReceiver()
}

// Blocks reports how far Recv is willing to park: [BlockingSometimes] for
// the unbounded and bounded transports (only while empty), or
// [BlockingAlways] for the rendezvous transport (every receive waits for
// a producer).
func (r Receiver[T]) Blocks() Blocking {
	return r.t.recvBlocks()
}

func sendErr(ctx context.Context, status Status) error {
	switch status {
	case StatusOK:
		return nil
	case StatusClosed:
		return ErrClosed
	case StatusTimeout:
		if err := ctx.Err(); err != nil {
			return err
		}
		return context.DeadlineExceeded
	default:
		return ErrWouldBlock
	}
}

func recvErr(ctx context.Context, status Status) error {
	switch status {
	case StatusOK:
		return nil
	case StatusClosed:
		return ErrClosed
	case StatusTimeout:
		if err := ctx.Err(); err != nil {
			return err
		}
		return context.DeadlineExceeded
	default:
		return ErrWouldBlock
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpsc provides a multi-producer, single-consumer channel family:
// an unbounded queue, a bounded queue with backpressure, and a
// zero-capacity rendezvous channel, chosen by the capacity passed to
// [Channel]. All three transports are built on the same address-based
// wait/wake substrate as [github.com/kelborn-sh/sync2]'s primitives.
package mpsc

import (
	"context"
	"errors"

	"github.com/kelborn-sh/sync2"
)

// Unbounded requests an unbounded transport from [Channel]. An unbounded
// channel never blocks on send and never reports [ErrWouldBlock] from a
// send; memory
// grows with the number of items the consumer has not yet drained.
const Unbounded = -1

// Status describes the outcome of a send or receive attempt.
type Status int

const (
	// StatusOK indicates the operation completed successfully.
	StatusOK Status = iota
	// StatusWouldBlock indicates a non-blocking call could not complete
	// immediately (bounded channel full, or rendezvous/empty channel
	// with no item ready).
	StatusWouldBlock
	// StatusTimeout indicates a call bounded by a context deadline did
	// not complete before the deadline elapsed.
	StatusTimeout
	// StatusClosed indicates the channel was closed before the
	// operation could complete.
	StatusClosed
)

// String implements [fmt.Stringer].
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWouldBlock:
		return "would-block"
	case StatusTimeout:
		return "timeout"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SendResult reports the outcome of a send attempt. When Status is
// anything other than StatusOK, HasItem is true and Item holds the value
// the caller tried to send, handed back so the caller can retry or
// dispose of it without having to have kept a copy themselves.
type SendResult[T any] struct {
	Status  Status
	Item    T
	HasItem bool
}

// RecvResult reports the outcome of a receive attempt. Item is only
// meaningful when Status is StatusOK.
type RecvResult[T any] struct {
	Status Status
	Item   T
}

// Blocking selects how far a send or receive is willing to block.
type Blocking int

const (
	// BlockingNever never parks the calling goroutine; it is equivalent
	// to the Try variants.
	BlockingNever Blocking = iota
	// BlockingSometimes parks only in some states — a bounded queue that
	// is full, or a queue that is empty — and then waits for capacity or
	// an item to appear.
	BlockingSometimes
	// BlockingAlways parks for as long as it takes, bounded only by the
	// caller's context.
	BlockingAlways
)

// ErrClosed is returned by Send once the last [Receiver] has closed the
// channel, and by Recv once the channel is closed and drained.
var ErrClosed = errors.New("mpsc: channel closed")

// ErrInvalidCapacity is returned by [Channel] when capacity is neither
// [Unbounded], zero, nor a positive integer.
var ErrInvalidCapacity = errors.New("mpsc: invalid capacity")

// ErrWouldBlock is an alias for [sync2.ErrWouldBlock], returned by the Try
// variants when the operation cannot complete immediately.
var ErrWouldBlock = sync2.ErrWouldBlock

// IsClosed reports whether err is, or wraps, [ErrClosed].
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsWouldBlock reports whether err is, or wraps, [ErrWouldBlock].
func IsWouldBlock(err error) bool {
	return sync2.IsWouldBlock(err)
}

// IsTimeout reports whether err is a context deadline or cancellation
// error, as returned by a Send or Recv bounded by ctx.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

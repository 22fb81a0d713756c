// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"context"
	"iter"
)

// Drain returns an iterator over every item the channel yields, blocking
// between items exactly as Recv does, and stopping once the channel is
// closed and drained. It replaces a begin/end iterator pair with a
// single range-over-func value:
//
//	for item := range receiver.Drain() {
//	    process(item)
//	}
//
// The loop above ends on its own once the last [Sender] closes and the
// backlog is drained; it does not need a separate closed-channel check.
func (r Receiver[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, err := r.Recv(context.Background())
			if err != nil {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

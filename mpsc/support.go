// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"context"
	"time"

	iwait "github.com/kelborn-sh/sync2/internal/wait"
)

// pollInterval bounds how long a blocked send or receive waits between
// checks of ctx.Done(); the wait substrate has no notion of a context.
const pollInterval = 20 * time.Millisecond

// parkCtx parks the calling goroutine on addr until its value changes
// from expected, a wake targets addr, or ctx is done. It returns ctx's
// error once ctx is done; a nil return means the caller should re-check
// its condition and loop, exactly as with a bare call to [iwait.Wait].
func parkCtx(ctx context.Context, addr *uint32, expected uint32) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	d := pollInterval
	if dl, ok := ctx.Deadline(); ok {
		remaining := time.Until(dl)
		if remaining <= 0 {
			return ctx.Err()
		}
		if remaining < d {
			d = remaining
		}
	}
	iwait.WaitTimeout(addr, expected, d)
	return nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sync2

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates a non-blocking operation could not complete
// immediately. The mpsc package's TrySend and TryRecv return it; the
// TryAcquire and TryLock methods in this package report the same
// condition as false instead.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry with backoff, fall back to the blocking variant, or treat it as
// "not yet" rather than propagating it as an error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

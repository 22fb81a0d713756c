// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package sync2

// RaceEnabled is true when the race detector is active.
// Used by tests to skip stress tests whose timing assumptions are too
// tight to hold under the race detector's instrumentation overhead.
const RaceEnabled = true

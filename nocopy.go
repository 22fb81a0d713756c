// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sync2

// noCopy is embedded in every type whose C++ counterpart was move-only
// (the address of the waitable cell must stay stable for the lifetime of
// any parked waiter). It has no state; go vet's -copylocks check flags any
// accidental copy by value, the same trick [sync.Mutex] and
// [sync.WaitGroup] use.
type noCopy struct{}

// Lock and Unlock are no-ops that exist only to satisfy the Locker shape
// go vet's copylocks checker looks for.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

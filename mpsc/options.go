// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

// Options configures channel creation through a fluent builder, an
// alternative entry point to the bare [Channel] call for callers who
// prefer to name the transport rather than its capacity.
//
// Example:
//
//	tx, rx, err := mpsc.Build[Request](mpsc.New().WithCapacity(1024))
//	tx, rx, err := mpsc.Build[Request](mpsc.New().WithRendezvous())
type Options struct {
	capacity int
}

// New returns an Options defaulting to an unbounded channel.
func New() *Options {
	return &Options{capacity: Unbounded}
}

// WithCapacity selects the bounded transport with the given capacity.
func (o *Options) WithCapacity(n int) *Options {
	o.capacity = n
	return o
}

// WithRendezvous selects the zero-capacity rendezvous transport.
func (o *Options) WithRendezvous() *Options {
	o.capacity = 0
	return o
}

// WithUnbounded selects the unbounded transport. This is the default, so
// it only matters when undoing an earlier WithCapacity/WithRendezvous
// call on the same builder.
func (o *Options) WithUnbounded() *Options {
	o.capacity = Unbounded
	return o
}

// Build creates a channel from the configured Options.
func Build[T any](o *Options) (Sender[T], Receiver[T], error) {
	return Channel[T](o.capacity)
}

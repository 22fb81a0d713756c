// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cachepad holds the cache-line padding types the channel
// transports use to keep producer-side and consumer-side fields off each
// other's cache line.
package cachepad

import "unsafe"

// PtrSize is the size of a pointer on the target platform.
const PtrSize = int(unsafe.Sizeof(uintptr(0)))

// Pad fills a full cache line.
type Pad [64]byte

// Short fills a cache line after an 8-byte field.
type Short [64 - 8]byte

// Ptr fills a cache line after a pointer-sized field.
type Ptr [64 - PtrSize]byte

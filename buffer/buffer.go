// Package buffer provides pooled frame buffers.
package buffer

import "sync"

// MTU is the largest frame or datagram payload the tunnel forwards.
const MTU = 1500

// FrameBufferSize leaves one spare byte past MTU so an oversize unit is
// detected instead of silently truncated.
const FrameBufferSize = MTU + 1

var pool = sync.Pool{
	New: func() any {
		b := make([]byte, FrameBufferSize)
		return &b
	},
}

// Get returns a buffer of FrameBufferSize bytes.
func Get() *[]byte {
	b := pool.Get().(*[]byte)
	*b = (*b)[:FrameBufferSize]
	return b
}

// Put returns b to the pool. b must not be used afterwards.
func Put(b *[]byte) {
	if b == nil || cap(*b) < FrameBufferSize {
		return
	}
	pool.Put(b)
}

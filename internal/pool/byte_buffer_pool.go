// Package pool provides reusable byte buffers for the binary encoders.
package pool

import (
	"io"
	"sync"
)

const (
	ChunkBufferDefaultSize    = 1024 * 4        // 4KiB, a few hundred keyframes
	ChunkBufferMaxThreshold   = 1024 * 64       // 64KiB
	BundleBufferDefaultSize   = 1024 * 64       // 64KiB
	BundleBufferMaxThreshold  = 1024 * 1024 * 4 // 4MiB
	smallBufferGrowthBoundary = 4 * ChunkBufferDefaultSize
)

// ByteBuffer is an append-only byte slice that can be returned to a pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer is reused.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow ensures room for n more bytes. Small buffers grow by ChunkBufferDefaultSize,
// larger ones by a quarter of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := ChunkBufferDefaultSize
	if cap(bb.B) > smallBufferGrowthBoundary {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, n)

	grown := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(grown, bb.B)
	bb.B = grown
}

// Write appends data. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffered bytes to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// Detach returns a copy of the buffered bytes that outlives the buffer.
func (bb *ByteBuffer) Detach() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool recycles ByteBuffers. Buffers grown past maxThreshold are dropped
// instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. bb must not be used afterwards.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	chunkPool  = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
	bundlePool = NewByteBufferPool(BundleBufferDefaultSize, BundleBufferMaxThreshold)
)

// GetChunkBuffer returns a buffer sized for a single track chunk.
func GetChunkBuffer() *ByteBuffer { return chunkPool.Get() }

// PutChunkBuffer returns a chunk buffer.
func PutChunkBuffer(bb *ByteBuffer) { chunkPool.Put(bb) }

// GetBundleBuffer returns a buffer sized for a bundle payload.
func GetBundleBuffer() *ByteBuffer { return bundlePool.Get() }

// PutBundleBuffer returns a bundle buffer.
func PutBundleBuffer(bb *ByteBuffer) { bundlePool.Put(bb) }

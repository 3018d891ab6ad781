// SPDX-License-Identifier: EPL-2.0

package ring

import "sync/atomic"

// Buffer is a fixed-capacity single-producer/single-consumer queue of
// equally sized audio blocks.
//
// The read and write cursors are monotonic block counters; the slot
// for cursor c is c modulo the capacity.  The producer never laps the
// consumer: TryPush reports false when the buffer is full instead of
// overwriting.  Neither side blocks, and the consumer side performs no
// allocation, which makes TryPop safe to call from a realtime thread.
type Buffer struct {
	blocks    [][]float32
	blocksize int
	read      atomic.Uint64
	write     atomic.Uint64
}

// New creates a buffer holding capacity blocks of blocksize samples.
func New(capacity, blocksize int) (*Buffer, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if blocksize < 1 {
		return nil, ErrInvalidBlocksize
	}

	b := &Buffer{
		blocks:    make([][]float32, capacity),
		blocksize: blocksize,
	}
	for i := range b.blocks {
		b.blocks[i] = make([]float32, blocksize)
	}
	return b, nil
}

// Blocksize returns the number of samples per block.
func (b *Buffer) Blocksize() int {
	return b.blocksize
}

// Len returns the number of queued blocks.
func (b *Buffer) Len() int {
	return int(b.write.Load() - b.read.Load())
}

// Full reports whether a TryPush would fail.
func (b *Buffer) Full() bool {
	return b.Len() == len(b.blocks)
}

// TryPush copies src into the next free slot.  It reports false when
// the buffer is full.  src must hold exactly Blocksize samples.
// Producer side only.
func (b *Buffer) TryPush(src []float32) bool {
	w := b.write.Load()
	if w-b.read.Load() == uint64(len(b.blocks)) {
		return false
	}
	copy(b.blocks[w%uint64(len(b.blocks))], src)
	b.write.Store(w + 1)
	return true
}

// TryPop copies the oldest queued block into dst.  It reports false
// when the buffer is empty.  dst must hold at least Blocksize samples.
// Consumer side only; never allocates or blocks.
func (b *Buffer) TryPop(dst []float32) bool {
	for {
		r := b.read.Load()
		if r == b.write.Load() {
			return false
		}
		copy(dst, b.blocks[r%uint64(len(b.blocks))])
		// Drain may move the read cursor concurrently; only commit the
		// pop if the slot was still ours.
		if b.read.CompareAndSwap(r, r+1) {
			return true
		}
	}
}

// Drain discards all queued blocks.  Producer side only, used while
// repositioning the stream; the consumer must not be popping for the
// same playback position while a drain is in flight.  The cursors stay
// monotonic, so a straggling TryPop either observes the drained state
// or pops one stale block, never a torn one.
func (b *Buffer) Drain() {
	for {
		r := b.read.Load()
		w := b.write.Load()
		if r == w {
			return
		}
		if b.read.CompareAndSwap(r, w) {
			return
		}
	}
}

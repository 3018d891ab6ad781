// SPDX-License-Identifier: EPL-2.0

// Package ring provides a fixed-capacity block queue decoupling a
// decode goroutine from a realtime audio pull.
//
// The queue is single-producer/single-consumer: one goroutine pushes
// decoded blocks, one pops them.  Both operations are non-blocking and
// lock-free; only atomic cursor updates and memory copies are
// performed, so the consumer side may run inside a hard-realtime audio
// callback.
//
//	buf, _ := ring.New(4, 256)
//
//	// decode goroutine
//	for buf.TryPush(block) { ... }
//
//	// realtime callback
//	if !buf.TryPop(out) {
//	    // underrun: leave out zeroed
//	}
//
// Drain discards queued blocks during a seek.  It belongs to the
// producer side of the protocol; the streaming layer guarantees the
// consumer is not pulling for the superseded playback position.
package ring

// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"sync/atomic"

	"github.com/ik5/audscene/transform"
)

// State of the scene-wide seek machine.
type State int32

const (
	// Idle means no seek has been requested yet; rolling pulls are
	// rejected until the first seek completes.
	Idle State = iota
	// Seeking means a target has been issued and at least one reader
	// is still repositioning.
	Seeking
	// Ready means every reader is primed for the current target and
	// rolling pulls are valid.
	Ready
)

// Controller orchestrates a scene-wide seek across all readers and
// transform tracks, and owns the playback frame cursor.
//
// Begin and Poll run on a control goroutine; Position, Advance and
// CurrentState are safe from the realtime pull.  Each Begin stamps a
// fresh sequence number, so a reader finishing a superseded seek is
// never mistaken for progress toward the latest target.
type Controller struct {
	readers []*Reader
	tracks  []*transform.Track

	seq      atomic.Uint64
	target   atomic.Uint64
	position atomic.Uint64
	state    atomic.Int32
}

// NewController wires the readers and tracks that a seek repositions.
// Live sources have no reader; their tracks are still rewound.
func NewController(readers []*Reader, tracks []*transform.Track) *Controller {
	return &Controller{
		readers: readers,
		tracks:  tracks,
	}
}

// Begin issues a seek toward frame.  An unfinished seek is superseded:
// the new target is stamped with a fresh sequence number and every
// reader abandons the stale one.
func (c *Controller) Begin(frame uint64) {
	seq := c.seq.Add(1)
	c.target.Store(frame)
	c.position.Store(frame)
	c.state.Store(int32(Seeking))

	for _, t := range c.tracks {
		t.Rewind(frame)
	}
	for _, r := range c.readers {
		r.request(seq, frame)
	}
}

// Poll reports whether every reader is primed for the current target,
// transitioning to Ready on the first success.  It never blocks; the
// caller re-invokes at its own cadence.  Once Ready, Poll keeps
// returning true until the next Begin.
func (c *Controller) Poll() bool {
	switch State(c.state.Load()) {
	case Ready:
		return true
	case Idle:
		return false
	}

	seq := c.seq.Load()
	for _, r := range c.readers {
		if !r.seekDone(seq) {
			return false
		}
	}
	c.state.Store(int32(Ready))
	return true
}

// Seek combines Begin and Poll into the polled interface contract:
// true means ready to roll at frame, false means keep calling.
//
// Seeking to the current playback position while Ready is a no-op that
// returns true immediately, which lets a caller pause and resume
// without flushing buffered audio.
func (c *Controller) Seek(frame uint64) bool {
	switch State(c.state.Load()) {
	case Ready:
		if c.position.Load() == frame {
			return true
		}
	case Seeking:
		if c.target.Load() == frame {
			return c.Poll()
		}
	}
	c.Begin(frame)
	return c.Poll()
}

// CurrentState returns the seek machine's state.  Realtime-safe.
func (c *Controller) CurrentState() State {
	return State(c.state.Load())
}

// Position returns the playback frame cursor.  Realtime-safe.
func (c *Controller) Position() uint64 {
	return c.position.Load()
}

// Advance moves the playback cursor forward by one block's worth of
// frames.  Called by the rolling pull only.
func (c *Controller) Advance(frames uint64) {
	c.position.Add(frames)
}

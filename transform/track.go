// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"sort"
	"sync/atomic"
)

// Keyframe is a transform pinned to a frame on the scene timeline.
type Keyframe struct {
	Frame     uint64
	Transform Transform
}

// Track is an ordered sequence of keyframes answering "transform at
// frame N" by interpolation.
//
// Lookups are read-only and realtime-safe: no allocation, and O(1)
// amortized for the sequential access pattern of playback.  A cursor
// caches the segment of the previous lookup; it is only a hint, so
// concurrent Rewind calls from a control goroutine cannot corrupt
// results.
type Track struct {
	keys   []Keyframe
	cursor atomic.Int64
}

// NewTrack builds a track from keyframes.
// Keyframe frames must be strictly increasing.
func NewTrack(keys []Keyframe) (*Track, error) {
	for i := 1; i < len(keys); i++ {
		if keys[i].Frame <= keys[i-1].Frame {
			return nil, ErrFramesNotIncreasing
		}
	}
	return &Track{keys: keys}, nil
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	return len(t.keys)
}

// Rewind repositions the lookup cursor near frame.  Called when the
// playback position jumps, so the next At resumes sequential access
// without scanning.
func (t *Track) Rewind(frame uint64) {
	if len(t.keys) < 2 {
		return
	}
	t.cursor.Store(int64(t.segmentSearch(frame)))
}

// At returns the transform at the given frame.
//
// An empty track yields the inactive default.  Frames outside the
// keyframe range clamp to the boundary keyframe.  Between keyframes,
// position and volume are linearly interpolated and orientation is
// spherically interpolated; if either bracketing keyframe is inactive,
// the earlier keyframe's value is held instead.
func (t *Track) At(frame uint64) Transform {
	switch len(t.keys) {
	case 0:
		return Inactive()
	case 1:
		return t.keys[0].Transform
	}

	if frame <= t.keys[0].Frame {
		return t.keys[0].Transform
	}
	last := len(t.keys) - 1
	if frame >= t.keys[last].Frame {
		return t.keys[last].Transform
	}

	i := t.segment(frame)
	k0, k1 := t.keys[i], t.keys[i+1]
	if !k0.Transform.Active || !k1.Transform.Active {
		return k0.Transform
	}

	x := float32(frame-k0.Frame) / float32(k1.Frame-k0.Frame)
	return interpolate(k0.Transform, k1.Transform, x)
}

// segment returns the index i with keys[i].Frame <= frame < keys[i+1].Frame.
// The caller guarantees frame is inside the keyframe range.
func (t *Track) segment(frame uint64) int {
	i := int(t.cursor.Load())
	if i < 0 || i >= len(t.keys)-1 {
		i = 0
	}

	// Sequential playback lands on the cached segment or the next one.
	if t.keys[i].Frame <= frame {
		if frame < t.keys[i+1].Frame {
			return i
		}
		if i+2 < len(t.keys) && frame < t.keys[i+2].Frame {
			t.cursor.Store(int64(i + 1))
			return i + 1
		}
	}

	i = t.segmentSearch(frame)
	t.cursor.Store(int64(i))
	return i
}

func (t *Track) segmentSearch(frame uint64) int {
	// First index with keys[n].Frame > frame, minus one.
	n := sort.Search(len(t.keys), func(n int) bool {
		return t.keys[n].Frame > frame
	})
	if n == 0 {
		return 0
	}
	if n >= len(t.keys) {
		return len(t.keys) - 2
	}
	return n - 1
}

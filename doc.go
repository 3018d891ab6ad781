// SPDX-License-Identifier: EPL-2.0

// Package audscene plays spatial audio scenes.
//
// A scene file names a set of sources, each with an optional audio
// file and a keyframed transform track, plus a reference listener
// track.  Open starts one decode goroutine per file source; the caller
// then drives playback with Seek, a polled seek protocol, and
// AudioData, a non-blocking per-block pull designed to run inside a
// realtime audio callback.  Transform queries interpolate each track
// at an arbitrary frame and are realtime-safe as well.
//
// Decoding, buffering and seek coordination live in the stream, ring
// and formats packages; this package wires them to the scene
// description.
package audscene

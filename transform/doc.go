// SPDX-License-Identifier: EPL-2.0

// Package transform tracks the time-varying spatial pose of audio
// scene entities.
//
// A Transform combines an active flag, a position, an orientation
// quaternion and a volume.  A Track is an ordered sequence of
// (frame, Transform) keyframes and answers lookups for arbitrary
// frames by interpolation:
//
//	track, _ := transform.NewTrack(keys)
//	pose := track.At(48000)
//
// # Interpolation Policy
//
// Position and volume are interpolated linearly between the bracketing
// keyframes.  Orientation uses spherical linear interpolation and the
// result is renormalized, so unit norm is preserved across arbitrarily
// long chains of lookups.  Frames outside the keyframe range clamp to
// the boundary keyframe.  A segment with an inactive endpoint holds the
// earlier keyframe's value instead of interpolating.
//
// # Realtime Safety
//
// Track.At never allocates and never blocks.  Playback reads frames in
// order, so a cursor caches the last segment; position jumps are
// handled with a binary search, and Track.Rewind pre-positions the
// cursor when the playback position is moved deliberately.
package transform

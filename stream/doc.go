// SPDX-License-Identifier: EPL-2.0

// Package stream decouples file decoding from a realtime audio pull.
//
// A Reader runs one decode goroutine per file source, keeping a ring of
// blocks filled ahead of the playback cursor.  A Controller coordinates
// seeks across all readers as a polled state machine: a seek request is
// asynchronous, Poll reports incremental progress, and a new target
// issued mid-seek supersedes the old one.  The consumer side (Pull,
// Poll, Position) never blocks or allocates.
package stream

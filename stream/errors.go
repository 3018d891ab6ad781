// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrEmptyBuffer reports an underrun: the ring held no block at
	// pull time.  The output is zero-filled and playback continues.
	ErrEmptyBuffer = errors.New("no buffered block available")

	// ErrIncompleteSeek reports that a seek is still in flight.
	ErrIncompleteSeek = errors.New("seek not yet complete")

	// ErrSeekWhileRolling reports a caller protocol violation: a
	// rolling pull was issued while a seek was incomplete.
	ErrSeekWhileRolling = errors.New("rolling pull during incomplete seek")
)

// SPDX-License-Identifier: EPL-2.0

package scenefile

import "errors"

var (
	ErrNegativeDuration   = errors.New("scene duration is negative")
	ErrNegativeStart      = errors.New("source start time is negative")
	ErrNegativeTime       = errors.New("keyframe time is negative")
	ErrTimesNotIncreasing = errors.New("keyframe times are not strictly increasing")
)

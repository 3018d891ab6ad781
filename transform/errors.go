// SPDX-License-Identifier: EPL-2.0

package transform

import "errors"

var (
	ErrFramesNotIncreasing = errors.New("keyframe frames must be strictly increasing")
)

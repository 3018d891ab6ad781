// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	ErrInvalidCapacity  = errors.New("ring capacity must be at least 1 block")
	ErrInvalidBlocksize = errors.New("blocksize must be at least 1 sample")
)

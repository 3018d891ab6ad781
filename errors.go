// SPDX-License-Identifier: EPL-2.0

package audscene

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrUnsupportedFormat = errors.New("unsupported audio file format")
	ErrSceneClosed       = errors.New("scene is closed")
)

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audscene/internal/audiotest"
)

// Local constructors so tests read naturally inside this package.

func newSilentSource(sampleRate, channels, totalFrames int) Source {
	return audiotest.NewSilentSource(sampleRate, channels, totalFrames)
}

func newConstantSource(sampleRate, channels, totalFrames int, value float32) Source {
	return audiotest.NewConstantSource(sampleRate, channels, totalFrames, value)
}

func newSineSource(sampleRate, channels, totalFrames int, frequency float64) Source {
	return audiotest.NewSineSource(sampleRate, channels, totalFrames, frequency)
}

func newRampSource(sampleRate, channels, totalFrames int) Source {
	return audiotest.NewRampSource(sampleRate, channels, totalFrames)
}

// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int // Total frames to generate (per channel)
	position    int // Next frame to generate (per channel)
	waveform    func(frame int, channel int) float32

	// Failure injection
	failSeek error
	failRead error

	seeks atomic.Int64
}

// NewMockSource creates a new mock audio source.
// totalFrames is the total number of frames per channel to generate.
// waveform generates sample values given frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return value
	})
}

// NewRampSource creates a mock source whose sample value equals the
// frame index, which makes positions recognizable in seek tests.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return float32(frame)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

// FailReads makes every subsequent ReadSamples return err.
func (m *MockSource) FailReads(err error) { m.failRead = err }

// FailSeeks makes every subsequent SeekFrame return err.
func (m *MockSource) FailSeeks(err error) { m.failSeek = err }

// Seeks returns how many times SeekFrame was called.
func (m *MockSource) Seeks() int { return int(m.seeks.Load()) }

// SeekFrame repositions the generator.  Seeking past the end is
// allowed; the next read reports io.EOF.
func (m *MockSource) SeekFrame(frame uint64) error {
	m.seeks.Add(1)
	if m.failSeek != nil {
		return m.failSeek
	}
	if frame > uint64(m.totalFrames) {
		frame = uint64(m.totalFrames)
	}
	m.position = int(frame)
	return nil
}

// Frames returns the configured total length.
func (m *MockSource) Frames() (uint64, bool) {
	return uint64(m.totalFrames), true
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failRead != nil {
		return 0, m.failRead
	}
	if m.position >= m.totalFrames {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesRequested := len(dst) / m.channels
	framesAvailable := m.totalFrames - m.position
	framesToWrite := framesRequested
	if framesToWrite > framesAvailable {
		framesToWrite = framesAvailable
	}

	// Generate samples
	for frame := 0; frame < framesToWrite; frame++ {
		frameIndex := m.position + frame
		for ch := 0; ch < m.channels; ch++ {
			dst[frame*m.channels+ch] = m.waveform(frameIndex, ch)
		}
	}

	m.position += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.position >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

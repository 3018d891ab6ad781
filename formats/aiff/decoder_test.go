package aiff

import (
	"bytes"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	format       *goaudio.Format
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return m.format
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, nil
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if err != ErrNotAiffFile {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	mock := &mockAiffReader{
		format:  &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		samples: []int{16384, -16384, 8192},
	}
	src := &source{dec: mock, sampleRate: 44100, channels: 1, bitDepth: 16, frames: 3}

	buf := make([]float32, 3)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadSamples() = %d samples, want 3", n)
	}
	if buf[0] != 0.5 || buf[1] != -0.5 || buf[2] != 0.25 {
		t.Errorf("samples = %v, want normalized PCM values", buf[:n])
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	mock := &mockAiffReader{
		format:  &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		samples: []int{100},
	}
	src := &source{dec: mock, sampleRate: 44100, channels: 1, bitDepth: 16, frames: 1}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if n != 1 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (1, io.EOF)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	mock := &mockAiffReader{
		format:       &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		returnErrors: true,
	}
	src := &source{dec: mock, sampleRate: 44100, channels: 1, bitDepth: 16}

	buf := make([]float32, 8)
	if _, err := src.ReadSamples(buf); err == nil {
		t.Error("ReadSamples() error = nil, want error")
	}
}

func TestSource_Frames(t *testing.T) {
	t.Parallel()

	src := &source{frames: 4242}
	frames, ok := src.Frames()
	if !ok || frames != 4242 {
		t.Errorf("Frames() = (%d, %v), want (4242, true)", frames, ok)
	}
}

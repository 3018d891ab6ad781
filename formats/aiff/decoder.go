package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audscene/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	rs         io.ReadSeeker
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	frames     uint64
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) Frames() (uint64, bool) { return s.frames, true }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Resize buffer if needed
	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	// Read from decoder
	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	// Convert int samples to float32
	// go-audio uses int format, we need to normalize based on bit depth
	maxVal := float32(32768.0)
	if s.bitDepth == 8 {
		maxVal = 128.0
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(s.intBuf.Data[i]) / maxVal
	}

	// If we got fewer samples than requested and no error, we're at EOF
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

// SeekFrame re-parses the file and decode-skips to the target frame.
// The COMM chunk carries no per-frame index, so linear skipping is the
// only sample-accurate option within the decoder's public API.
func (s *source) SeekFrame(frame uint64) error {
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec := aiff.NewDecoder(s.rs)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}
	dec.ReadInfo()
	s.dec = dec

	if frame > s.frames {
		frame = s.frames
	}

	scratch := make([]float32, 4096-4096%s.channels)
	remaining := frame * uint64(s.channels)
	for remaining > 0 {
		want := remaining
		if want > uint64(len(scratch)) {
			want = uint64(len(scratch))
		}
		n, err := s.ReadSamples(scratch[:want])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n == 0 {
			return nil
		}
		remaining -= uint64(n)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	// Check bit depth - only support 16-bit for now
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		rs:         r,
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
		frames:     uint64(dec.NumSampleFrames),
	}, nil
}

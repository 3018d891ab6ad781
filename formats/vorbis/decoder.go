package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audscene/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	SetPosition(pos int64) error
	Length() int64
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// SeekFrame uses the stream's native positioning, which operates in
// frames (granule positions).
func (s *source) SeekFrame(frame uint64) error {
	if total := s.dec.Length(); total > 0 && int64(frame) > total {
		frame = uint64(total)
	}
	if err := s.dec.SetPosition(int64(frame)); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Frames reports the stream length from the last granule position.
func (s *source) Frames() (uint64, bool) {
	total := s.dec.Length()
	if total <= 0 {
		return 0, false
	}
	return uint64(total), true
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Read whole frames only
	want := len(dst) - len(dst)%s.channels
	n, err := s.dec.Read(dst[:want])
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}

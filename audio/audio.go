// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// SeekFrame repositions the stream so that the next ReadSamples
	// starts at the given frame (per-channel sample index), sample-
	// accurately.  Seeking to or past the end of the stream is allowed;
	// the next read then reports io.EOF.
	SeekFrame(frame uint64) error

	// Frames returns the total stream length in frames per channel.
	// ok is false when the length is unknown.
	Frames() (frames uint64, ok bool)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

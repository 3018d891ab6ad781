// SPDX-License-Identifier: EPL-2.0

package audscene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audscene/audio"
	"github.com/ik5/audscene/formats/aiff"
	"github.com/ik5/audscene/formats/mp3"
	"github.com/ik5/audscene/formats/vorbis"
	"github.com/ik5/audscene/formats/wav"
	"github.com/ik5/audscene/scenefile"
	"github.com/ik5/audscene/stream"
	"github.com/ik5/audscene/transform"
)

// SourceInfo is the static identity of a source, fixed at load time.
type SourceInfo struct {
	ID    string
	Name  string
	Model string
	Port  string
}

type sourceState struct {
	info  SourceInfo
	track *transform.Track
}

// Scene is a loaded audio scene: file and live sources with keyframed
// transforms, a reference listener, and one decode pipeline per file
// source.
//
// Sources are ordered file sources first, then live sources, and keep
// their indices for the scene's lifetime.  Seek runs the polled seek
// protocol; AudioData is the realtime pull.  Transform queries and
// AudioData are safe from a realtime thread; Open, Seek and Close are
// control-side calls.
type Scene struct {
	samplerate int
	blocksize  int
	frames     uint64

	sources   []sourceState
	fileCount int
	readers   []*stream.Reader
	files     []io.Closer
	reference *transform.Track
	ctl       *stream.Controller

	closed bool
}

// Open loads the scene description at path and starts a decode
// goroutine for every file source.  blocksize is the frames per pull,
// bufferBlocks the ring depth per source, and sleep the idle wait of a
// decode goroutine whose ring is full.
//
// The returned scene is not yet rolling: call Seek until it reports
// true before the first rolling AudioData.
func Open(path string, samplerate, blocksize, bufferBlocks int, sleep time.Duration) (*Scene, error) {
	if samplerate < 1 {
		return nil, ErrInvalidSampleRate
	}

	desc, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		samplerate: samplerate,
		blocksize:  blocksize,
	}
	ok := false
	defer func() {
		if !ok {
			s.Close()
		}
	}()

	s.reference, err = scenefile.Track(desc.Reference, samplerate)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	registry := newRegistry()
	tracks := []*transform.Track{s.reference}
	lengthKnown := true
	var lastFrame uint64

	// File sources first so indices line up with the reader list.
	for _, live := range []bool{false, true} {
		for i := range desc.Sources {
			src := &desc.Sources[i]
			if src.Live() != live {
				continue
			}

			track, err := scenefile.Track(src.Keyframes, samplerate)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", src.Name, err)
			}
			tracks = append(tracks, track)
			s.sources = append(s.sources, sourceState{
				info: SourceInfo{
					ID:    src.ID,
					Name:  src.Name,
					Model: src.Model,
					Port:  src.Port,
				},
				track: track,
			})
			if live {
				continue
			}

			start := scenefile.Frame(src.Start, samplerate)
			mono, err := s.openSource(registry, src.File)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", src.Name, err)
			}
			if length, known := mono.Frames(); known {
				if end := start + length; end > lastFrame {
					lastFrame = end
				}
			} else {
				lengthKnown = false
			}

			reader, err := stream.NewReader(mono, start, bufferBlocks, blocksize, sleep)
			if err != nil {
				mono.Close()
				return nil, fmt.Errorf("source %q: %w", src.Name, err)
			}
			s.readers = append(s.readers, reader)
			s.fileCount++
		}
	}

	switch {
	case desc.Duration > 0:
		s.frames = scenefile.Frame(desc.Duration, samplerate)
	case lengthKnown && s.fileCount > 0:
		s.frames = lastFrame
	}

	s.ctl = stream.NewController(s.readers, tracks)
	ok = true
	return s, nil
}

// openSource opens and decodes one audio file, yielding a seekable
// mono stream at the scene sample rate.
func (s *Scene) openSource(registry *audio.Registry, path string) (audio.Source, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	decoder, found := registry.Get(ext)
	if !found {
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	s.files = append(s.files, f)

	src, err := decoder.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", filepath.Base(path), err)
	}
	return audio.Mono(src, s.samplerate), nil
}

func newRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// Close stops all decode goroutines and releases the source files.
// Safe to call more than once.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for _, r := range s.readers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FileSources returns the number of file-backed sources.
func (s *Scene) FileSources() int {
	return s.fileCount
}

// LiveSources returns the number of live sources.
func (s *Scene) LiveSources() int {
	return len(s.sources) - s.fileCount
}

// Frames returns the scene duration in frames; 0 means undefined.
func (s *Scene) Frames() uint64 {
	return s.frames
}

// SampleRate returns the scene sample rate in Hz.
func (s *Scene) SampleRate() int {
	return s.samplerate
}

// Blocksize returns the frames delivered per AudioData call.
func (s *Scene) Blocksize() int {
	return s.blocksize
}

// Position returns the playback frame cursor.  Realtime-safe.
func (s *Scene) Position() uint64 {
	return s.ctl.Position()
}

// SourceInfo returns the static metadata of the source at index.
// The index must be in range; file sources come first.
func (s *Scene) SourceInfo(index int) SourceInfo {
	return s.sources[index].info
}

// SourceTransform returns the transform of the source at index for the
// given frame.  Realtime-safe; the index must be in range.
func (s *Scene) SourceTransform(index int, frame uint64) transform.Transform {
	return s.sources[index].track.At(frame)
}

// ReferenceTransform returns the listener transform for the given
// frame.  The reference is always active, even when the scene defines
// no keyframes for it.  Realtime-safe.
func (s *Scene) ReferenceTransform(frame uint64) transform.Transform {
	if s.reference.Len() == 0 {
		return transform.Transform{
			Active: true,
			Rot:    transform.Identity(),
			Vol:    1,
		}
	}
	t := s.reference.At(frame)
	t.Active = true
	return t
}

// Seek requests playback from frame and polls for completion: true
// means ready to roll, false means call again.  A false return is not
// an error; seek latency depends on each source's decoder.  Seeking to
// the current position while ready returns true immediately, so a
// paused scene resumes without losing buffered audio.
func (s *Scene) Seek(frame uint64) bool {
	if s.closed {
		return false
	}
	return s.ctl.Seek(frame)
}

// AudioData delivers one block per file source into buffers, which
// must hold at least FileSources slices of Blocksize samples each (it
// may be nil when there are no file sources).  Extra buffers, such as
// slots for live sources fed elsewhere, are left untouched on success.
//
// With rolling false every buffer is zeroed and the call succeeds
// without consuming anything.  With rolling true the playback cursor
// advances by one block and each source's next block is copied out;
// an underrun zero-fills that source and the call reports
// stream.ErrEmptyBuffer.  Rolling is a protocol violation before the
// first seek has completed (stream.ErrIncompleteSeek) and while a
// later seek is in flight (stream.ErrSeekWhileRolling); either way all
// buffers are zeroed and the clock does not advance.
//
// Realtime-safe and non-reentrant: no allocation, no blocking, at
// most one in-flight call.
func (s *Scene) AudioData(buffers [][]float32, rolling bool) error {
	if !rolling {
		for _, b := range buffers {
			zero(b)
		}
		return nil
	}
	if s.closed {
		for _, b := range buffers {
			zero(b)
		}
		return ErrSceneClosed
	}
	if state := s.ctl.CurrentState(); state != stream.Ready {
		for _, b := range buffers {
			zero(b)
		}
		if state == stream.Idle {
			return stream.ErrIncompleteSeek
		}
		return stream.ErrSeekWhileRolling
	}

	var firstErr error
	for i, r := range s.readers {
		if err := r.Pull(buffers[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.ctl.Advance(uint64(s.blocksize))
	return firstErr
}

func zero(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}

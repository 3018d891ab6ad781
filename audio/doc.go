// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio streaming primitives.
//
// This package contains the building blocks of the scene player's
// decode path:
//   - Source interface for seekable audio input
//   - Resampler for sample rate conversion
//   - MonoMixer for channel mixing
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of the decode path:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    SeekFrame(frame uint64) error
//	    Frames() (uint64, bool)
//	    Close() error
//	}
//
// All decoders and processors implement this interface, allowing them
// to be chained in processing pipelines.  SeekFrame repositions a
// stream sample-accurately; the scene player relies on it to jump the
// decode cursor without rebuilding the pipeline.  Frames reports the
// total stream length, or ok=false when it cannot be known (e.g. a
// non-seekable compressed stream).
//
// # Playback Pipeline
//
// The scene player feeds every file source through Mono, which
// resamples to the scene rate and mixes down to one channel:
//
//	src, _ := decoder.Decode(file)
//	stream := audio.Mono(src, 48000)
//
// The pieces can also be chained by hand:
//
//	resampler := audio.NewResampler(source, 16000)
//	mono := audio.NewMonoMixer(resampler)
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// The scene loader selects decoders by file extension through a
// registry.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to process audio without worrying
// about bit depths and ensures no clipping during intermediate processing.
//
// # Error Handling
//
// Streaming functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio

// Package wav decodes and writes WAV (RIFF) audio files.
//
// It uses the github.com/go-audio library for robust WAV file handling.
//
// # Decoding
//
//	decoder := wav.Decoder{}
//	src, err := decoder.Decode(file)
//
// The returned source is seekable: SeekFrame re-parses the header and
// decode-skips to the target frame, which keeps seeking sample-accurate
// for any supported bit depth.  The total length is always known, so
// Frames reports ok=true.
//
// # Writing
//
//	samples := []int16{100, -100, 200, -200}
//	wav.WriteWAV16(file, 8000, 1, samples)
//
// WriteWAV16 emits interleaved 16-bit PCM with an arbitrary channel
// count; the scene player's tests and example renderer use it to
// produce fixtures and output files.
package wav

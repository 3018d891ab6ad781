// SPDX-License-Identifier: EPL-2.0

package audio

// Mono builds the standard playback pipeline for a decoded source:
// resample to sampleRate when the rates differ, then mix down to a
// single channel.  The result is a seekable mono stream at sampleRate.
//
// Seeking the returned source repositions the whole chain sample-
// accurately, so a scene player can jump its decode cursor without
// rebuilding the pipeline.
func Mono(src Source, sampleRate int) Source {
	if src.SampleRate() != sampleRate {
		src = NewResampler(src, sampleRate)
	}
	if src.Channels() != 1 {
		src = NewMonoMixer(src)
	}
	return src
}

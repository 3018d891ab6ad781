// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio using github.com/hajimehoshi/go-mp3.
//
//	decoder := mp3.Decoder{}
//	src, err := decoder.Decode(file)
//
// The decoder outputs 16-bit stereo PCM regardless of the encoded
// channel layout.  Seeking is native and sample-accurate: the decoder
// exposes the decoded stream as a seekable byte stream at four bytes
// per frame.  Frames reports ok=false when the input reader does not
// support seeking, in which case the total length is unknown.
package mp3

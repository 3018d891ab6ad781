// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio using
// github.com/jfreymuth/oggvorbis.
//
//	decoder := vorbis.Decoder{}
//	src, err := decoder.Decode(file)
//
// Seeking uses the stream's granule positions and is sample-accurate.
// Frames reports ok=false for streams whose final granule position
// cannot be determined.
package vorbis

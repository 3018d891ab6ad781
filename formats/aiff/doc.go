// Package aiff decodes AIFF audio files.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// Only 16-bit PCM content is supported.  The total length comes from
// the COMM chunk's sample-frame count, so Frames always reports
// ok=true.  Seeking re-parses the file and decode-skips to the target
// frame.
package aiff

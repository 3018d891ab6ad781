// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("output size = %d, want %d", len(data), 44+len(samples)*2)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channel count = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 8000 {
		t.Errorf("sample rate = %d, want 8000", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}
}

func TestWriteWAV16_Stereo(t *testing.T) {
	t.Parallel()

	samples := []int16{1, 2, 3, 4, 5, 6}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channel count = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}
}

func TestWriteWAV16_PartialFrame(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteWAV16(&buf, 44100, 2, []int16{1, 2, 3})
	if err != ErrPartialFrame {
		t.Errorf("WriteWAV16() error = %v, want ErrPartialFrame", err)
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != 44 {
		t.Errorf("output size = %d, want header only (44)", buf.Len())
	}
}

func TestWriteWAV16_RoundTripValues(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 32767, -32768, 12345}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[44:]
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		if got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

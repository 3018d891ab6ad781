package stream_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/audscene/internal/audiotest"
	"github.com/ik5/audscene/stream"
	"github.com/ik5/audscene/transform"
)

const (
	blocksize  = 64
	ringBlocks = 4
	idleSleep  = 100 * time.Microsecond
)

func newRampReader(t *testing.T, totalFrames int, start uint64) (*stream.Reader, *audiotest.MockSource) {
	t.Helper()

	src := audiotest.NewRampSource(44100, 1, totalFrames)
	r, err := stream.NewReader(src, start, ringBlocks, blocksize, idleSleep)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, src
}

func waitReady(t *testing.T, c *stream.Controller) {
	t.Helper()

	for i := 0; i < 2000; i++ {
		if c.Poll() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("seek did not complete")
}

// pullBlock retries until a block arrives, so tests tolerate the
// producer refilling between pops.
func pullBlock(t *testing.T, r *stream.Reader, dst []float32) {
	t.Helper()

	for i := 0; i < 2000; i++ {
		err := r.Pull(dst)
		if err == nil {
			return
		}
		if !errors.Is(err, stream.ErrEmptyBuffer) {
			t.Fatalf("Pull() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no block became available")
}

func TestNewReader_InvalidRing(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 100)
	if _, err := stream.NewReader(src, 0, 0, blocksize, idleSleep); err == nil {
		t.Error("NewReader() with zero blocks: error = nil, want error")
	}
}

func TestController_IdleBeforeFirstSeek(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	if c.CurrentState() != stream.Idle {
		t.Errorf("CurrentState() = %v, want Idle", c.CurrentState())
	}
	if c.Poll() {
		t.Error("Poll() before any seek = true, want false")
	}
}

func TestController_SeekAndPull(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	c.Begin(0)
	waitReady(t, c)

	block := make([]float32, blocksize)
	for b := 0; b < 8; b++ {
		pullBlock(t, r, block)
		for i, v := range block {
			want := float32(b*blocksize + i)
			if v != want {
				t.Fatalf("block %d sample %d = %v, want %v", b, i, v, want)
			}
		}
	}
}

func TestController_PollIdempotent(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	c.Begin(0)
	waitReady(t, c)

	for i := 0; i < 10; i++ {
		if !c.Poll() {
			t.Fatal("Poll() after Ready = false, want true")
		}
	}
	if c.CurrentState() != stream.Ready {
		t.Errorf("CurrentState() = %v, want Ready", c.CurrentState())
	}
}

func TestController_SupersedingSeek(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	c.Begin(100)
	c.Begin(5000)
	waitReady(t, c)

	block := make([]float32, blocksize)
	pullBlock(t, r, block)
	if block[0] != 5000 {
		t.Errorf("first sample after superseding seek = %v, want 5000", block[0])
	}
}

func TestController_SeekResumesWithoutFlush(t *testing.T) {
	t.Parallel()

	r, src := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	for !c.Seek(0) {
		time.Sleep(time.Millisecond)
	}

	block := make([]float32, blocksize)
	pullBlock(t, r, block)
	c.Advance(blocksize)
	pullBlock(t, r, block)
	c.Advance(blocksize)

	seeks := src.Seeks()
	if !c.Seek(2 * blocksize) {
		t.Fatal("Seek() to current position = false, want true")
	}
	if src.Seeks() != seeks {
		t.Error("resuming at the current position repositioned the source")
	}

	pullBlock(t, r, block)
	if block[0] != float32(2*blocksize) {
		t.Errorf("first sample after resume = %v, want %v", block[0], 2*blocksize)
	}
}

func TestController_RewindsTracks(t *testing.T) {
	t.Parallel()

	track, err := transform.NewTrack([]transform.Keyframe{
		{Frame: 0, Transform: transform.Transform{Active: true, Vol: 0}},
		{Frame: 1000, Transform: transform.Transform{Active: true, Vol: 1}},
	})
	if err != nil {
		t.Fatalf("NewTrack() error = %v", err)
	}

	r, _ := newRampReader(t, 10000, 0)
	c := stream.NewController([]*stream.Reader{r}, []*transform.Track{track})

	c.Begin(500)
	waitReady(t, c)

	if got := track.At(500).Vol; got != 0.5 {
		t.Errorf("At(500).Vol after rewind = %v, want 0.5", got)
	}
}

func TestReader_StartOffset(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 10000, 0.5)
	r, err := stream.NewReader(src, 100, ringBlocks, blocksize, idleSleep)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })

	c := stream.NewController([]*stream.Reader{r}, nil)
	c.Begin(0)
	waitReady(t, c)

	block := make([]float32, blocksize)

	// Frames 0..63 precede the source's start offset.
	pullBlock(t, r, block)
	for i, v := range block {
		if v != 0 {
			t.Fatalf("sample %d before start = %v, want 0", i, v)
		}
	}

	// Frames 64..127 straddle the offset at frame 100.
	pullBlock(t, r, block)
	for i, v := range block {
		want := float32(0)
		if i >= 100-blocksize {
			want = 0.5
		}
		if v != want {
			t.Fatalf("straddling block sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestReader_SeekIntoOffsetAudio(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 10000, 100)
	c := stream.NewController([]*stream.Reader{r}, nil)

	// Scene frame 164 is source frame 64.
	c.Begin(164)
	waitReady(t, c)

	block := make([]float32, blocksize)
	pullBlock(t, r, block)
	if block[0] != 64 {
		t.Errorf("first sample at scene frame 164 = %v, want 64", block[0])
	}
}

func TestReader_EndOfStreamUnderruns(t *testing.T) {
	t.Parallel()

	// 200 frames yield three full blocks and one padded block.
	r, _ := newRampReader(t, 200, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	c.Begin(0)
	waitReady(t, c)

	block := make([]float32, blocksize)
	for b := 0; b < 4; b++ {
		pullBlock(t, r, block)
	}
	for i := 8; i < blocksize; i++ {
		if block[i] != 0 {
			t.Fatalf("final block sample %d = %v, want padding zero", i, block[i])
		}
	}

	for i := 0; i < 5; i++ {
		block[0] = 42
		if err := r.Pull(block); !errors.Is(err, stream.ErrEmptyBuffer) {
			t.Fatalf("Pull() past end error = %v, want ErrEmptyBuffer", err)
		}
		if block[0] != 0 {
			t.Error("Pull() past end left the buffer unzeroed")
		}
	}
}

func TestReader_SeekBeyondDuration(t *testing.T) {
	t.Parallel()

	r, _ := newRampReader(t, 1000, 0)
	c := stream.NewController([]*stream.Reader{r}, nil)

	c.Begin(1_000_000)
	waitReady(t, c)

	block := make([]float32, blocksize)
	for i := 0; i < 3; i++ {
		if err := r.Pull(block); !errors.Is(err, stream.ErrEmptyBuffer) {
			t.Fatalf("Pull() beyond duration error = %v, want ErrEmptyBuffer", err)
		}
	}
}

func TestReader_StickyErrorUntilNextSeek(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad sector")
	src := audiotest.NewRampSource(44100, 1, 10000)
	src.FailReads(boom)

	r, err := stream.NewReader(src, 0, ringBlocks, blocksize, idleSleep)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })

	c := stream.NewController([]*stream.Reader{r}, nil)
	c.Begin(0)
	waitReady(t, c)

	block := make([]float32, blocksize)
	for i := 0; i < 3; i++ {
		block[0] = 42
		if err := r.Pull(block); !errors.Is(err, boom) {
			t.Fatalf("Pull() after decode failure error = %v, want %v", err, boom)
		}
		if block[0] != 0 {
			t.Error("Pull() after decode failure left the buffer unzeroed")
		}
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("Err() = %v, want %v", r.Err(), boom)
	}

	// A fresh seek clears the failure and decoding resumes.
	src.FailReads(nil)
	c.Begin(128)
	waitReady(t, c)

	pullBlock(t, r, block)
	if block[0] != 128 {
		t.Errorf("first sample after recovery seek = %v, want 128", block[0])
	}
	if r.Err() != nil {
		t.Errorf("Err() after recovery = %v, want nil", r.Err())
	}
}

func TestReader_SeekFailureSurfaces(t *testing.T) {
	t.Parallel()

	boom := errors.New("unseekable")
	src := audiotest.NewRampSource(44100, 1, 10000)
	src.FailSeeks(boom)

	r, err := stream.NewReader(src, 0, ringBlocks, blocksize, idleSleep)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })

	c := stream.NewController([]*stream.Reader{r}, nil)
	c.Begin(0)
	waitReady(t, c)

	block := make([]float32, blocksize)
	if err := r.Pull(block); !errors.Is(err, boom) {
		t.Errorf("Pull() after seek failure error = %v, want %v", err, boom)
	}
}

func TestController_NoReaders(t *testing.T) {
	t.Parallel()

	c := stream.NewController(nil, nil)
	if !c.Seek(0) {
		t.Error("Seek() with no readers = false, want true")
	}
	if c.CurrentState() != stream.Ready {
		t.Errorf("CurrentState() = %v, want Ready", c.CurrentState())
	}
}

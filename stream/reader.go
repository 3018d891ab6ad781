// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/ik5/audscene/audio"
	"github.com/ik5/audscene/lasterr"
	"github.com/ik5/audscene/ring"
)

// Reader drives one file source.  It owns a decode goroutine that fills
// a ring buffer with fixed-size mono blocks ahead of the playback
// cursor, and repositions the decode cursor when a seek is requested.
//
// The goroutine is the ring's only producer; the realtime pull is its
// only consumer.  Seek requests travel over two atomics written by the
// Controller, frame first and sequence number second, so the latest
// request always wins and a superseded one is abandoned before its
// completion is published.
type Reader struct {
	src   audio.Source
	buf   *ring.Buffer
	start uint64
	sleep time.Duration

	reqSeq   atomic.Uint64
	reqFrame atomic.Uint64
	doneSeq  atomic.Uint64

	err  lasterr.Reporter
	stop chan struct{}
	done chan struct{}
}

// NewReader starts the decode goroutine for src, which must be a mono
// stream at the scene sample rate.  start is the scene-timeline frame
// at which the source begins; blocks before it are synthesized silence.
// The goroutine waits sleep between attempts while the ring is full.
func NewReader(src audio.Source, start uint64, blocks, blocksize int, sleep time.Duration) (*Reader, error) {
	buf, err := ring.New(blocks, blocksize)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	r := &Reader{
		src:   src,
		buf:   buf,
		start: start,
		sleep: sleep,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go r.loop()
	return r, nil
}

// request records a seek toward frame, stamped with seq.  The frame is
// stored before the sequence number so that once the loop observes a
// new seq, the frame it reads is at least as recent.
func (r *Reader) request(seq, frame uint64) {
	r.reqFrame.Store(frame)
	r.reqSeq.Store(seq)
}

// seekDone reports whether the seek stamped seq has been serviced: the
// ring is primed, either full or at end of stream, for that target.
func (r *Reader) seekDone(seq uint64) bool {
	return r.doneSeq.Load() == seq
}

// Pull pops one block into dst without blocking.  dst is zero-filled
// when no block is available; the returned error is then the sticky
// decode failure if one occurred, or ErrEmptyBuffer for a plain
// underrun.  Realtime-safe.
func (r *Reader) Pull(dst []float32) error {
	if err := r.err.Last(); err != nil {
		zero(dst)
		return err
	}
	if !r.buf.TryPop(dst) {
		zero(dst)
		return ErrEmptyBuffer
	}
	return nil
}

// Err returns the sticky decode failure, or nil.  The slot is cleared
// when the next seek request is serviced.
func (r *Reader) Err() error {
	return r.err.Last()
}

// Close stops the decode goroutine and closes the source.
func (r *Reader) Close() error {
	close(r.stop)
	<-r.done
	return r.src.Close()
}

func (r *Reader) loop() {
	defer close(r.done)

	block := make([]float32, r.buf.Blocksize())
	var (
		seq uint64 // request currently serviced, 0 = none yet
		pos uint64 // next scene frame to produce
		eof bool
	)

	for {
		select {
		case <-r.stop:
			return
		default:
		}

		if latest := r.reqSeq.Load(); latest != seq {
			seq = latest
			pos = r.reqFrame.Load()
			eof = r.reposition(pos)
			for !eof && !r.buf.Full() && r.reqSeq.Load() == seq {
				eof = r.produce(block, &pos)
			}
			if r.reqSeq.Load() == seq {
				r.doneSeq.Store(seq)
			}
			continue
		}

		if seq == 0 || eof || r.buf.Full() {
			r.idle()
			continue
		}
		eof = r.produce(block, &pos)
	}
}

// reposition drains stale blocks and seeks the source so that the next
// produce starts at the given scene frame.  Reports true when there is
// nothing left to deliver, which on a failed seek leaves the sticky
// error set for subsequent pulls.
func (r *Reader) reposition(frame uint64) bool {
	r.buf.Drain()
	r.err.Clear()

	var srcFrame uint64
	if frame > r.start {
		srcFrame = frame - r.start
	}
	if err := r.src.SeekFrame(srcFrame); err != nil {
		r.err.Record(fmt.Errorf("seek to frame %d: %w", srcFrame, err))
		return true
	}
	return false
}

// produce fills one block starting at *pos and pushes it.  Frames
// before the source's start offset are silence; a block straddling the
// offset is part silence, part decoded audio.  Reports true when the
// stream is finished; a block lying entirely past the end is not
// pushed, so the ring simply stops refilling.
func (r *Reader) produce(block []float32, pos *uint64) bool {
	size := uint64(len(block))
	p := *pos
	*pos = p + size

	var lead uint64
	if p < r.start {
		lead = r.start - p
		if lead > size {
			lead = size
		}
	}
	zero(block[:lead])

	filled := lead
	for filled < size {
		n, err := r.src.ReadSamples(block[filled:size])
		filled += uint64(n)
		if err == io.EOF || (n == 0 && err == nil) {
			if filled == 0 {
				return true
			}
			zero(block[filled:size])
			r.buf.TryPush(block)
			return true
		}
		if err != nil {
			r.err.Record(fmt.Errorf("decode at frame %d: %w", p, err))
			return true
		}
	}
	r.buf.TryPush(block)
	return false
}

func (r *Reader) idle() {
	select {
	case <-r.stop:
	case <-time.After(r.sleep):
	}
}

func zero(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}

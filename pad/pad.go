// Package pad implements the mixer's per-input state: the raw buffer
// ingestion queue, the Queue Filler algorithm that promotes queued
// buffers to ready-to-composite ones, sink-side clipping, and the
// controllable per-pad attributes (zorder, xpos, ypos, alpha).
package pad

import (
	"errors"
	"sync"

	"github.com/ausocean/videomixer/videoinfo"
)

// ErrFlushing is returned by Push/Pop when the pad has been flushed
// and is not accepting or yielding buffers.
var ErrFlushing = errors.New("pad: flushing")

// ErrEOS is returned by Pop once the pad has seen end-of-stream and its
// single buffer slot has been drained.
var ErrEOS = errors.New("pad: eos")

// Pad is the raw ingestion queue for one mixer input: a single-slot
// blocking handoff between the upstream producer and the mixer's Queue
// Filler, modelled the same way device.ManualInput pairs an io.Pipe
// reader/writer so a producer's Write blocks until the previous frame
// has been consumed. Here the slot holds one decoded Buffer instead of
// raw bytes, since the mixer operates on whole frames.
type Pad struct {
	mu        sync.Mutex
	cond      *sync.Cond
	buf       *videoinfo.Buffer
	eos       bool
	flushing  bool
	segment   videoinfo.Segment
	hasSegment bool
}

// New returns a Pad with an empty slot and the default segment.
func New() *Pad {
	p := &Pad{segment: videoinfo.NewSegment()}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Push places buf into the pad's single slot, blocking until the slot
// is empty (i.e. the previous buffer has been popped) or the pad is
// flushed. This is the suspension point spec.md §5 names: "pushing a
// buffer onto an already-full pad queue...may block the calling
// goroutine until the Aggregate Loop consumes the pending buffer."
func (p *Pad) Push(buf videoinfo.Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.buf != nil && !p.flushing {
		p.cond.Wait()
	}
	if p.flushing {
		return ErrFlushing
	}
	p.buf = &buf
	p.cond.Broadcast()
	return nil
}

// Peek returns the pending buffer without removing it, and whether one
// is present. The Queue Filler does not use it; FillOne takes buffers
// with Pop.
func (p *Pad) Peek() (videoinfo.Buffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf == nil {
		return videoinfo.Buffer{}, false
	}
	return *p.buf, true
}

// Pop removes and returns the pending buffer, waking any blocked
// Push. Returns ErrEOS if the slot is empty and EOS has been marked,
// or ok=false if the slot is simply empty (need-more-data).
func (p *Pad) Pop() (buf videoinfo.Buffer, ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf == nil {
		if p.eos {
			return videoinfo.Buffer{}, false, ErrEOS
		}
		return videoinfo.Buffer{}, false, nil
	}
	buf = *p.buf
	p.buf = nil
	p.cond.Broadcast()
	return buf, true, nil
}

// SetEOS marks the pad as having seen end-of-stream. Any buffer already
// queued is still deliverable via Pop; only once the slot drains does
// Pop start returning ErrEOS.
func (p *Pad) SetEOS() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eos = true
	p.cond.Broadcast()
}

// EOS reports whether end-of-stream has been marked on this pad.
func (p *Pad) EOS() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eos
}

// Flush empties the slot, releases any blocked Push, and clears EOS
// and segment state, mirroring the FLUSH_STOP handling in
// gst_basemixer_sink_event: buffer, times and position all reset.
func (p *Pad) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = nil
	p.eos = false
	p.segment = videoinfo.NewSegment()
	p.hasSegment = false
	p.flushing = false
	p.cond.Broadcast()
}

// BeginFlush puts the pad into flushing mode, unblocking any pending
// Push with ErrFlushing until EndFlush or Flush clears the flag.
func (p *Pad) BeginFlush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushing = true
	p.cond.Broadcast()
}

// EndFlush clears flushing mode, allowing Push to block normally again.
func (p *Pad) EndFlush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushing = false
}

// SetSegment installs the segment a subsequent CAPS/SEGMENT event
// announced for this pad's buffers.
func (p *Pad) SetSegment(s videoinfo.Segment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.segment = s
	p.hasSegment = true
}

// Segment returns the pad's current segment, defaulting to the identity
// segment if none has been announced yet.
func (p *Pad) Segment() videoinfo.Segment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.segment
}

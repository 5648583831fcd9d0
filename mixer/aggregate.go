package mixer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/videomixer/compositor"
	"github.com/ausocean/videomixer/pad"
	"github.com/ausocean/videomixer/videoinfo"
)

// ErrNotNegotiated is returned by Aggregate when no pad has yet
// negotiated a format, mirroring GST_FLOW_NOT_NEGOTIATED.
var ErrNotNegotiated = errors.New("mixer: not negotiated")

// ErrNeedMoreData is returned by Aggregate when at least one
// contributing pad's raw queue is empty; the caller should retry once
// more data has been pushed.
var ErrNeedMoreData = errors.New("mixer: need more data")

// ErrEOS is returned by Aggregate once every pad has reached
// end-of-stream and there is nothing left to produce.
var ErrEOS = errors.New("mixer: eos")

// ErrMissingTimestamp is returned by Aggregate when a pad's raw queue
// yielded a buffer with no start timestamp; the Queue Filler drops that
// buffer rather than guessing a position for it (spec.md §4.2 step 2,
// §7 "Missing timestamp").
var ErrMissingTimestamp = errors.New("mixer: buffer missing start timestamp")

// ErrFrameDropped is returned by Aggregate when QoS determined this
// tick's output is too late to bother producing (spec.md §4.3, §8
// Scenario 4): compositing is skipped but the mixer's position still
// advances, the same as if the frame had been produced.
var ErrFrameDropped = errors.New("mixer: frame dropped by QoS")

// Aggregate runs one tick of the Aggregate Loop (spec.md §4.3): it
// computes the next output interval, fills each pad's queue, composites
// the frame, and advances the mixer's position. Mirrors
// gst_basemixer_aggregate.
func (m *Mixer) Aggregate() (*videoinfo.Buffer, error) {
	m.lock.Lock()
	if !m.currentCapsOK {
		m.lock.Unlock()
		return nil, ErrNotNegotiated
	}

	outStart := m.segment.Position
	frameDur := m.outInfo.FrameDuration()
	outEnd := outStart + frameDur
	if m.segment.Stop != videoinfo.Undefined && outEnd > m.segment.Stop {
		outEnd = m.segment.Stop
	}

	pads := make([]*pad.Pad, len(m.inputs))
	states := make([]*pad.State, len(m.inputs))
	for i, in := range m.inputs {
		pads[i] = in.pad
		states[i] = in.state
	}
	m.lock.Unlock()

	switch pad.FillAll(pads, states, outStart) {
	case pad.StatusNeedMoreData:
		return nil, ErrNeedMoreData
	case pad.StatusEOS:
		return nil, ErrEOS
	case pad.StatusError:
		return nil, ErrMissingTimestamp
	}

	late, jitter := m.qos.DoQoS(outStart)
	if late {
		m.logf(logging.Warning, "mixer: dropping frame at %s, late by %s", outStart, jitter)
		m.qos.RecordDropped()
		m.postQoSMessage(outStart, jitter)
		m.advancePosition(outEnd)
		return nil, ErrFrameDropped
	}

	out, err := m.blend(outStart, outEnd)
	if err != nil {
		return nil, fmt.Errorf("mixer: blend: %w", err)
	}

	m.advancePosition(outEnd)
	m.qos.RecordProcessed()
	return out, nil
}

// advancePosition moves the segment position to outEnd, increments the
// frame counter, and clears any pad state fully consumed by this tick's
// interval, regardless of whether a frame was actually composited
// (spec.md §4.3: QoS-dropped ticks still advance position).
func (m *Mixer) advancePosition(outEnd time.Duration) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.segment.Position = outEnd
	m.nframes++
	for _, in := range m.inputs {
		if in.state.EndTime != videoinfo.Undefined && in.state.EndTime <= outEnd {
			in.state.Reset()
		}
	}
}

// postQoSMessage records a dropped-frame QoS message for the host
// framework to collect via TakePendingQoSMessage, mirroring the
// GST_MESSAGE_QOS posted from gst_basemixer_aggregate's late branch.
func (m *Mixer) postQoSMessage(outStart, jitter time.Duration) {
	processed, dropped := m.qos.Counters()
	proportion := m.qos.Proportion()
	m.lock.Lock()
	defer m.lock.Unlock()
	m.pendingQoS = &QoSMessage{
		Timestamp:  outStart,
		Jitter:     jitter,
		Proportion: proportion,
		Processed:  processed,
		Dropped:    dropped,
	}
}

// blend converts each contributing pad's buffer to the output format
// and composites them, mirroring gst_basemixer_blend_buffers.
func (m *Mixer) blend(outStart, outEnd time.Duration) (*videoinfo.Buffer, error) {
	m.lock.Lock()
	out := &videoinfo.Buffer{
		Timestamp: outStart,
		Duration:  outEnd - outStart,
		Info:      m.outInfo,
		Planes:    allocPlanes(m.outInfo),
	}
	background := m.attrs.Background

	type sortable struct {
		zorder int
		in     compositor.Input
	}
	var contributions []sortable
	for _, in := range m.inputs {
		if in.state.Buffer == nil || in.state.Convert == nil {
			continue
		}
		converted, err := in.state.Convert.Convert(*in.state.Buffer)
		if err != nil {
			m.lock.Unlock()
			return nil, fmt.Errorf("converting pad buffer: %w", err)
		}
		contributions = append(contributions, sortable{
			zorder: in.props.ZOrder,
			in: compositor.Input{
				Buffer: converted,
				XPos:   in.props.XPos,
				YPos:   in.props.YPos,
				Alpha:  in.props.Alpha,
			},
		})
	}
	m.lock.Unlock()

	sort.Slice(contributions, func(i, j int) bool { return contributions[i].zorder < contributions[j].zorder })
	inputs := make([]compositor.Input, len(contributions))
	for i, c := range contributions {
		inputs[i] = c.in
	}

	if err := compositor.Composite(out, background, inputs); err != nil {
		return nil, err
	}
	return out, nil
}

// allocPlanes returns freshly zeroed planes for vi, sized per its
// format's plane layout.
func allocPlanes(vi videoinfo.VideoInfo) [][]byte {
	w, h := vi.Width, vi.Height
	switch vi.Format.Planes() {
	case 1:
		bpp := vi.PlaneBytesPerPixel()
		return [][]byte{make([]byte, w*h*bpp)}
	case 2:
		cw, ch := (w+1)/2, (h+1)/2
		return [][]byte{make([]byte, w*h), make([]byte, 2*cw*ch)}
	case 3:
		cw, ch := chromaDims(vi.Format, w, h)
		return [][]byte{make([]byte, w*h), make([]byte, cw*ch), make([]byte, cw*ch)}
	default:
		return nil
	}
}

func chromaDims(f videoinfo.Format, w, h int) (int, int) {
	switch f {
	case videoinfo.I420, videoinfo.YV12:
		return (w + 1) / 2, (h + 1) / 2
	case videoinfo.Y42B:
		return (w + 1) / 2, h
	case videoinfo.Y41B:
		return (w + 3) / 4, h
	default: // Y444
		return w, h
	}
}

package mixer

import (
	"errors"
	"time"

	"github.com/ausocean/videomixer/videoinfo"
)

// ErrNegativeRate is returned by Seek for rate <= 0: reverse playback
// is a declared non-goal (spec.md §8), and the original rejects it
// outright rather than attempting a partial implementation.
var ErrNegativeRate = errors.New("mixer: rate <= 0 is not supported")

// Seek repositions the mixer's segment, mirroring the GST_EVENT_SEEK
// handling in gst_basemixer_src_event. When flush is set (a FLUSH seek,
// spec.md §4.5/§8 Scenario 6) every pad's current buffer and times are
// cleared outright, the same as Flush, since the new position makes
// them meaningless. Without flush, it is a rate-only rescale: buffers
// already promoted for compositing keep their relative place in the
// new timeline, rescaled by the ratio between the new and old rate,
// instead of being dropped and re-derived.
func (m *Mixer) Seek(start time.Duration, rate float64, flush bool) error {
	if rate <= 0 {
		return ErrNegativeRate
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	oldRate := m.segment.Rate
	if oldRate <= 0 {
		oldRate = 1
	}
	ratio := oldRate / rate

	m.segment.Start = start
	m.segment.Position = start
	m.segment.Rate = rate

	for _, in := range m.inputs {
		if flush {
			in.pad.Flush()
			in.state.Reset()
			continue
		}
		if in.state.Buffer == nil {
			continue
		}
		in.state.StartTime = scaleTime(in.state.StartTime, ratio)
		if in.state.EndTime != videoinfo.Undefined {
			in.state.EndTime = scaleTime(in.state.EndTime, ratio)
		}
	}

	m.tsOffset = start
	m.nframes = 0
	m.qos.Reset()
	return nil
}

func scaleTime(t time.Duration, ratio float64) time.Duration {
	if t == videoinfo.Undefined {
		return t
	}
	return time.Duration(float64(t) * ratio)
}

// Flush clears every pad's queued/promoted buffers and resets position
// bookkeeping, mirroring the FLUSH_STOP branch of
// gst_basemixer_sink_event.
func (m *Mixer) Flush() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, in := range m.inputs {
		in.pad.Flush()
		in.state.Reset()
	}
	m.segment.Position = m.segment.Start
	m.tsOffset = m.segment.Start
	m.nframes = 0
	m.pendingTags = false
}

// HandleQoS records a QoS event reported from downstream, mirroring
// gst_basemixer_src_event's GST_EVENT_QOS branch.
func (m *Mixer) HandleQoS(timestamp time.Duration, diff time.Duration, proportion float64) {
	m.lock.Lock()
	frameDur := m.outInfo.FrameDuration()
	m.lock.Unlock()
	m.qos.Update(timestamp, diff, frameDur, proportion)
}

// PeerInfo is one sink pad's contribution to a Duration/Latency query,
// supplied by the host framework (which owns pad iteration per
// spec.md §6); the mixer core only owns the reduction algorithm, per
// SPEC_FULL.md §3.3.
type PeerInfo struct {
	Duration  time.Duration
	HasDuration bool
	Live      bool
	MinLatency time.Duration
	MaxLatency time.Duration
	HasMaxLatency bool
}

// Duration returns the longest duration reported by any peer, or
// ok=false if no peer reported one, mirroring
// gst_basemixer_query_duration's max-of-all reduction (the mixer's
// output can't be shorter than its longest input).
func Duration(peers []PeerInfo) (time.Duration, bool) {
	var max time.Duration
	found := false
	for _, p := range peers {
		if !p.HasDuration {
			continue
		}
		if !found || p.Duration > max {
			max = p.Duration
			found = true
		}
	}
	return max, found
}

// Latency returns whether the mixer is live (any peer is live) and the
// max-of-mins / min-of-maxes latency bounds, mirroring
// gst_basemixer_query_latency.
func Latency(peers []PeerInfo) (live bool, min, max time.Duration) {
	maxSet := false
	for _, p := range peers {
		if p.Live {
			live = true
		}
		if p.MinLatency > min {
			min = p.MinLatency
		}
		if p.HasMaxLatency && (!maxSet || p.MaxLatency < max) {
			max = p.MaxLatency
			maxSet = true
		}
	}
	if !maxSet {
		max = videoinfo.Undefined
	}
	return live, min, max
}

// QoSMessage reports one dropped-frame QoS event for the host framework
// to post downstream, mirroring GST_MESSAGE_QOS as emitted from
// gst_basemixer_aggregate's do_qos late branch.
type QoSMessage struct {
	Timestamp  time.Duration
	Jitter     time.Duration
	Proportion float64
	Processed  uint64
	Dropped    uint64
}

// TakePendingQoSMessage reports and clears the most recent dropped-frame
// QoS message, for the host framework to call once per tick after
// Aggregate, the same polling shape as TakePendingTags.
func (m *Mixer) TakePendingQoSMessage() (QoSMessage, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.pendingQoS == nil {
		return QoSMessage{}, false
	}
	msg := *m.pendingQoS
	m.pendingQoS = nil
	return msg, true
}

// SendTags marks that the mixer should emit updated stream metadata on
// the next Aggregate tick, mirroring pending_tags in the original.
func (m *Mixer) SendTags() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.pendingTags = true
}

// TakePendingTags reports and clears whether tags are due to be sent,
// for the host framework to call once per tick after Aggregate.
func (m *Mixer) TakePendingTags() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	pending := m.pendingTags
	m.pendingTags = false
	return pending
}

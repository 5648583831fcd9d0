package videoinfo

import "time"

// Segment describes the playback segment a pad's buffers are timestamped
// against, mirroring GstSegment's running-time/stream-time conversion
// contract (spec.md §3 "segment", §6).
type Segment struct {
	Start    time.Duration
	Stop     time.Duration // Undefined (negative) means unbounded.
	Position time.Duration
	Rate     float64
}

// Undefined is the sentinel used for an unset Stop/time value, matching
// GST_CLOCK_TIME_NONE's role in the original.
const Undefined time.Duration = -1

// NewSegment returns the default segment: start 0, stop Undefined,
// rate 1.0, matching gst_segment_init(GST_FORMAT_TIME).
func NewSegment() Segment {
	return Segment{Start: 0, Stop: Undefined, Position: 0, Rate: 1}
}

// ToRunningTime converts a position in the segment's own timeline into
// running time: (position - start) / rate, or Undefined if position lies
// before start. A position past a bounded Stop is clamped to Stop, and a
// non-positive rate is treated as 1. Mirrors
// gst_segment_to_running_time.
func (s Segment) ToRunningTime(position time.Duration) time.Duration {
	if position == Undefined {
		return Undefined
	}
	if position < s.Start {
		return Undefined
	}
	if s.Stop != Undefined && position > s.Stop {
		position = s.Stop
	}
	rate := s.Rate
	if rate <= 0 {
		rate = 1
	}
	return time.Duration(float64(position-s.Start) / rate)
}

// ToStreamTime converts a position into stream time: position - start,
// unaffected by rate (a seek's rate only scales running time). Mirrors
// gst_segment_to_stream_time.
func (s Segment) ToStreamTime(position time.Duration) time.Duration {
	if position == Undefined || position < s.Start {
		return Undefined
	}
	return position - s.Start
}

// Clip clips [start, end) against the segment's [Start, Stop) bounds,
// returning the clipped interval and whether any part of it survived.
// end may be Undefined, meaning open-ended; an open-ended interval that
// starts at or after Stop is dropped entirely. Mirrors the clipping half
// of gst_segment_clip as used by gst_basemixer_sink_clip /
// gst_basemixer_fill_queues.
func (s Segment) Clip(start, end time.Duration) (cStart, cEnd time.Duration, ok bool) {
	if end != Undefined && end < s.Start {
		return 0, 0, false
	}
	if s.Stop != Undefined && start >= s.Stop {
		return 0, 0, false
	}
	cStart, cEnd = start, end
	if cStart < s.Start {
		cStart = s.Start
	}
	if s.Stop != Undefined && (cEnd == Undefined || cEnd > s.Stop) {
		cEnd = s.Stop
	}
	return cStart, cEnd, true
}

package videoinfo

import "time"

// Buffer is one frame of pixel data moving through the mixer: opaque
// bytes plus the timestamp/duration metadata the Queue Filler and
// Aggregate Loop reason about (spec.md §6 "Buffer").
type Buffer struct {
	// Timestamp is the buffer's presentation time in its pad's segment
	// timeline, or Undefined if the upstream never set one.
	Timestamp time.Duration
	// Duration is the buffer's nominal playback duration, or Undefined
	// if unknown (the Queue Filler then derives one from the negotiated
	// framerate, see pad.FillOne).
	Duration time.Duration
	// Info is the VideoInfo the Planes were produced against. A pad may
	// see its buffers' Info change mid-stream if upstream renegotiates.
	Info VideoInfo
	// Planes holds one []byte per plane, laid out per Info.Format.
	Planes [][]byte
}

// HasTimestamp reports whether the buffer carries a defined timestamp.
func (b Buffer) HasTimestamp() bool { return b.Timestamp != Undefined }

// HasDuration reports whether the buffer carries a defined duration.
func (b Buffer) HasDuration() bool { return b.Duration != Undefined }

// End returns the buffer's end time (Timestamp + Duration), or Undefined
// if either is undefined.
func (b Buffer) End() time.Duration {
	if !b.HasTimestamp() || !b.HasDuration() {
		return Undefined
	}
	return b.Timestamp + b.Duration
}

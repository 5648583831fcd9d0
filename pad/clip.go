package pad

import "github.com/ausocean/videomixer/videoinfo"

// Clip implements the Sink-side Clipping operation (spec.md §4.6): a
// buffer is clipped against its pad's segment, and its duration derived
// from the pad's negotiated framerate when the buffer didn't carry one,
// before it is ever handed to Push. A buffer that clips away entirely,
// or whose end lies at or before the segment's current position, is
// rejected outright, matching gst_basemixer_sink_clip.
func Clip(buf videoinfo.Buffer, seg videoinfo.Segment) (videoinfo.Buffer, bool) {
	if !buf.HasTimestamp() {
		return buf, true
	}

	duration := buf.Duration
	if duration == videoinfo.Undefined && buf.Info.FPSNum > 0 {
		duration = buf.Info.FrameDuration()
	}

	end := videoinfo.Undefined
	if duration != videoinfo.Undefined {
		end = buf.Timestamp + duration
	}

	if end != videoinfo.Undefined && end <= seg.Position {
		return videoinfo.Buffer{}, false
	}

	cs, ce, ok := seg.Clip(buf.Timestamp, end)
	if !ok {
		return videoinfo.Buffer{}, false
	}

	out := buf
	out.Timestamp = cs
	out.Duration = videoinfo.Undefined
	if ce != videoinfo.Undefined {
		out.Duration = ce - cs
	}
	return out, true
}

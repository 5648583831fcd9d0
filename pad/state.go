package pad

import (
	"time"

	"github.com/ausocean/videomixer/convert"
	"github.com/ausocean/videomixer/videoinfo"
)

// State is one input's Input Pad State (spec.md §3): the negotiated
// format, the promoted buffer ready for compositing, and the converter
// wired to reshape it into the mixer's output format.
type State struct {
	// Info is the format this pad's upstream has negotiated, or the
	// zero VideoInfo before CAPS has been seen.
	Info videoinfo.VideoInfo

	// Queued holds a buffer popped from the raw ingestion queue that
	// hasn't been promoted to Buffer yet, whether because its end time
	// is still unresolved (no explicit Duration, and no framerate to
	// derive one from — the Queue Filler waits for the next buffer's
	// start time to define it) or because it simply isn't its turn yet.
	// At most one buffer is queued per pad at a time (spec.md §3).
	Queued *videoinfo.Buffer

	// QueuedStart is Queued's clipped running-time start, valid only
	// while Queued is non-nil.
	QueuedStart time.Duration

	// QueuedEnd is Queued's clipped running-time end, or
	// videoinfo.Undefined if it still awaits a following buffer to
	// resolve it.
	QueuedEnd time.Duration

	// Buffer is the promoted buffer ready to be composited into the
	// current output frame, or nil if this pad contributes nothing this
	// tick (e.g. still waiting, or past end-of-stream).
	Buffer *videoinfo.Buffer

	// BufferInfo is the VideoInfo Buffer was produced against, which is
	// not always Info if upstream renegotiated between promotion and
	// consumption.
	BufferInfo videoinfo.VideoInfo

	// StartTime and EndTime are Buffer's clipped running-time interval,
	// used by the Aggregate Loop to decide whether this pad's buffer
	// contributes to the current output frame.
	StartTime time.Duration
	EndTime   time.Duration

	// Convert is this pad's converter from BufferInfo to the mixer's
	// negotiated output format, or nil if none is needed yet.
	Convert convert.Converter

	// ConversionInfo is the output VideoInfo Convert currently targets;
	// handed back to the Negotiator on each renegotiation to decide
	// whether Convert must be rebuilt.
	ConversionInfo videoinfo.VideoInfo

	// NeedConversionUpdate is cleared whenever renegotiation rebuilds
	// Convert. No code path sets it: renegotiation rebuilds Convert
	// directly instead of deferring the rebuild to compositing.
	NeedConversionUpdate bool
}

// Reset clears a pad's queued and promoted-buffer state, called once the
// promoted buffer's interval has been consumed, on flush or flushing
// seek, and on mixer reset. It does not touch Info or Convert, mirroring how the
// original's gst_basemixer_reset resets buffer/times but only resets
// info/convert as part of the larger READY-state reset.
func (s *State) Reset() {
	s.Queued = nil
	s.QueuedStart = videoinfo.Undefined
	s.QueuedEnd = videoinfo.Undefined
	s.Buffer = nil
	s.StartTime = videoinfo.Undefined
	s.EndTime = videoinfo.Undefined
}

// FullReset additionally clears Info and tears down Convert, mirroring
// the PAUSED_TO_READY path in gst_basemixer_change_state.
func (s *State) FullReset() {
	s.Reset()
	s.Info = videoinfo.UnknownInfo
	if s.Convert != nil {
		s.Convert.Close()
		s.Convert = nil
	}
	s.ConversionInfo = videoinfo.UnknownInfo
	s.NeedConversionUpdate = false
}

package pad

import (
	"time"

	"github.com/ausocean/videomixer/videoinfo"
)

// FillResult reports what FillOne learned about a single pad this tick.
type FillResult int

const (
	// Ready means the pad now holds a State.Buffer usable for this
	// output interval. A pad at EOS with nothing to promote reports EOS
	// instead.
	Ready FillResult = iota
	// NeedMoreData means the pad's raw queue is empty and not at EOS:
	// the Aggregate Loop must wait rather than produce this tick.
	NeedMoreData
	// EOS means the pad's raw queue is empty and marked EOS.
	EOS
	// Error means a raw buffer popped off the queue carried no start
	// timestamp and could not be placed on the timeline; it is dropped
	// rather than promoted (spec.md §4.2 step 2, §7 "Missing timestamp").
	Error
)

// clipRaw clips raw against seg and converts the surviving interval to
// running time, deriving raw's duration from its negotiated framerate
// when it wasn't set explicitly. end is videoinfo.Undefined when the
// buffer's duration is unknown even after that, meaning a later buffer
// must define where it stops.
func clipRaw(seg videoinfo.Segment, raw videoinfo.Buffer) (start, end time.Duration, ok bool) {
	duration := raw.Duration
	if duration == videoinfo.Undefined && raw.Info.FPSNum > 0 {
		duration = raw.Info.FrameDuration()
	}
	rawEnd := videoinfo.Undefined
	if duration != videoinfo.Undefined {
		rawEnd = raw.Timestamp + duration
	}
	cs, ce, clipped := seg.Clip(raw.Timestamp, rawEnd)
	if !clipped {
		return 0, 0, false
	}
	start = seg.ToRunningTime(cs)
	end = videoinfo.Undefined
	if ce != videoinfo.Undefined {
		end = seg.ToRunningTime(ce)
	}
	return start, end, true
}

// promote finishes a buffer's placement into st.Buffer given its
// resolved running-time interval [start, end). end may be Undefined,
// meaning the buffer runs open-ended (only possible at EOS, once no
// further buffer can arrive to bound it).
func promote(st *State, src videoinfo.Buffer, start, end time.Duration) FillResult {
	buf := src
	buf.Timestamp = start
	if end == videoinfo.Undefined {
		buf.Duration = videoinfo.Undefined
	} else {
		buf.Duration = end - start
	}
	st.Buffer = &buf
	st.BufferInfo = src.Info
	st.StartTime = start
	st.EndTime = end
	return Ready
}

// stashQueued holds raw as st's queued buffer with its clipped
// running-time interval [start, end). end may be Undefined, meaning
// this buffer's own duration couldn't be resolved and it awaits a
// following buffer to define it.
func stashQueued(st *State, raw videoinfo.Buffer, start, end time.Duration) {
	buf := raw
	st.Queued = &buf
	st.QueuedStart = start
	st.QueuedEnd = end
}

// FillOne runs the Queue Filler algorithm for a single pad against the
// mixer's current output interval [outStart, outEnd), promoting a
// buffer from p's raw queue into st.Buffer when one belongs in that
// interval, dropping ones that arrive too late ("from the past"), and
// leaving st.Buffer nil with Ready, NeedMoreData, EOS, or Error
// otherwise. Mirrors gst_basemixer_fill_queues's per-pad loop body.
//
// A buffer with no explicit duration and no negotiated framerate can't
// be placed on the timeline by itself (spec.md §3, §4.2 steps 3-5): it
// is stashed in st.Queued, end left Undefined, until the pad's next
// buffer arrives, whose start time then defines the queued buffer's
// end. At most one buffer is queued per pad at a time; once that
// buffer's interval is resolved, it simply waits its turn like any
// other queued buffer until outStart reaches it.
func FillOne(p *Pad, st *State, outStart time.Duration) FillResult {
	if st.Buffer != nil {
		return Ready
	}

	for {
		if st.Queued == nil {
			raw, ok, err := p.Pop()
			if err == ErrEOS {
				return EOS
			}
			if !ok {
				return NeedMoreData
			}
			if !raw.HasTimestamp() {
				return Error
			}

			seg := p.Segment()
			start, end, clipped := clipRaw(seg, raw)
			if !clipped {
				// Entirely outside the segment: drop and look at the
				// next buffer in the queue.
				continue
			}
			stashQueued(st, raw, start, end)
		}

		if st.QueuedEnd == videoinfo.Undefined {
			// The queued buffer's own duration is unknown; only the
			// next buffer's start time can resolve its end.
			raw, ok, err := p.Pop()
			if err == ErrEOS {
				// Nothing further will ever arrive to bound it: it
				// runs open-ended to end-of-stream.
				queued, qStart := *st.Queued, st.QueuedStart
				st.Queued = nil
				return promote(st, queued, qStart, videoinfo.Undefined)
			}
			if !ok {
				return NeedMoreData
			}
			if !raw.HasTimestamp() {
				return Error
			}

			seg := p.Segment()
			nextStart, nextEnd, clipped := clipRaw(seg, raw)
			if !clipped {
				// The arrival itself is outside the segment; drop it
				// and keep waiting on the queued buffer.
				continue
			}
			if nextStart <= st.QueuedStart {
				// The arrival is itself from the past relative to the
				// buffer already queued; drop it and keep waiting.
				continue
			}

			queued, qStart := *st.Queued, st.QueuedStart
			end := nextStart
			st.Queued = nil

			// The buffer that just arrived takes the queued slot in
			// turn, carrying whatever interval it resolved to itself.
			stashQueued(st, raw, nextStart, nextEnd)

			if end <= outStart {
				// The now-resolved buffer can never contribute to this
				// or any future interval; drop it and loop, leaving
				// the buffer just queued to be picked up next time.
				continue
			}
			return promote(st, queued, qStart, end)
		}

		// The queued buffer already has a fully resolved interval;
		// it's just a matter of whether its turn has come.
		queued, qStart, qEnd := *st.Queued, st.QueuedStart, st.QueuedEnd
		st.Queued = nil

		// "From the past": this buffer's whole interval ends at or
		// before the current output position, so it can never
		// contribute and is dropped, matching the original's
		// comparison of the clipped end time against agg->segment.position.
		if qEnd <= outStart {
			continue
		}

		return promote(st, queued, qStart, qEnd)
	}
}

// Status summarizes FillOne's outcome across every input pad for one
// Aggregate Loop tick, matching the tri-state return of
// gst_basemixer_fill_queues (GST_FLOW_OK / "need more data" / EOS),
// plus StatusError when a pad's buffer had no timestamp.
type Status int

const (
	StatusReady Status = iota
	StatusNeedMoreData
	StatusEOS
	StatusError
)

// FillAll runs FillOne for every (pad, state) pair and reduces the
// per-pad results to one Status: StatusError if any pad's buffer had no
// timestamp, else StatusNeedMoreData if any pad is still waiting on
// data, StatusEOS only if every pad has reached EOS, StatusReady
// otherwise (at least one pad contributed, or all contributing pads are
// ready even if some are at EOS).
func FillAll(pads []*Pad, states []*State, outStart time.Duration) Status {
	allEOS := true
	anyNeedMore := false
	anyError := false
	for i, p := range pads {
		switch FillOne(p, states[i], outStart) {
		case Error:
			anyError = true
			allEOS = false
		case NeedMoreData:
			anyNeedMore = true
			allEOS = false
		case Ready:
			if states[i].Buffer != nil {
				allEOS = false
			}
		case EOS:
			// contributes nothing this tick, already reflected in allEOS.
		}
	}
	if anyError {
		return StatusError
	}
	if anyNeedMore {
		return StatusNeedMoreData
	}
	if allEOS {
		return StatusEOS
	}
	return StatusReady
}

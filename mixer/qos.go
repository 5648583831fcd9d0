package mixer

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/videomixer/videoinfo"
)

const proportionWindow = 8

// qosState tracks the Aggregate Loop's quality-of-service bookkeeping:
// the earliest running time worth producing a frame for, a smoothed
// proportion reported in QoS messages, and processed/dropped counters.
// Mirrors GstBasemixer's QoS fields
// (proportion, earliest_time, etc.), guarded in the original by a
// dedicated object lock separate from the main pad-list lock.
type qosState struct {
	mu sync.Mutex

	proportion  float64
	earliest    time.Duration
	window      []float64
	processed   uint64
	dropped     uint64
}

func newQoSState() qosState {
	return qosState{proportion: 1.0, earliest: videoinfo.Undefined}
}

// Update records a new jitter sample (how late, in nanoseconds, the
// last frame was relative to the pipeline clock) and a raw proportion
// sample, smoothing proportion with a rolling mean via
// gonum.org/v1/gonum/stat.Mean instead of keeping only the single
// latest sample the original does — a SPEC_FULL.md domain-stack
// addition (§2) to damp single-frame jitter spikes.
//
// frameDur is the mixer's current output frame duration, needed for the
// earliest_time computation below.
func (q *qosState) Update(timestamp, diff, frameDur time.Duration, rawProportion float64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.window = append(q.window, rawProportion)
	if len(q.window) > proportionWindow {
		q.window = q.window[len(q.window)-proportionWindow:]
	}
	q.proportion = stat.Mean(q.window, nil)

	// gst_basemixer_update_qos's earliest_time computation (spec.md
	// §4.5): earliest_time = timestamp + diff + (diff>0 ? diff +
	// frame_duration : 0). When diff is positive (we are behind), the
	// next frame we can usefully produce is pushed out by the overrun
	// again plus one frame's worth of slack; when non-positive we are on
	// time or ahead and the next frame only shifts by diff itself.
	if timestamp == videoinfo.Undefined {
		q.earliest = videoinfo.Undefined
		return
	}
	q.earliest = timestamp + diff
	if diff > 0 {
		q.earliest += diff + frameDur
	}
}

// Reset clears QoS state back to its defaults, called on flush and
// mixer reset (gst_basemixer_reset's QoS fields).
func (q *qosState) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.proportion = 1.0
	q.earliest = videoinfo.Undefined
	q.window = nil
	q.processed = 0
	q.dropped = 0
}

// Proportion returns the current smoothed proportion (1.0 means on
// schedule, >1 means running behind).
func (q *qosState) Proportion() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.proportion
}

// EarliestTime returns the earliest running time the Aggregate Loop
// should bother producing a frame for, or a negative duration if QoS
// has never been updated (no constraint yet).
func (q *qosState) EarliestTime() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.earliest
}

// DoQoS decides whether the frame due at outStart is too late to
// bother producing, mirroring gst_basemixer_do_qos (spec.md §4.3):
// jitter is earliest_time - qostime (outStart), and the frame is late
// when jitter > 0, i.e. outStart arrives before the earliest time QoS
// said was worth producing.
func (q *qosState) DoQoS(outStart time.Duration) (late bool, jitter time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.earliest == videoinfo.Undefined {
		return false, 0
	}
	jitter = q.earliest - outStart
	return jitter > 0, jitter
}

// RecordProcessed increments the processed-frame counter.
func (q *qosState) RecordProcessed() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processed++
}

// RecordDropped increments the dropped-frame counter.
func (q *qosState) RecordDropped() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dropped++
}

// Counters returns the processed and dropped frame counts, which
// postQoSMessage copies into each QoSMessage.
func (q *qosState) Counters() (processed, dropped uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processed, q.dropped
}

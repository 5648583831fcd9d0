package mixer

import "github.com/ausocean/videomixer/videoinfo"

// Reset returns the mixer to its just-constructed state: output format
// forgotten, position and frame count zeroed, every pad's buffer and
// converter released. Mirrors the PAUSED_TO_READY branch of
// gst_basemixer_change_state (spec.md §7 "Recovery").
func (m *Mixer) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.outInfo = videoinfo.UnknownInfo
	m.currentCapsOK = false
	m.sendCaps = true
	m.segment = videoinfo.NewSegment()
	m.tsOffset = 0
	m.nframes = 0
	m.pendingTags = false
	m.newSegPending = true
	m.pendingQoS = nil

	for _, in := range m.inputs {
		in.state.FullReset()
	}

	m.qos.Reset()
}

// PrepareToPlay performs the READY_TO_PAUSED setup the original does
// in gst_basemixer_change_state: flag that caps and the initial
// segment must be (re-)sent before the next buffer goes downstream.
func (m *Mixer) PrepareToPlay() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.sendCaps = true
	m.newSegPending = true
}

// TakeSendCaps reports and clears whether updated caps are due to be
// sent downstream before the next frame.
func (m *Mixer) TakeSendCaps() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	v := m.sendCaps
	m.sendCaps = false
	return v
}

// TakeNewSegment reports and clears whether a new-segment announcement
// is due before the next frame.
func (m *Mixer) TakeNewSegment() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	v := m.newSegPending
	m.newSegPending = false
	return v
}

// OutputInfo returns the mixer's currently negotiated output format.
func (m *Mixer) OutputInfo() videoinfo.VideoInfo {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.outInfo
}

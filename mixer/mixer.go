// Package mixer is the root orchestration package: it owns the
// negotiated output format, the per-pad state, and the Aggregate Loop
// that drives the Queue Filler and Compositor Adapter to produce one
// output frame per tick (spec.md §2-§5).
package mixer

import (
	"fmt"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/videomixer/config"
	"github.com/ausocean/videomixer/convert"
	"github.com/ausocean/videomixer/negotiate"
	"github.com/ausocean/videomixer/pad"
	"github.com/ausocean/videomixer/videoinfo"
)

// input bundles everything the mixer tracks for one attached pad: its
// raw ingestion queue, its negotiation/compositing state, and its
// controllable attributes. Mirrors GstBasemixerCollect in the original.
type input struct {
	pad   *pad.Pad
	state *pad.State
	props pad.Props
}

// Mixer is the video mixer core: format negotiation, per-input buffer
// management, and output frame production (spec.md §3 "Mixer"). The
// two-lock split mirrors GstBasemixer's lock/setcaps_lock: lock guards
// the pad list and per-tick mutable state, setcapsLock serializes
// negotiation so two pads can't race to fix the output format.
type Mixer struct {
	lock        sync.Mutex
	setcapsLock sync.Mutex

	logger logging.Logger

	inputs           []*input
	numPadsEverAdded int

	outInfo       videoinfo.VideoInfo
	currentCapsOK bool
	sendCaps      bool

	segment     videoinfo.Segment
	tsOffset    time.Duration
	nframes     uint64
	pendingTags bool
	newSegPending bool

	attrs config.MixerAttrs

	qos qosState

	downstreamFormats []videoinfo.Format
	pendingQoS        *QoSMessage
}

// New returns a Mixer ready to accept pads. logger may be nil, in
// which case diagnostics are discarded (tests use this; cmd/mixdemo
// always supplies a real logging.Logger per SPEC_FULL.md §1).
func New(logger logging.Logger) *Mixer {
	return &Mixer{
		logger:  logger,
		segment: videoinfo.NewSegment(),
		attrs:   config.DefaultMixerAttrs(),
		qos:     newQoSState(),
	}
}

func (m *Mixer) logf(level int8, format string, args ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Log(level, fmt.Sprintf(format, args...))
}

// AddPad attaches a new input, assigning it the default z-order of the
// running pad count so far (SPEC_FULL.md §3.1, mirroring the original's
// numpads-as-initial-zorder behavior) and returns the raw ingestion
// queue the host framework should push buffers onto.
func (m *Mixer) AddPad() *pad.Pad {
	m.lock.Lock()
	defer m.lock.Unlock()

	p := pad.New()
	props := pad.DefaultProps()
	props.ZOrder = m.numPadsEverAdded
	m.numPadsEverAdded++

	m.inputs = append(m.inputs, &input{
		pad:   p,
		state: &pad.State{Info: videoinfo.UnknownInfo},
		props: props,
	})
	m.sendCaps = true
	return p
}

// RemovePad detaches p, closing any converter it held.
func (m *Mixer) RemovePad(p *pad.Pad) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i, in := range m.inputs {
		if in.pad != p {
			continue
		}
		if in.state.Convert != nil {
			in.state.Convert.Close()
		}
		m.inputs = append(m.inputs[:i], m.inputs[i+1:]...)
		m.sendCaps = true
		return
	}
}

// NumPads returns the number of currently-attached pads, for the
// Child/Property Surface (spec.md §6).
func (m *Mixer) NumPads() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.inputs)
}

// PadProps returns pad p's controllable attributes.
func (m *Mixer) PadProps(p *pad.Pad) (pad.Props, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	in := m.findInput(p)
	if in == nil {
		return pad.Props{}, false
	}
	return in.props, true
}

// UpdatePadProp applies a string-valued update to one of p's
// controllable attributes (zorder/xpos/ypos/alpha).
func (m *Mixer) UpdatePadProp(p *pad.Pad, key pad.Key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	in := m.findInput(p)
	if in == nil {
		return fmt.Errorf("mixer: unknown pad")
	}
	return in.props.Update(key, value)
}

// UpdateAttr applies a string-valued update to a mixer-level attribute
// (currently only "background").
func (m *Mixer) UpdateAttr(key config.Key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.attrs.Update(key, value)
}

// SetDownstreamFormats restricts output-format negotiation to formats
// the downstream consumer can accept, mirroring the peer-caps
// intersection gst_basemixer_update_converters performs against
// GST_PAD_CAPS(srcpad)'s peer. A nil/empty set leaves negotiation
// unconstrained by downstream (spec.md §4.1).
func (m *Mixer) SetDownstreamFormats(formats []videoinfo.Format) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.downstreamFormats = formats
}

func (m *Mixer) findInput(p *pad.Pad) *input {
	for _, in := range m.inputs {
		if in.pad == p {
			return in
		}
	}
	return nil
}

// SetInputFormat records the VideoInfo a pad's upstream has negotiated,
// rejecting it if the mixer's output format is already fixed and the
// pad's pixel-aspect-ratio or interlace mode disagrees (spec.md §9).
// On acceptance, it triggers renegotiation of the output geometry and
// converters.
func (m *Mixer) SetInputFormat(p *pad.Pad, vi videoinfo.VideoInfo) error {
	m.setcapsLock.Lock()
	defer m.setcapsLock.Unlock()

	m.lock.Lock()
	in := m.findInput(p)
	out := m.outInfo
	m.lock.Unlock()

	if in == nil {
		return fmt.Errorf("mixer: unknown pad")
	}
	if m.currentCapsOK {
		if err := negotiate.AcceptInputFormat(out, vi); err != nil {
			return err
		}
	}

	m.lock.Lock()
	in.state.Info = vi
	m.lock.Unlock()

	return m.renegotiate()
}

// renegotiate recomputes the output geometry/framerate and per-pad
// converter targets from the current set of pads, mirroring the
// two-step update_src_caps + update_converters sequence in the
// original's gst_basemixer_aggregate NOT_NEGOTIATED path.
func (m *Mixer) renegotiate() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	geoms := make([]negotiate.PadGeometry, len(m.inputs))
	infos := make([]videoinfo.VideoInfo, len(m.inputs))
	targets := make([]videoinfo.VideoInfo, len(m.inputs))
	for i, in := range m.inputs {
		geoms[i] = negotiate.PadGeometry{Info: in.state.Info, XPos: in.props.XPos, YPos: in.props.YPos}
		infos[i] = in.state.Info
		targets[i] = in.state.ConversionInfo
	}

	proposal := negotiate.UpdateOutputCaps(m.outInfo, geoms)
	if proposal.FPSChanged {
		m.reanchorLocked(proposal.Info)
	}

	out, converterTargets, err := negotiate.UpdateConverters(proposal.Info, infos, targets, m.downstreamFormats)
	if err != nil {
		m.currentCapsOK = false
		return err
	}
	m.outInfo = out
	m.currentCapsOK = out.Width > 0 && out.Height > 0 && out.Format.Valid()
	m.sendCaps = true

	for i, in := range m.inputs {
		ct := converterTargets[i]
		if !ct.Changed && in.state.Convert != nil {
			continue
		}
		if in.state.Convert != nil {
			in.state.Convert.Close()
		}
		if in.state.Info.IsUnknown() {
			in.state.Convert = nil
			continue
		}
		c, err := convert.New(in.state.Info, ct.Out)
		if err != nil {
			return fmt.Errorf("mixer: building converter for pad: %w", err)
		}
		in.state.Convert = c
		in.state.ConversionInfo = ct.Out
		in.state.NeedConversionUpdate = false
	}
	return nil
}

// reanchorLocked reanchors ts_offset/nframes when the output framerate
// changes mid-stream, matching gst_basemixer_update_src_caps's
// fps-change branch: the current running position is preserved but
// future frame numbering restarts from it under the new cadence.
// Caller must hold m.lock.
func (m *Mixer) reanchorLocked(newInfo videoinfo.VideoInfo) {
	m.tsOffset = m.segment.Position
	m.nframes = 0
}

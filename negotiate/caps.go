package negotiate

import (
	"fmt"

	"github.com/ausocean/videomixer/videoinfo"
)

// AcceptInputFormat decides whether a pad may adopt candidate as its
// negotiated format given the mixer's current (possibly still
// unfixed) output VideoInfo out. Mirrors
// gst_basemixer_pad_sink_setcaps: once out is fixed (non-unknown), a
// pad's pixel-aspect-ratio and interlace mode must match it exactly;
// no renegotiation is attempted on mismatch, it is a hard rejection
// (spec.md §9, Open Question #2 resolved this way).
func AcceptInputFormat(out videoinfo.VideoInfo, candidate videoinfo.VideoInfo) error {
	if out.IsUnknown() {
		return nil
	}
	if candidate.PARNum*out.PARDen != candidate.PARDen*out.PARNum {
		return NewError(ReasonParOrInterlaceMismatch,
			fmt.Errorf("pixel-aspect-ratio %d/%d does not match output %d/%d",
				candidate.PARNum, candidate.PARDen, out.PARNum, out.PARDen))
	}
	if candidate.Interlace != out.Interlace {
		return NewError(ReasonParOrInterlaceMismatch,
			fmt.Errorf("interlace mode %v does not match output %v", candidate.Interlace, out.Interlace))
	}
	return nil
}

// Template describes the range of values a pad's caps query should
// advertise, derived by widening the mixer's current output the way
// gst_basemixer_pad_sink_getcaps widens width/height/framerate to
// open ranges and strips format/colorimetry/chroma-site so any input
// can still negotiate against a mixer that already has other inputs
// attached.
type Template struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
	// MaxFPSNum/MaxFPSDen bound the framerate a new pad may run at; 0
	// means unbounded (no other pad has negotiated yet).
	MaxFPSNum, MaxFPSDen int
	// PARNum/PARDen is fixed to 1/1 when unset elsewhere in the
	// pipeline, matching the original's default.
	PARNum, PARDen int
}

// QueryAcceptableFormats returns the Template a sink pad should
// advertise given the mixer's current output. When out is unknown (no
// pad has negotiated yet) every dimension is left unconstrained.
func QueryAcceptableFormats(out videoinfo.VideoInfo) Template {
	t := Template{PARNum: 1, PARDen: 1}
	if out.IsUnknown() {
		return t
	}
	t.MinWidth, t.MaxWidth = 1, out.Width
	t.MinHeight, t.MaxHeight = 1, out.Height
	t.MaxFPSNum, t.MaxFPSDen = out.FPSNum, out.FPSDen
	if out.PARNum != 0 {
		t.PARNum, t.PARDen = out.PARNum, out.PARDen
	}
	return t
}

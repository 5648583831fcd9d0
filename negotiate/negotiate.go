// Package negotiate implements the Negotiator (spec.md §4.1): deriving
// the mixer's output VideoInfo from its current inputs, and electing
// the per-pad conversion targets that keep every input's converter
// aimed at that output format.
package negotiate

import (
	"fmt"

	"github.com/ausocean/videomixer/videoinfo"
)

// PadGeometry is one input's contribution to output-size negotiation:
// its negotiated VideoInfo plus the position it will be composited at.
// Mirrors the fields gst_basemixer_modify_src_pad_info reads off each
// GstBasemixerCollect / pad property pair.
type PadGeometry struct {
	Info videoinfo.VideoInfo
	XPos int
	YPos int
}

// OutputProposal is UpdateOutputCaps's result: the proposed output
// VideoInfo, and whether the framerate changed from the mixer's
// current output (the caller must reanchor ts_offset/nframes when it
// has, per gst_basemixer_update_src_caps).
type OutputProposal struct {
	Info       videoinfo.VideoInfo
	FPSChanged bool
}

// UpdateOutputCaps computes the mixer's output geometry and framerate
// from its current inputs, mirroring gst_basemixer_update_src_caps:
// the output grows to contain every positioned input
// (width = max(xpos,0) + pad width, same for height) and the framerate
// is the fastest of all inputs' framerates (so no input's buffers are
// ever produced faster than the mixer can consume them). Pads with a
// zero width or height are ignored. An unset output pixel-aspect-ratio
// defaults to 1/1. Format is left untouched here; UpdateConverters
// elects it separately, the same two-step split the original makes
// between update_src_caps and update_converters.
func UpdateOutputCaps(current videoinfo.VideoInfo, pads []PadGeometry) OutputProposal {
	var width, height int
	var fpsNum, fpsDen int

	for _, p := range pads {
		if p.Info.Width == 0 || p.Info.Height == 0 {
			continue
		}
		w := p.Info.Width
		if p.XPos > 0 {
			w += p.XPos
		}
		h := p.Info.Height
		if p.YPos > 0 {
			h += p.YPos
		}
		if w > width {
			width = w
		}
		if h > height {
			height = h
		}
		if faster(p.Info.FPSNum, p.Info.FPSDen, fpsNum, fpsDen) {
			fpsNum, fpsDen = p.Info.FPSNum, p.Info.FPSDen
		}
	}

	out := current
	out.Width = width
	out.Height = height
	if out.PARNum == 0 || out.PARDen == 0 {
		out.PARNum, out.PARDen = 1, 1
	}

	fpsChanged := fpsNum != 0 && (out.FPSNum != fpsNum || out.FPSDen != fpsDen)
	if fpsNum != 0 {
		out.FPSNum, out.FPSDen = fpsNum, fpsDen
	}

	return OutputProposal{Info: out, FPSChanged: fpsChanged}
}

// faster reports whether a/b (as a framerate) is strictly faster than
// c/d, treating a zero denominator or numerator as "no rate yet" (never
// faster than anything).
func faster(an, ad, cn, cd int) bool {
	if an <= 0 || ad <= 0 {
		return false
	}
	if cn <= 0 || cd <= 0 {
		return true
	}
	// a/b > c/d  <=>  a*d > c*b, all positive.
	return an*cd > cn*ad
}

// ConverterTarget is UpdateConverters's per-pad decision: the format a
// pad's converter should target and whether that pad's existing
// converter (if any) must be rebuilt because the target changed.
type ConverterTarget struct {
	Out     videoinfo.VideoInfo
	Changed bool
}

// UpdateConverters elects the mixer's output pixel format by occurrence
// count across inputs, then decides, per pad, whether its existing
// conversion target still matches. Mirrors gst_basemixer_update_converters:
// the most common input format wins the vote, restricted to alpha-carrying
// formats whenever any input has alpha (so a TRANSPARENT-background mix is
// never silently flattened to opaque), and intersected against downstream's
// accepted formats the way the original intersects GST_PAD_CAPS(srcpad)
// against its peer before settling on an output format. downstream may be
// nil/empty, meaning no downstream constraint is known yet. Returns a
// *negotiate.Error with ReasonFormatMismatch if no format satisfies both
// constraints (spec.md §4.1, §7 "Negotiation", §8 Scenario 5).
func UpdateConverters(outGeom videoinfo.VideoInfo, pads []videoinfo.VideoInfo, currentTargets []videoinfo.VideoInfo, downstream []videoinfo.Format) (videoinfo.VideoInfo, []ConverterTarget, error) {
	format, err := electFormat(pads, downstream)
	if err != nil {
		return videoinfo.VideoInfo{}, nil, err
	}

	out := outGeom
	out.Format = format

	targets := make([]ConverterTarget, len(pads))
	for i := range pads {
		var prev videoinfo.VideoInfo
		if i < len(currentTargets) {
			prev = currentTargets[i]
		}
		targets[i] = ConverterTarget{
			Out:     out,
			Changed: !prev.SameOutputShape(out) || prev.Width != out.Width || prev.Height != out.Height,
		}
	}
	return out, targets, nil
}

// electFormat picks the most common format among pads, breaking ties in
// favor of the format seen first in pad order. If any input carries alpha, the
// election is restricted to alpha-carrying formats outright (not just a
// tiebreak), since a non-alpha output format would silently drop that
// input's alpha channel. The result (and, when downstream is non-empty,
// every candidate considered) must also appear in downstream; if alpha is
// required but downstream cannot carry it, negotiation fails outright
// rather than choosing a format that would lose alpha.
func electFormat(pads []videoinfo.VideoInfo, downstream []videoinfo.Format) (videoinfo.Format, error) {
	counts := make(map[videoinfo.Format]int)
	var seen []videoinfo.Format
	anyAlpha := false
	for _, p := range pads {
		if p.IsUnknown() {
			continue
		}
		if counts[p.Format] == 0 {
			seen = append(seen, p.Format)
		}
		counts[p.Format]++
		if p.Format.HasAlpha() {
			anyAlpha = true
		}
	}
	if len(counts) == 0 {
		return videoinfo.AYUV, nil
	}

	acceptable := func(f videoinfo.Format) bool {
		if anyAlpha && !f.HasAlpha() {
			return false
		}
		if len(downstream) > 0 && !formatAccepted(downstream, f) {
			return false
		}
		return true
	}

	var best videoinfo.Format
	bestCount := -1
	for _, f := range seen {
		if c := counts[f]; acceptable(f) && c > bestCount {
			best, bestCount = f, c
		}
	}
	if bestCount < 0 {
		if anyAlpha {
			return 0, NewError(ReasonFormatMismatch,
				fmt.Errorf("negotiate: input requires alpha but downstream cannot support alpha"))
		}
		return 0, NewError(ReasonFormatMismatch,
			fmt.Errorf("negotiate: no input format is acceptable to downstream"))
	}
	return best, nil
}

// formatAccepted reports whether f appears in the downstream-accepted set.
func formatAccepted(downstream []videoinfo.Format, f videoinfo.Format) bool {
	for _, d := range downstream {
		if d == f {
			return true
		}
	}
	return false
}

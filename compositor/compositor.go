package compositor

import "github.com/ausocean/videomixer/videoinfo"

// Input is one pad's contribution to a single composite pass: its
// converted buffer (already reshaped to the output's format by that
// pad's convert.Converter), its position, and its effective alpha.
// Sorted by ZOrder by the caller before Composite is invoked, mirroring
// the original's z-order-sorted GSList traversal.
type Input struct {
	Buffer videoinfo.Buffer
	XPos   int
	YPos   int
	Alpha  float64
}

// Composite paints background into dst, then blends or overlays each
// input in the order given (callers must already have sorted by
// z-order), mirroring gst_videomixer2_mix_frames: CHECKER/BLACK/WHITE
// paint an opaque frame and use Blend for every input; TRANSPARENT
// starts from a zeroed frame and uses Overlay instead, since there is
// nothing underneath to alpha-blend against.
func Composite(dst *videoinfo.Buffer, background Background, inputs []Input) error {
	if err := paintBackground(dst, background); err != nil {
		return err
	}

	compose := Blend
	if background.UsesOverlay() {
		compose = Overlay
	}

	for _, in := range inputs {
		if err := compose(dst, in.Buffer, in.XPos, in.YPos, in.Alpha); err != nil {
			return err
		}
	}
	return nil
}

func paintBackground(dst *videoinfo.Buffer, background Background) error {
	switch background {
	case Checker:
		return FillChecker(dst)
	case Black:
		return PaintBlack(dst)
	case White:
		return PaintWhite(dst)
	case Transparent:
		return zeroBuffer(dst)
	default:
		return FillChecker(dst)
	}
}

// zeroBuffer clears every plane to 0, the "fully transparent" starting
// point the original sets up (memset 0) before mixing with overlay
// instead of blend.
func zeroBuffer(dst *videoinfo.Buffer) error {
	for _, p := range dst.Planes {
		for i := range p {
			p[i] = 0
		}
	}
	return nil
}

package videoinfo

import "time"

// Colorimetry names the colorimetry string of a VideoInfo. The mixer
// never interprets this beyond equality comparison during negotiation.
type Colorimetry string

// ChromaSite names the chroma siting string of a VideoInfo. Like
// Colorimetry, only compared for equality by the negotiator.
type ChromaSite string

// Interlace describes a VideoInfo's interlace mode. The mixer only
// compares this for equality (§4.1: sink setcaps rejects a mismatched
// interlace mode against the current out_info).
type Interlace int

const (
	Progressive Interlace = iota
	Interleaved
	Mixed
)

// VideoInfo describes the geometry, rate and colour properties of a
// video stream, mirroring GstVideoInfo (spec.md §3/§6).
type VideoInfo struct {
	Format    Format
	Width     int
	Height    int
	FPSNum    int
	FPSDen    int
	PARNum    int
	PARDen    int
	Colorimetry Colorimetry
	ChromaSite  ChromaSite
	Interlace   Interlace
}

// UnknownInfo is unset VideoInfo: Format is the Unknown sentinel and
// everything else zero. out_info starts in this state and Input Pad
// State.info starts unknown per spec.md §3.
var UnknownInfo = VideoInfo{}

// IsUnknown reports whether vi carries no negotiated format yet.
func (vi VideoInfo) IsUnknown() bool { return vi.Format == Unknown }

// PlaneBytesPerPixel returns the packed-format bytes-per-pixel, or 0 for
// planar formats (where Size must account for subsampling instead).
func (vi VideoInfo) PlaneBytesPerPixel() int {
	return formatTable[vi.Format].bpp
}

// Size returns the byte size of a frame in this format at this width and
// height, matching GST_VIDEO_INFO_SIZE. Planar YUV formats with 4:2:0 or
// 4:1:1 subsampling are computed from their known plane layout; packed
// formats are width*height*bytesPerPixel.
func (vi VideoInfo) Size() int {
	w, h := vi.Width, vi.Height
	switch vi.Format {
	case I420, YV12:
		cw, ch := (w+1)/2, (h+1)/2
		return w*h + 2*cw*ch
	case NV12, NV21:
		cw, ch := (w+1)/2, (h+1)/2
		return w*h + 2*cw*ch
	case Y444:
		return 3 * w * h
	case Y42B:
		cw := (w + 1) / 2
		return w*h + 2*cw*h
	case Y41B:
		cw := (w + 3) / 4
		return w*h + 2*cw*h
	default:
		return w * h * vi.PlaneBytesPerPixel()
	}
}

// FPS returns the framerate as a float64, or 0 if FPSDen is 0.
func (vi VideoInfo) FPS() float64 {
	if vi.FPSDen == 0 {
		return 0
	}
	return float64(vi.FPSNum) / float64(vi.FPSDen)
}

// FrameDuration returns the nominal duration of one frame at this
// VideoInfo's framerate, rounded to the nearest nanosecond, matching
// spec.md §3's "SECOND * fps_d / fps_n" cadence formula.
func (vi VideoInfo) FrameDuration() time.Duration {
	if vi.FPSNum <= 0 {
		return 0
	}
	return scaleRound(time.Second, vi.FPSDen, vi.FPSNum)
}

// scaleRound computes round(a * num / den) as a time.Duration, the Go
// equivalent of gst_util_uint64_scale_round used throughout the
// original for cadence arithmetic.
func scaleRound(a time.Duration, num, den int) time.Duration {
	if den == 0 {
		return 0
	}
	// Use int64 arithmetic with explicit rounding (a*num + den/2) / den.
	n := int64(a) * int64(num)
	d := int64(den)
	if n >= 0 {
		return time.Duration((n + d/2) / d)
	}
	return time.Duration((n - d/2) / d)
}

// SameOutputShape reports whether vi and other share the format,
// colorimetry and chroma site a converter would be keyed on (used by
// the Negotiator to decide whether a pad needs a new converter).
func (vi VideoInfo) SameOutputShape(other VideoInfo) bool {
	return vi.Format == other.Format &&
		vi.Colorimetry == other.Colorimetry &&
		vi.ChromaSite == other.ChromaSite
}

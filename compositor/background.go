// Package compositor implements the Compositor Adapter (spec.md §4.4):
// painting the output frame's background, then blending or overlaying
// each input pad's converted buffer into it in z-order.
package compositor

// Background selects how the output frame starts each tick, before any
// pad is composited into it. Mirrors GstVideoMixer2Background in the
// original header.
type Background int

const (
	Checker Background = iota
	Black
	White
	Transparent
)

// String returns the background's caps-property-style name.
func (b Background) String() string {
	switch b {
	case Checker:
		return "checker"
	case Black:
		return "black"
	case White:
		return "white"
	case Transparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// UsesOverlay reports whether this background requires pads to be
// composited with Overlay (hard replace, carrying the input's alpha into
// the destination) rather than Blend (alpha-weighted mix against an opaque
// destination). Only Transparent does: painting starts from a
// fully-zeroed, alpha-zero frame, and a blend against that would darken
// edges instead of leaving them transparent. Mirrors
// gst_videomixer2_mix_frames's dispatch.
func (b Background) UsesOverlay() bool {
	return b == Transparent
}

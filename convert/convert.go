// Package convert implements the Converter Planner: opaque per-pad
// pixel format/colorspace/scale converters, created and torn down by
// the negotiator as each pad's input format and the mixer's negotiated
// output format dictate.
package convert

import "github.com/ausocean/videomixer/videoinfo"

// Converter transforms one frame of pixel data from an input VideoInfo
// to an output VideoInfo. Implementations are created for a fixed
// (in, out) VideoInfo pair and reused across frames until the
// negotiator decides the pair has changed, mirroring
// videoconvert_convert_new/convert/free in the original.
type Converter interface {
	// Convert writes the conversion of src (laid out per In()) into a
	// newly allocated Buffer laid out per Out().
	Convert(src videoinfo.Buffer) (videoinfo.Buffer, error)

	// In returns the VideoInfo this converter reads.
	In() videoinfo.VideoInfo

	// Out returns the VideoInfo this converter produces.
	Out() videoinfo.VideoInfo

	// Close releases any resources the converter holds (e.g. gocv Mats).
	Close() error
}

// New returns a Converter from in to out. If in and out already share
// format, colorimetry and chroma site, the returned converter only
// rescales geometry (or is a pure passthrough if geometry also
// matches); otherwise the build-specific implementation performs a
// real colorspace conversion (see gocv_convert.go under the withcv
// build tag, or the pure-Go path in noop.go otherwise).
func New(in, out videoinfo.VideoInfo) (Converter, error) {
	return newConverter(in, out)
}

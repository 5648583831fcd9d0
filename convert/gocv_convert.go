//go:build withcv

package convert

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ausocean/videomixer/videoinfo"
)

// gocvConverter backs pixel conversion with gocv.Mat's CvtColor/Resize,
// the same way filter/mog.go leans on gocv under the withcv build tag
// for background-subtraction work. It holds a Mat pair that Close
// releases; Convert does not use them and allocates its own Mats on
// every call.
type gocvConverter struct {
	in, out videoinfo.VideoInfo
	src     gocv.Mat
	dst     gocv.Mat
}

func newConverter(in, out videoinfo.VideoInfo) (Converter, error) {
	return &gocvConverter{
		in:  in,
		out: out,
		src: gocv.NewMat(),
		dst: gocv.NewMat(),
	}, nil
}

func (c *gocvConverter) In() videoinfo.VideoInfo  { return c.in }
func (c *gocvConverter) Out() videoinfo.VideoInfo { return c.out }

func (c *gocvConverter) Close() error {
	c.src.Close()
	c.dst.Close()
	return nil
}

func (c *gocvConverter) Convert(src videoinfo.Buffer) (videoinfo.Buffer, error) {
	mat, err := toMat(src, c.in)
	if err != nil {
		return videoinfo.Buffer{}, fmt.Errorf("convert: toMat: %w", err)
	}
	defer mat.Close()

	converted := mat
	if c.in.Format != c.out.Format {
		converted = gocv.NewMat()
		defer converted.Close()
		code, err := cvtCode(c.in.Format, c.out.Format)
		if err != nil {
			return videoinfo.Buffer{}, err
		}
		gocv.CvtColor(mat, &converted, code)
	}

	resized := converted
	if c.in.Width != c.out.Width || c.in.Height != c.out.Height {
		resized = gocv.NewMat()
		defer resized.Close()
		gocv.Resize(converted, &resized, image.Pt(c.out.Width, c.out.Height), 0, 0, gocv.InterpolationLinear)
	}

	return fromMat(resized, src, c.out)
}

func cvtCode(in, out videoinfo.Format) (gocv.ColorConversionCode, error) {
	switch {
	case isRGBFamily(in) && out == videoinfo.AYUV:
		return gocv.ColorBGRToYUV, nil
	case in == videoinfo.I420 && isRGBFamily(out):
		return gocv.ColorYUVToBGR, nil
	default:
		return 0, fmt.Errorf("convert: no gocv conversion code for %v -> %v", in, out)
	}
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

func toMat(b videoinfo.Buffer, vi videoinfo.VideoInfo) (gocv.Mat, error) {
	if len(b.Planes) == 0 {
		return gocv.Mat{}, fmt.Errorf("convert: buffer has no planes")
	}
	bpp := vi.PlaneBytesPerPixel()
	if bpp == 0 {
		return gocv.Mat{}, fmt.Errorf("convert: planar format %v unsupported as single Mat", vi.Format)
	}
	matType := gocv.MatTypeCV8UC3
	if bpp == 4 {
		matType = gocv.MatTypeCV8UC4
	}
	return gocv.NewMatFromBytes(vi.Height, vi.Width, matType, b.Planes[0])
}

func fromMat(m gocv.Mat, src videoinfo.Buffer, out videoinfo.VideoInfo) (videoinfo.Buffer, error) {
	data, err := m.DataPtrUint8()
	if err != nil {
		return videoinfo.Buffer{}, fmt.Errorf("convert: DataPtrUint8: %w", err)
	}
	plane := make([]byte, len(data))
	copy(plane, data)
	return videoinfo.Buffer{
		Timestamp: src.Timestamp,
		Duration:  src.Duration,
		Info:      out,
		Planes:    [][]byte{plane},
	}, nil
}

//go:build withcv

package compositor

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/videomixer/videoinfo"
)

// PaintBlack fills dst with opaque black via gocv.Mat.SetTo, the
// OpenCV-accelerated counterpart to blend_generic.go's pure-Go
// implementation used in the default build.
func PaintBlack(dst *videoinfo.Buffer) error { return paintSolidCV(dst, gocv.NewScalar(0, 0, 0, 255)) }

// PaintWhite fills dst with opaque white.
func PaintWhite(dst *videoinfo.Buffer) error {
	return paintSolidCV(dst, gocv.NewScalar(255, 255, 255, 255))
}

func paintSolidCV(dst *videoinfo.Buffer, color gocv.Scalar) error {
	m, err := matFor(*dst)
	if err != nil {
		return err
	}
	defer m.Close()
	m.SetTo(color)
	return copyMatInto(dst, m)
}

// FillChecker paints dst with an 8x8 grey checkerboard using gocv
// rectangle fills instead of the generic build's per-pixel loop.
func FillChecker(dst *videoinfo.Buffer) error {
	m, err := matFor(*dst)
	if err != nil {
		return err
	}
	defer m.Close()
	const sq = 8
	for y := 0; y < dst.Info.Height; y += sq {
		for x := 0; x < dst.Info.Width; x += sq {
			v := 80.0
			if ((x/sq)+(y/sq))%2 != 0 {
				v = 160.0
			}
			rect := image.Rect(x, y, x+sq, y+sq)
			gocv.Rectangle(&m, rect, color.RGBA{uint8(v), uint8(v), uint8(v), 255}, -1)
		}
	}
	return copyMatInto(dst, m)
}

// Blend alpha-composites src into dst at (xpos, ypos) using
// gocv.AddWeighted over the overlapping ROI.
func Blend(dst *videoinfo.Buffer, src videoinfo.Buffer, xpos, ypos int, alpha float64) error {
	return composeCV(dst, src, xpos, ypos, alpha, false)
}

// Overlay hard-copies src's ROI into dst, used for the Transparent
// background.
func Overlay(dst *videoinfo.Buffer, src videoinfo.Buffer, xpos, ypos int, alpha float64) error {
	return composeCV(dst, src, xpos, ypos, alpha, true)
}

func composeCV(dst *videoinfo.Buffer, src videoinfo.Buffer, xpos, ypos int, alpha float64, overlay bool) error {
	dm, err := matFor(*dst)
	if err != nil {
		return err
	}
	defer dm.Close()
	sm, err := matFor(src)
	if err != nil {
		return err
	}
	defer sm.Close()

	rect := image.Rect(xpos, ypos, xpos+src.Info.Width, ypos+src.Info.Height).
		Intersect(image.Rect(0, 0, dst.Info.Width, dst.Info.Height))
	if rect.Empty() {
		return nil
	}
	roi := dm.Region(rect)
	defer roi.Close()
	srcROI := sm.Region(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	defer srcROI.Close()

	if overlay {
		srcROI.CopyTo(&roi)
	} else {
		gocv.AddWeighted(roi, 1-alpha, srcROI, alpha, 0, &roi)
	}
	return copyMatInto(dst, dm)
}

func matFor(b videoinfo.Buffer) (gocv.Mat, error) {
	if len(b.Planes) != 1 {
		return gocv.Mat{}, fmt.Errorf("compositor: gocv path requires a single packed plane, format %v has %d", b.Info.Format, len(b.Planes))
	}
	bpp := b.Info.PlaneBytesPerPixel()
	matType := gocv.MatTypeCV8UC3
	if bpp == 4 {
		matType = gocv.MatTypeCV8UC4
	}
	return gocv.NewMatFromBytes(b.Info.Height, b.Info.Width, matType, b.Planes[0])
}

func copyMatInto(dst *videoinfo.Buffer, m gocv.Mat) error {
	data, err := m.DataPtrUint8()
	if err != nil {
		return fmt.Errorf("compositor: DataPtrUint8: %w", err)
	}
	copy(dst.Planes[0], data)
	return nil
}

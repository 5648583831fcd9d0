package compositor

import "github.com/ausocean/videomixer/videoinfo"

// class groups formats that share a compositing strategy, the Go
// equivalent of the original's per-format function-pointer assignment
// in set_functions (videomixer2.c).
type class int

const (
	classPackedAlpha class = iota
	classPackedOpaque
	classPlanarYUV
	classSemiPlanarYUV
)

// formatOps holds everything a format's primitives need: its class,
// the byte offset of its alpha channel (packed-alpha formats only),
// bytes per pixel (packed formats), and chroma subsampling factors
// (planar/semi-planar formats). uvSwapped accounts for YV12/NV21
// storing V before U.
type formatOps struct {
	class      class
	alphaOff   int
	bpp        int
	chromaWSub int
	chromaHSub int
	uvSwapped  bool
}

// primitiveTable mirrors set_functions's per-format switch: every
// supported format maps to the facts its blend/overlay/fill
// implementation needs.
var primitiveTable = map[videoinfo.Format]formatOps{
	videoinfo.AYUV: {class: classPackedAlpha, alphaOff: 0, bpp: 4},
	videoinfo.BGRA: {class: classPackedAlpha, alphaOff: 3, bpp: 4},
	videoinfo.ARGB: {class: classPackedAlpha, alphaOff: 0, bpp: 4},
	videoinfo.RGBA: {class: classPackedAlpha, alphaOff: 3, bpp: 4},
	videoinfo.ABGR: {class: classPackedAlpha, alphaOff: 0, bpp: 4},

	videoinfo.RGB:  {class: classPackedOpaque, bpp: 3},
	videoinfo.BGR:  {class: classPackedOpaque, bpp: 3},
	videoinfo.XRGB: {class: classPackedOpaque, bpp: 4},
	videoinfo.XBGR: {class: classPackedOpaque, bpp: 4},
	videoinfo.RGBX: {class: classPackedOpaque, bpp: 4},
	videoinfo.BGRX: {class: classPackedOpaque, bpp: 4},
	videoinfo.YUY2: {class: classPackedOpaque, bpp: 2},
	videoinfo.UYVY: {class: classPackedOpaque, bpp: 2},
	videoinfo.YVYU: {class: classPackedOpaque, bpp: 2},

	videoinfo.I420: {class: classPlanarYUV, chromaWSub: 2, chromaHSub: 2},
	videoinfo.YV12: {class: classPlanarYUV, chromaWSub: 2, chromaHSub: 2, uvSwapped: true},
	videoinfo.Y444: {class: classPlanarYUV, chromaWSub: 1, chromaHSub: 1},
	videoinfo.Y42B: {class: classPlanarYUV, chromaWSub: 2, chromaHSub: 1},
	videoinfo.Y41B: {class: classPlanarYUV, chromaWSub: 4, chromaHSub: 1},

	videoinfo.NV12: {class: classSemiPlanarYUV, chromaWSub: 2, chromaHSub: 2},
	videoinfo.NV21: {class: classSemiPlanarYUV, chromaWSub: 2, chromaHSub: 2, uvSwapped: true},
}

// lookup returns the formatOps for f, or ok=false if f is unsupported
// (Unknown, or a format not in the 21-format negotiation set).
func lookup(f videoinfo.Format) (formatOps, bool) {
	ops, ok := primitiveTable[f]
	return ops, ok
}

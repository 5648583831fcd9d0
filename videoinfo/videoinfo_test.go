package videoinfo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestVideoInfoSize(t *testing.T) {
	cases := []struct {
		name string
		vi   VideoInfo
		want int
	}{
		{"I420 4x2", VideoInfo{Format: I420, Width: 4, Height: 2}, 4*2 + 2*2*1},
		{"AYUV 2x2", VideoInfo{Format: AYUV, Width: 2, Height: 2}, 2 * 2 * 4},
		{"RGB 2x2", VideoInfo{Format: RGB, Width: 2, Height: 2}, 2 * 2 * 3},
		{"NV12 4x2", VideoInfo{Format: NV12, Width: 4, Height: 2}, 4*2 + 2*2*1},
	}
	for _, c := range cases {
		if got := c.vi.Size(); got != c.want {
			t.Errorf("%s: Size() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestVideoInfoFrameDuration(t *testing.T) {
	vi := VideoInfo{FPSNum: 30, FPSDen: 1}
	want := time.Second / 30
	if got := vi.FrameDuration(); got != want {
		t.Errorf("FrameDuration() = %v, want %v", got, want)
	}
}

func TestVideoInfoIsUnknown(t *testing.T) {
	if !UnknownInfo.IsUnknown() {
		t.Error("UnknownInfo.IsUnknown() = false, want true")
	}
	vi := VideoInfo{Format: I420}
	if vi.IsUnknown() {
		t.Error("I420 info reported as unknown")
	}
}

func TestVideoInfoSameOutputShape(t *testing.T) {
	a := VideoInfo{Format: I420, Colorimetry: "bt601", ChromaSite: "mpeg2"}
	b := VideoInfo{Format: I420, Colorimetry: "bt601", ChromaSite: "mpeg2", Width: 100}
	if !a.SameOutputShape(b) {
		t.Error("expected same output shape despite differing width")
	}
	c := VideoInfo{Format: NV12, Colorimetry: "bt601", ChromaSite: "mpeg2"}
	if a.SameOutputShape(c) {
		t.Error("expected different output shape for differing format")
	}
}

func TestVideoInfoEquality(t *testing.T) {
	a := VideoInfo{
		Format: I420, Width: 640, Height: 480,
		FPSNum: 30, FPSDen: 1, PARNum: 1, PARDen: 1,
		Colorimetry: "bt601", ChromaSite: "mpeg2", Interlace: Progressive,
	}
	b := a
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical VideoInfo values differ (-want +got):\n%s", diff)
	}

	b.Height = 720
	if diff := cmp.Diff(a, b); diff == "" {
		t.Error("expected a diff after changing Height, got none")
	}
}

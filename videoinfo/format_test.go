package videoinfo

import "testing"

func TestFormatAlphaAndPlanes(t *testing.T) {
	cases := []struct {
		f      Format
		alpha  bool
		planes int
		name   string
	}{
		{AYUV, true, 1, "AYUV"},
		{BGRA, true, 1, "BGRA"},
		{I420, false, 3, "I420"},
		{NV12, false, 2, "NV12"},
		{RGB, false, 1, "RGB"},
		{XRGB, false, 1, "xRGB"},
	}
	for _, c := range cases {
		if got := c.f.HasAlpha(); got != c.alpha {
			t.Errorf("%s: HasAlpha() = %v, want %v", c.name, got, c.alpha)
		}
		if got := c.f.Planes(); got != c.planes {
			t.Errorf("%s: Planes() = %d, want %d", c.name, got, c.planes)
		}
		if got := c.f.String(); got != c.name {
			t.Errorf("String() = %q, want %q", got, c.name)
		}
	}
}

func TestFormatValid(t *testing.T) {
	if Unknown.Valid() {
		t.Error("Unknown.Valid() = true, want false")
	}
	for _, f := range AllFormats() {
		if !f.Valid() {
			t.Errorf("%v.Valid() = false, want true", f)
		}
	}
}

func TestAllFormatsCount(t *testing.T) {
	if got := len(AllFormats()); got != 21 {
		t.Errorf("len(AllFormats()) = %d, want 21", got)
	}
}

func TestUnknownString(t *testing.T) {
	if got := Unknown.String(); got != "UNKNOWN" {
		t.Errorf("Unknown.String() = %q, want UNKNOWN", got)
	}
}

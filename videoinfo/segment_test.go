package videoinfo

import (
	"testing"
	"time"
)

func TestSegmentToRunningTime(t *testing.T) {
	s := Segment{Start: 2 * time.Second, Stop: Undefined, Rate: 1}
	if got := s.ToRunningTime(5 * time.Second); got != 3*time.Second {
		t.Errorf("ToRunningTime = %v, want 3s", got)
	}
	if got := s.ToRunningTime(time.Second); got != Undefined {
		t.Errorf("ToRunningTime before start = %v, want Undefined", got)
	}
}

func TestSegmentToRunningTimeRate(t *testing.T) {
	s := Segment{Start: 0, Stop: Undefined, Rate: 2}
	if got := s.ToRunningTime(4 * time.Second); got != 2*time.Second {
		t.Errorf("ToRunningTime at rate 2 = %v, want 2s", got)
	}
}

func TestSegmentToStreamTime(t *testing.T) {
	s := Segment{Start: time.Second, Stop: Undefined, Rate: 3}
	if got := s.ToStreamTime(4 * time.Second); got != 3*time.Second {
		t.Errorf("ToStreamTime = %v, want 3s (rate-independent)", got)
	}
}

func TestSegmentClip(t *testing.T) {
	s := Segment{Start: time.Second, Stop: 5 * time.Second, Rate: 1}

	if _, _, ok := s.Clip(0, 500*time.Millisecond); ok {
		t.Error("Clip entirely before start should drop")
	}
	if _, _, ok := s.Clip(6*time.Second, 7*time.Second); ok {
		t.Error("Clip entirely after stop should drop")
	}
	cs, ce, ok := s.Clip(500*time.Millisecond, 2*time.Second)
	if !ok || cs != time.Second || ce != 2*time.Second {
		t.Errorf("Clip straddling start = (%v,%v,%v), want (1s,2s,true)", cs, ce, ok)
	}
	cs, ce, ok = s.Clip(4*time.Second, 6*time.Second)
	if !ok || cs != 4*time.Second || ce != 5*time.Second {
		t.Errorf("Clip straddling stop = (%v,%v,%v), want (4s,5s,true)", cs, ce, ok)
	}
	cs, ce, ok = s.Clip(2*time.Second, Undefined)
	if !ok || cs != 2*time.Second || ce != 5*time.Second {
		t.Errorf("Clip open-ended = (%v,%v,%v), want (2s,5s,true)", cs, ce, ok)
	}
}

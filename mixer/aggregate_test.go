//go:build !withcv

package mixer

import (
	"testing"
	"time"

	"github.com/ausocean/videomixer/videoinfo"
)

func TestAggregateNotNegotiated(t *testing.T) {
	m := New(nil)
	m.AddPad()
	if _, err := m.Aggregate(); err != ErrNotNegotiated {
		t.Fatalf("Aggregate() = %v, want ErrNotNegotiated", err)
	}
}

func TestAggregateNeedMoreData(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	vi := videoinfo.VideoInfo{Format: videoinfo.RGB, Width: 4, Height: 4, FPSNum: 1, FPSDen: 1}
	if err := m.SetInputFormat(p, vi); err != nil {
		t.Fatalf("SetInputFormat: %v", err)
	}
	if _, err := m.Aggregate(); err != ErrNeedMoreData {
		t.Fatalf("Aggregate() = %v, want ErrNeedMoreData", err)
	}
}

func TestAggregateProducesFrame(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	vi := videoinfo.VideoInfo{Format: videoinfo.RGB, Width: 4, Height: 4, FPSNum: 1, FPSDen: 1}
	if err := m.SetInputFormat(p, vi); err != nil {
		t.Fatalf("SetInputFormat: %v", err)
	}

	buf := videoinfo.Buffer{
		Timestamp: 0,
		Duration:  time.Second,
		Info:      vi,
		Planes:    [][]byte{make([]byte, 4*4*3)},
	}
	for i := range buf.Planes[0] {
		buf.Planes[0][i] = 123
	}
	if err := p.Push(buf); err != nil {
		t.Fatalf("Push: %v", err)
	}

	out, err := m.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if out.Info.Width != 4 || out.Info.Height != 4 {
		t.Fatalf("output Info = %+v, want 4x4", out.Info)
	}
	for _, b := range out.Planes[0] {
		if b != 123 {
			t.Fatalf("expected fully-opaque pad to overwrite background, got %d", b)
		}
	}
}

func TestAggregateDropsLateFrameAndStillAdvances(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	vi := videoinfo.VideoInfo{Format: videoinfo.RGB, Width: 4, Height: 4, FPSNum: 1, FPSDen: 1}
	if err := m.SetInputFormat(p, vi); err != nil {
		t.Fatalf("SetInputFormat: %v", err)
	}
	buf := videoinfo.Buffer{
		Timestamp: 0,
		Duration:  time.Second,
		Info:      vi,
		Planes:    [][]byte{make([]byte, 4*4*3)},
	}
	if err := p.Push(buf); err != nil {
		t.Fatalf("Push: %v", err)
	}

	// Prime QoS so earliest_time falls well after outStart (0), making
	// this tick late: earliest = 1s + 100ms + (100ms + 1s) = 2.2s.
	m.HandleQoS(time.Second, 100*time.Millisecond, 1.0)

	out, err := m.Aggregate()
	if err != ErrFrameDropped {
		t.Fatalf("Aggregate() = (%v, %v), want (nil, ErrFrameDropped)", out, err)
	}
	if out != nil {
		t.Fatalf("expected no output buffer on a dropped frame, got %+v", out)
	}

	processed, dropped := m.qos.Counters()
	if dropped != 1 {
		t.Fatalf("dropped counter = %d, want 1", dropped)
	}
	if processed != 0 {
		t.Fatalf("processed counter = %d, want 0", processed)
	}

	m.lock.Lock()
	pos := m.segment.Position
	m.lock.Unlock()
	if pos != time.Second {
		t.Fatalf("segment.Position = %v, want 1s (still advanced despite the drop)", pos)
	}

	msg, ok := m.TakePendingQoSMessage()
	if !ok {
		t.Fatal("expected a pending QoS message after a dropped frame")
	}
	if msg.Timestamp != 0 {
		t.Errorf("QoSMessage.Timestamp = %v, want 0", msg.Timestamp)
	}
	if msg.Jitter <= 0 {
		t.Errorf("QoSMessage.Jitter = %v, want > 0", msg.Jitter)
	}
	if msg.Dropped != 1 {
		t.Errorf("QoSMessage.Dropped = %d, want 1", msg.Dropped)
	}

	if _, ok := m.TakePendingQoSMessage(); ok {
		t.Fatal("expected the pending QoS message to be cleared after being taken")
	}
}

func TestAggregateAllEOS(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	vi := videoinfo.VideoInfo{Format: videoinfo.RGB, Width: 4, Height: 4, FPSNum: 1, FPSDen: 1}
	if err := m.SetInputFormat(p, vi); err != nil {
		t.Fatalf("SetInputFormat: %v", err)
	}
	p.SetEOS()
	if _, err := m.Aggregate(); err != ErrEOS {
		t.Fatalf("Aggregate() = %v, want ErrEOS", err)
	}
}

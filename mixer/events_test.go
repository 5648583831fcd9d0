package mixer

import (
	"testing"
	"time"

	"github.com/ausocean/videomixer/videoinfo"
)

func TestSeekRejectsNonPositiveRate(t *testing.T) {
	m := New(nil)
	if err := m.Seek(0, 0, false); err != ErrNegativeRate {
		t.Fatalf("Seek(rate=0) = %v, want ErrNegativeRate", err)
	}
	if err := m.Seek(0, -1, false); err != ErrNegativeRate {
		t.Fatalf("Seek(rate=-1) = %v, want ErrNegativeRate", err)
	}
}

func TestSeekUpdatesSegment(t *testing.T) {
	m := New(nil)
	if err := m.Seek(5*time.Second, 2.0, false); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	m.lock.Lock()
	start, rate := m.segment.Start, m.segment.Rate
	m.lock.Unlock()
	if start != 5*time.Second || rate != 2.0 {
		t.Fatalf("segment = {Start:%v Rate:%v}, want {5s 2.0}", start, rate)
	}
}

func TestSeekFlushClearsPadState(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	buf := videoinfo.Buffer{Timestamp: time.Second}
	m.lock.Lock()
	in := m.findInput(p)
	in.state.Buffer = &buf
	in.state.StartTime = time.Second
	in.state.EndTime = 2 * time.Second
	m.lock.Unlock()

	if err := m.Seek(0, 1.0, true); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	m.lock.Lock()
	cleared := in.state.Buffer == nil
	m.lock.Unlock()
	if !cleared {
		t.Fatal("expected flush seek to clear the pad's promoted buffer")
	}
}

func TestSeekRescalesWithoutFlush(t *testing.T) {
	m := New(nil)
	p := m.AddPad()
	buf := videoinfo.Buffer{Timestamp: time.Second}
	m.lock.Lock()
	m.segment.Rate = 1.0
	in := m.findInput(p)
	in.state.Buffer = &buf
	in.state.StartTime = 2 * time.Second
	in.state.EndTime = 4 * time.Second
	m.lock.Unlock()

	if err := m.Seek(0, 2.0, false); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	m.lock.Lock()
	start, end, kept := in.state.StartTime, in.state.EndTime, in.state.Buffer != nil
	m.lock.Unlock()
	if !kept {
		t.Fatal("expected rate-only seek to keep the pad's promoted buffer")
	}
	if start != time.Second || end != 2*time.Second {
		t.Fatalf("rescaled interval = [%v,%v), want [1s,2s) (halved by rate 2x)", start, end)
	}
}

func TestDurationMaxOfPeers(t *testing.T) {
	peers := []PeerInfo{
		{Duration: time.Second, HasDuration: true},
		{Duration: 3 * time.Second, HasDuration: true},
		{HasDuration: false},
	}
	got, ok := Duration(peers)
	if !ok || got != 3*time.Second {
		t.Fatalf("Duration = (%v,%v), want (3s,true)", got, ok)
	}
}

func TestDurationNoPeers(t *testing.T) {
	if _, ok := Duration(nil); ok {
		t.Fatal("expected ok=false for no peers")
	}
}

func TestLatencyReduction(t *testing.T) {
	peers := []PeerInfo{
		{Live: true, MinLatency: 10 * time.Millisecond, MaxLatency: 100 * time.Millisecond, HasMaxLatency: true},
		{Live: false, MinLatency: 20 * time.Millisecond, MaxLatency: 50 * time.Millisecond, HasMaxLatency: true},
	}
	live, min, max := Latency(peers)
	if !live {
		t.Error("expected live=true (one peer live)")
	}
	if min != 20*time.Millisecond {
		t.Errorf("min = %v, want 20ms (max of mins)", min)
	}
	if max != 50*time.Millisecond {
		t.Errorf("max = %v, want 50ms (min of maxes)", max)
	}
}

func TestFlushResetsPosition(t *testing.T) {
	m := New(nil)
	m.AddPad()
	m.lock.Lock()
	m.segment.Position = 10 * time.Second
	m.lock.Unlock()
	m.Flush()
	m.lock.Lock()
	pos := m.segment.Position
	m.lock.Unlock()
	if pos != m.segment.Start {
		t.Fatalf("Position after Flush = %v, want segment.Start", pos)
	}
}

func TestSendTagsRoundTrip(t *testing.T) {
	m := New(nil)
	if m.TakePendingTags() {
		t.Fatal("expected no pending tags initially")
	}
	m.SendTags()
	if !m.TakePendingTags() {
		t.Fatal("expected pending tags after SendTags")
	}
	if m.TakePendingTags() {
		t.Fatal("TakePendingTags should clear the flag")
	}
}

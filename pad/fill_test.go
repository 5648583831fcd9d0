package pad

import (
	"testing"
	"time"

	"github.com/ausocean/videomixer/videoinfo"
)

func TestFillOneReadyBuffer(t *testing.T) {
	p := New()
	p.SetSegment(videoinfo.NewSegment())
	st := &State{}
	_ = p.Push(videoinfo.Buffer{
		Timestamp: 0,
		Duration:  time.Second,
		Info:      videoinfo.VideoInfo{FPSNum: 1, FPSDen: 1},
	})

	got := FillOne(p, st, 0)
	if got != Ready {
		t.Fatalf("FillOne = %v, want Ready", got)
	}
	if st.Buffer == nil {
		t.Fatal("expected a promoted buffer")
	}
	if st.StartTime != 0 || st.EndTime != time.Second {
		t.Errorf("interval = [%v,%v), want [0,1s)", st.StartTime, st.EndTime)
	}
}

func TestFillOneNeedMoreData(t *testing.T) {
	p := New()
	st := &State{}
	if got := FillOne(p, st, 0); got != NeedMoreData {
		t.Fatalf("FillOne = %v, want NeedMoreData", got)
	}
}

func TestFillOneEOS(t *testing.T) {
	p := New()
	p.SetEOS()
	st := &State{}
	if got := FillOne(p, st, 0); got != EOS {
		t.Fatalf("FillOne = %v, want EOS", got)
	}
}

func TestFillOneDropsBufferFromThePast(t *testing.T) {
	p := New()
	p.SetSegment(videoinfo.NewSegment())
	st := &State{}
	_ = p.Push(videoinfo.Buffer{
		Timestamp: 0,
		Duration:  500 * time.Millisecond,
	})

	got := FillOne(p, st, time.Second)
	if got != NeedMoreData {
		t.Fatalf("FillOne for stale buffer = %v, want NeedMoreData (dropped, queue now empty)", got)
	}
	if st.Buffer != nil {
		t.Error("stale buffer should not have been promoted")
	}
}

func TestFillOneAlreadyHasBuffer(t *testing.T) {
	p := New()
	buf := videoinfo.Buffer{Timestamp: time.Second}
	st := &State{Buffer: &buf}
	if got := FillOne(p, st, 0); got != Ready {
		t.Fatalf("FillOne with pre-existing buffer = %v, want Ready", got)
	}
}

func TestFillAllReducesStatus(t *testing.T) {
	ready := New()
	ready.SetSegment(videoinfo.NewSegment())
	_ = ready.Push(videoinfo.Buffer{Timestamp: 0, Duration: time.Second})

	waiting := New()

	pads := []*Pad{ready, waiting}
	states := []*State{{}, {}}

	if got := FillAll(pads, states, 0); got != StatusNeedMoreData {
		t.Fatalf("FillAll = %v, want StatusNeedMoreData", got)
	}
}

func TestFillOneMissingTimestampIsError(t *testing.T) {
	p := New()
	p.SetSegment(videoinfo.NewSegment())
	st := &State{}
	_ = p.Push(videoinfo.Buffer{
		Timestamp: videoinfo.Undefined,
		Duration:  time.Second,
	})

	got := FillOne(p, st, 0)
	if got != Error {
		t.Fatalf("FillOne for un-timestamped buffer = %v, want Error", got)
	}
	if st.Buffer != nil {
		t.Error("un-timestamped buffer should not have been promoted")
	}
}

func TestFillOneQueuesDurationlessBufferThenResolvesFromNext(t *testing.T) {
	p := New()
	p.SetSegment(videoinfo.NewSegment())
	st := &State{}
	_ = p.Push(videoinfo.Buffer{Timestamp: 0, Duration: videoinfo.Undefined})

	if got := FillOne(p, st, 0); got != NeedMoreData {
		t.Fatalf("FillOne with duration-less buffer and no successor = %v, want NeedMoreData", got)
	}
	if st.Queued == nil {
		t.Fatal("expected the duration-less buffer to be stashed as Queued")
	}

	_ = p.Push(videoinfo.Buffer{Timestamp: time.Second, Duration: time.Second})
	got := FillOne(p, st, 0)
	if got != Ready {
		t.Fatalf("FillOne once the next buffer arrives = %v, want Ready", got)
	}
	if st.Buffer == nil {
		t.Fatal("expected the queued buffer to be promoted")
	}
	if st.StartTime != 0 || st.EndTime != time.Second {
		t.Errorf("interval = [%v,%v), want [0,1s) (end defined by next buffer's start)", st.StartTime, st.EndTime)
	}
	if st.Queued == nil {
		t.Fatal("expected the just-arrived buffer to become the new Queued stash")
	}
}

func TestFillOneQueuedBufferEOSRunsOpenEnded(t *testing.T) {
	p := New()
	p.SetSegment(videoinfo.NewSegment())
	st := &State{}
	_ = p.Push(videoinfo.Buffer{Timestamp: time.Second, Duration: videoinfo.Undefined})
	if got := FillOne(p, st, 0); got != NeedMoreData {
		t.Fatalf("FillOne = %v, want NeedMoreData", got)
	}

	p.SetEOS()
	got := FillOne(p, st, 0)
	if got != Ready {
		t.Fatalf("FillOne at EOS with a queued buffer = %v, want Ready", got)
	}
	if st.Buffer == nil {
		t.Fatal("expected the queued buffer to be promoted at EOS")
	}
	if st.StartTime != time.Second || st.EndTime != videoinfo.Undefined {
		t.Errorf("interval = [%v,%v), want [1s,Undefined) (open-ended at EOS)", st.StartTime, st.EndTime)
	}
}

func TestFillAllAllEOS(t *testing.T) {
	a, b := New(), New()
	a.SetEOS()
	b.SetEOS()
	states := []*State{{}, {}}
	if got := FillAll([]*Pad{a, b}, states, 0); got != StatusEOS {
		t.Fatalf("FillAll = %v, want StatusEOS", got)
	}
}

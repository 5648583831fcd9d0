package negotiate

import (
	"errors"
	"testing"

	"github.com/ausocean/videomixer/videoinfo"
)

func TestUpdateOutputCapsGrowsToFitPositionedInputs(t *testing.T) {
	pads := []PadGeometry{
		{Info: videoinfo.VideoInfo{Width: 640, Height: 480, FPSNum: 30, FPSDen: 1}, XPos: 0, YPos: 0},
		{Info: videoinfo.VideoInfo{Width: 320, Height: 240, FPSNum: 25, FPSDen: 1}, XPos: 640, YPos: 0},
	}
	got := UpdateOutputCaps(videoinfo.UnknownInfo, pads)
	if got.Info.Width != 960 || got.Info.Height != 480 {
		t.Fatalf("Info = %+v, want 960x480", got.Info)
	}
	if got.Info.FPSNum != 30 || got.Info.FPSDen != 1 {
		t.Fatalf("FPS = %d/%d, want 30/1 (fastest input)", got.Info.FPSNum, got.Info.FPSDen)
	}
	if !got.FPSChanged {
		t.Error("expected FPSChanged true from unknown starting point")
	}
}

func TestUpdateOutputCapsFPSUnchanged(t *testing.T) {
	current := videoinfo.VideoInfo{FPSNum: 30, FPSDen: 1}
	pads := []PadGeometry{{Info: videoinfo.VideoInfo{Width: 100, Height: 100, FPSNum: 30, FPSDen: 1}}}
	got := UpdateOutputCaps(current, pads)
	if got.FPSChanged {
		t.Error("FPSChanged should be false when fastest input matches current fps")
	}
}

func TestElectFormatTieWithAlphaInputElectsAlpha(t *testing.T) {
	pads := []videoinfo.VideoInfo{
		{Format: videoinfo.I420},
		{Format: videoinfo.AYUV},
	}
	out, _, err := UpdateConverters(videoinfo.VideoInfo{}, pads, nil, nil)
	if err != nil {
		t.Fatalf("UpdateConverters: %v", err)
	}
	// Tie at 1 each; AYUV carries alpha, so the election is restricted
	// to alpha formats and I420 is not a candidate.
	if out.Format != videoinfo.AYUV {
		t.Errorf("elected format = %v, want AYUV (alpha required)", out.Format)
	}
}

func TestElectFormatMajorityVote(t *testing.T) {
	// No input carries alpha, so this is a plain majority vote.
	pads := []videoinfo.VideoInfo{
		{Format: videoinfo.I420}, {Format: videoinfo.I420}, {Format: videoinfo.NV12},
	}
	out, _, err := UpdateConverters(videoinfo.VideoInfo{}, pads, nil, nil)
	if err != nil {
		t.Fatalf("UpdateConverters: %v", err)
	}
	if out.Format != videoinfo.I420 {
		t.Errorf("elected format = %v, want I420 (majority)", out.Format)
	}
}

func TestElectFormatAlphaInputRestrictsToAlphaFormats(t *testing.T) {
	// AYUV is a minority (1 vs 2), but since it's the only alpha format
	// present, the election is restricted to alpha formats and AYUV wins
	// outright rather than merely breaking a tie.
	pads := []videoinfo.VideoInfo{
		{Format: videoinfo.I420}, {Format: videoinfo.I420}, {Format: videoinfo.AYUV},
	}
	out, _, err := UpdateConverters(videoinfo.VideoInfo{}, pads, nil, nil)
	if err != nil {
		t.Fatalf("UpdateConverters: %v", err)
	}
	if out.Format != videoinfo.AYUV {
		t.Errorf("elected format = %v, want AYUV (alpha required)", out.Format)
	}
}

func TestElectFormatFailsWhenDownstreamCannotSupportAlpha(t *testing.T) {
	pads := []videoinfo.VideoInfo{{Format: videoinfo.AYUV}}
	downstream := []videoinfo.Format{videoinfo.I420}
	_, _, err := UpdateConverters(videoinfo.VideoInfo{}, pads, nil, downstream)
	if err == nil {
		t.Fatal("expected negotiation failure: AYUV input against I420-only downstream")
	}
	var nerr *Error
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *negotiate.Error, got %T", err)
	}
	if nerr.Reason != ReasonFormatMismatch {
		t.Errorf("Reason = %v, want ReasonFormatMismatch", nerr.Reason)
	}
}

func TestUpdateConvertersFlagsChange(t *testing.T) {
	pads := []videoinfo.VideoInfo{{Format: videoinfo.I420}}
	prev := []videoinfo.VideoInfo{{Format: videoinfo.AYUV}}
	_, targets, err := UpdateConverters(videoinfo.VideoInfo{Width: 10, Height: 10}, pads, prev, nil)
	if err != nil {
		t.Fatalf("UpdateConverters: %v", err)
	}
	if len(targets) != 1 || !targets[0].Changed {
		t.Fatalf("targets = %+v, want one Changed target", targets)
	}
}

func TestAcceptInputFormatRejectsParMismatch(t *testing.T) {
	out := videoinfo.VideoInfo{Format: videoinfo.I420, PARNum: 1, PARDen: 1}
	candidate := videoinfo.VideoInfo{Format: videoinfo.I420, PARNum: 4, PARDen: 3}
	err := AcceptInputFormat(out, candidate)
	if err == nil {
		t.Fatal("expected rejection for mismatched PAR")
	}
	var nerr *Error
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *negotiate.Error, got %T", err)
	}
	if nerr.Reason != ReasonParOrInterlaceMismatch {
		t.Errorf("Reason = %v, want ReasonParOrInterlaceMismatch", nerr.Reason)
	}
}

func TestAcceptInputFormatUnknownOutputAlwaysAccepts(t *testing.T) {
	candidate := videoinfo.VideoInfo{Format: videoinfo.I420, PARNum: 4, PARDen: 3}
	if err := AcceptInputFormat(videoinfo.UnknownInfo, candidate); err != nil {
		t.Fatalf("expected acceptance against unfixed output, got %v", err)
	}
}

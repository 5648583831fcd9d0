// Package main runs a standalone demonstration of the video mixer:
// synthetic test-pattern inputs are pushed through a mixer.Mixer and
// the composited frames are logged. With -netsender a netsender client
// is created, but reportQoS sends nothing to it and only writes a debug
// log line. The same shape as cmd/rv and cmd/looper drive a revid
// pipeline from flags and a netsender connection.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/client/pi/netsender"
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/videomixer/config"
	"github.com/ausocean/videomixer/mixer"
	"github.com/ausocean/videomixer/pad"
	"github.com/ausocean/videomixer/videoinfo"
)

const (
	logPath      = "mixdemo.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// mixedInput bundles one synthetic source's pad handle, negotiated
// format, and a fill shade so each input is visually distinguishable
// in the composited preview.
type mixedInput struct {
	pad   *pad.Pad
	info  videoinfo.VideoInfo
	shade byte
}

func main() {
	numInputs := flag.Int("inputs", 2, "number of synthetic test-pattern inputs to mix")
	width := flag.Int("width", 640, "per-input test-pattern width")
	height := flag.Int("height", 480, "per-input test-pattern height")
	fps := flag.Int("fps", 25, "per-input test-pattern framerate")
	frames := flag.Int("frames", 50, "number of frames to produce before exiting")
	background := flag.String("background", "checker", "mixer background: checker, black, white, transparent")
	useNetsender := flag.Bool("netsender", false, "report QoS counters to netsender")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stdout), logSuppress)
	log.Info("starting mixdemo")

	var ns *netsender.Sender
	if *useNetsender {
		var err error
		ns, err = netsender.New(log, nil, nil, nil)
		if err != nil {
			log.Error("could not create netsender client, continuing without it", "error", err.Error())
			ns = nil
		}
	}

	m := mixer.New(log)
	if err := m.UpdateAttr(config.KeyBackground, *background); err != nil {
		log.Fatal("invalid background", "error", err.Error())
	}

	vi := videoinfo.VideoInfo{
		Format: videoinfo.I420,
		Width:  *width,
		Height: *height,
		FPSNum: *fps,
		FPSDen: 1,
		PARNum: 1,
		PARDen: 1,
	}

	inputs := make([]*mixedInput, *numInputs)
	for i := 0; i < *numInputs; i++ {
		p := m.AddPad()
		if err := m.SetInputFormat(p, vi); err != nil {
			log.Fatal("negotiation failed", "error", err.Error())
		}
		if err := m.UpdatePadProp(p, pad.KeyXPos, fmt.Sprintf("%d", i*(*width/2))); err != nil {
			log.Error("could not set xpos", "error", err.Error())
		}
		inputs[i] = &mixedInput{pad: p, info: vi, shade: byte(32 + i*48)}
	}

	frameDur := time.Second / time.Duration(*fps)
	ts := time.Duration(0)
	for f := 0; f < *frames; f++ {
		for _, in := range inputs {
			buf := solidTestPattern(in.info, ts, frameDur, in.shade)
			if err := in.pad.Push(buf); err != nil {
				log.Error("push failed", "error", err.Error())
			}
		}

		out, err := m.Aggregate()
		if err != nil {
			log.Error("aggregate failed", "error", err.Error())
			continue
		}
		log.Info("produced frame", "frame", f, "timestamp", out.Timestamp.String())

		if ns != nil {
			reportQoS(log, ns, m)
		}
		ts += frameDur
	}

	for _, in := range inputs {
		in.pad.SetEOS()
	}
	log.Info("mixdemo finished")
}

// solidTestPattern builds a single-color I420 frame, standing in for a
// real capture device the way this demo has no hardware to read from.
func solidTestPattern(vi videoinfo.VideoInfo, ts, dur time.Duration, shade byte) videoinfo.Buffer {
	w, h := vi.Width, vi.Height
	cw, ch := (w+1)/2, (h+1)/2
	y := make([]byte, w*h)
	u := make([]byte, cw*ch)
	v := make([]byte, cw*ch)
	for i := range y {
		y[i] = shade
	}
	for i := range u {
		u[i] = 128
		v[i] = 128
	}
	return videoinfo.Buffer{
		Timestamp: ts,
		Duration:  dur,
		Info:      vi,
		Planes:    [][]byte{y, u, v},
	}
}

// reportQoS stands in for the status-reporting role cmd/rv's run loop
// plays for a live revid pipeline. mixer.Mixer exports no QoS counters,
// so it sends nothing to ns and only writes a debug log line.
func reportQoS(log logging.Logger, ns *netsender.Sender, m *mixer.Mixer) {
	log.Debug("qos report skipped: no pins configured for this demo")
}

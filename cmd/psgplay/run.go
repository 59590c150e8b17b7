package main

import (
	"fmt"
	"os"
	"time"

	"p6psg/backend"
	"p6psg/backend/headless"
	"p6psg/backend/synth"
	"p6psg/driver"
	"p6psg/internal/log"
	"p6psg/loader"
	"p6psg/uisink"
	"p6psg/uisink/term"
	"p6psg/uisink/trace"
)

const (
	tickPeriod = 2 * time.Millisecond
	maxCatchUp = 50 // host-loop catch-up bound
)

func infoMain(args InfoCmd) {
	cs, err := loader.LoadFile(args.Path)
	checkf(err, "failed to load %s", args.Path)

	fmt.Printf("channel A: %d bytes\n", len(cs.A))
	fmt.Printf("channel B: %d bytes\n", len(cs.B))
	fmt.Printf("channel C: %d bytes\n", len(cs.C))
}

func playMain(args PlayCmd) {
	cs, err := loader.LoadFile(args.Path)
	checkf(err, "failed to load %s", args.Path)

	be, synthBackend := buildBackend(args)
	checkf(be.Init(), "backend init failed")
	checkf(be.Enable(), "backend enable failed")
	defer be.Fini()

	sink, closeSink := buildSink(args)
	if closeSink != nil {
		defer closeSink()
	}

	d := driver.New(driver.DefaultOptions())
	log.RegisterContext(d)
	defer log.UnregisterContext(d)
	d.SetBackend(be)
	if sink != nil {
		d.SetObserver(sink)
	}
	d.SetChannelData(0, cs.A)
	d.SetChannelData(1, cs.B)
	d.SetChannelData(2, cs.C)
	d.Start()

	droppedTicks := runLoop(d, synthBackend, args.MaxTicks)
	if droppedTicks > 0 {
		log.ModPlayer.WarnZ("host loop dropped ticks").Uint("count", uint(droppedTicks)).End()
	}

	if synthBackend != nil && args.Out != "" {
		f, err := os.Create(args.Out)
		checkf(err, "failed to create %s", args.Out)
		defer f.Close()
		checkf(synthBackend.WriteWAV(f), "failed to write %s", args.Out)
	}
}

// runLoop drives the driver at a fixed 2 ms cadence,
// catching up to maxCatchUp ticks when the host falls behind, and
// returns how many ticks were dropped because even the catch-up budget
// was exceeded.
func runLoop(d *driver.Driver, sb *synth.Backend, maxTicks int) int {
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	lastTick := time.Now()
	ticks := 0
	dropped := 0

	for range ticker.C {
		elapsed := time.Since(lastTick)
		due := int(elapsed / tickPeriod)
		if due < 1 {
			due = 1
		}
		if due > maxCatchUp {
			dropped += due - maxCatchUp
			due = maxCatchUp
		}
		lastTick = lastTick.Add(time.Duration(due) * tickPeriod)

		for i := 0; i < due; i++ {
			d.Tick()
			if sb != nil {
				sb.Advance()
			}
			ticks++
			if maxTicks > 0 && ticks >= maxTicks {
				return dropped
			}
		}

		if maxTicks == 0 && !d.Active() {
			return dropped
		}
	}
	return dropped
}

func buildBackend(args PlayCmd) (backend.Backend, *synth.Backend) {
	switch args.Backend {
	case "headless":
		return headless.New(), nil
	default:
		sb := synth.New(args.SampleRate)
		return sb, sb
	}
}

func buildSink(args PlayCmd) (uisink.Sink, func()) {
	switch args.UI {
	case "term":
		s := term.New(os.Stdout)
		return s, func() { s.Close() }
	case "trace":
		s := trace.New(os.Stdout)
		return s, nil
	default:
		return nil, nil
	}
}

// Package driver implements the PC-6001 PSG bytecode sequencer: the
// per-channel interpreter and voicing engine that turns three bytecode
// streams into a stream of AY-3-8910/YM2149 register writes and note
// events, ticked at a fixed 2 ms cadence.
package driver

import "p6psg/internal/log"

// RegWriter receives PSG register writes. Structurally, any backend
// implementing WriteReg(reg, val uint8) satisfies this without driver
// importing a backend package: the driver owns neither its backend nor its
// UI sink.
type RegWriter interface {
	WriteReg(reg, val uint8)
}

// Observer receives both register writes and note events, mirroring a UI
// sink's contract without the driver depending on the uisink package.
type Observer interface {
	OnRegisterWrite(reg, val uint8)
	OnNoteEvent(ch int, octave, note, volume uint8, length uint16, isRest bool, bpmX10 uint16)
}

// Driver owns the three channels and the shared register-6/register-7
// shadow state. One Driver belongs to exactly one host goroutine; Tick must
// not be called concurrently.
type Driver struct {
	tempoVal     uint8
	tempoCounter uint8
	bpmX10       uint16

	reg6Value     uint8
	reg7Value     uint8
	iCommandValue uint8

	fadeValue  int8
	fadeStep   int8
	fadeActive bool

	channels [3]Channel

	backend  RegWriter
	observer Observer

	opts Options

	tickCount uint64
}

// New creates a driver with the documented defaults and no backend/observer
// attached; both can be set any time before the first Tick.
func New(opts Options) *Driver {
	d := &Driver{
		tempoVal:     10,
		tempoCounter: 10,
		bpmX10:       bpmX10(10),
		reg7Value:    0xF8,
		opts:         opts,
	}
	for i := range d.channels {
		d.channels[i].reset(i)
	}
	return d
}

// SetBackend attaches the register-write sink. Pass nil to detach.
func (d *Driver) SetBackend(b RegWriter) { d.backend = b }

// SetObserver attaches the register-write/note-event observer, typically a
// uisink.Sink or a uisink.Multi fan-out. Pass nil to detach.
func (d *Driver) SetObserver(o Observer) { d.observer = o }

// SetChannelData loads a bytecode stream into channel ch (0=A, 1=B, 2=C).
// Out-of-range indices are silently ignored.
func (d *Driver) SetChannelData(ch int, data []byte) {
	if ch < 0 || ch >= len(d.channels) {
		return
	}
	d.channels[ch].setData(data)
}

// Start is idempotent with SetChannelData: channels become active as soon
// as they are given data. Start exists for symmetry with Stop and to let a
// host mark song playback as begun without touching channel state.
func (d *Driver) Start() {
	d.tempoCounter = d.tempoVal
}

// Stop writes zero volume to all three voices and deactivates them, per
// the documented stop behavior.
func (d *Driver) Stop() {
	for i := range d.channels {
		d.writeVolume(&d.channels[i], 0)
		d.channels[i].active = false
	}
}

// Active reports whether any channel is still decoding its bytecode
// stream. A host loop typically calls Tick until this becomes false.
func (d *Driver) Active() bool {
	for i := range d.channels {
		if d.channels[i].active {
			return true
		}
	}
	return false
}

// GetICommand returns the value last stored by bytecode opcode I (0xF4),
// exposed for host-side use (e.g. synchronizing visual cues to the score).
func (d *Driver) GetICommand() uint8 { return d.iCommandValue }

// BPMx10 returns the current tempo as BPM times ten.
func (d *Driver) BPMx10() uint16 { return d.bpmX10 }

// UnknownOpcodeCount returns the number of unrecognized command bytes
// encountered on channel ch since it was loaded.
func (d *Driver) UnknownOpcodeCount(ch int) uint64 {
	if ch < 0 || ch >= len(d.channels) {
		return 0
	}
	return d.channels[ch].UnknownOpcodes
}

// SetFade starts (or stops, with step 0) a linear fade of global volume
// attenuation applied on top of every channel's emitted volume: step is
// added to the running fade value once per channel tick, clamped to
// [0,15]; a step of 0 disables the fade. The ticks argument is not used.
func (d *Driver) SetFade(step int8, ticks int) {
	if step == 0 {
		d.fadeActive = false
		return
	}
	d.fadeStep = step
	d.fadeActive = true
	if d.fadeValue == 0 && step < 0 {
		d.fadeValue = 15
	}
	_ = ticks
}

// Tick is the host's 2 ms entry point. It is safe to call repeatedly for
// catch-up; each call is equivalent to exactly one 2 ms tick elapsing.
func (d *Driver) Tick() {
	d.tickCount++

	d.tempoCounter--
	if d.tempoCounter != 0 {
		return
	}
	d.tempoCounter = d.tempoVal

	if d.fadeActive {
		d.stepFade()
	}

	d.tickChannel(&d.channels[0])
	d.tickChannel(&d.channels[1])
	d.tickChannel(&d.channels[2])
}

// AddLogContext implements log.Context: while registered with
// log.RegisterContext, it stamps every EntryZ emitted anywhere in the
// process with the tick count this Driver has reached, so a host running
// one driver never has to thread a tick number through its own log calls.
func (d *Driver) AddLogContext(z *log.EntryZ) {
	z.Uint64("tick", d.tickCount)
}

func (d *Driver) stepFade() {
	v := int(d.fadeValue) + int(d.fadeStep)
	if v <= 0 {
		v = 0
		d.fadeActive = false
	}
	if v >= 15 {
		v = 15
		d.fadeActive = false
	}
	d.fadeValue = int8(v)
}

func (d *Driver) emitReg(reg, val uint8) {
	if d.backend != nil {
		d.backend.WriteReg(reg, val)
	}
	if d.observer != nil {
		d.observer.OnRegisterWrite(reg, val)
	}
}

// writeVolume applies the active fade (if any) on top of the channel's
// requested volume before emitting the register write.
func (d *Driver) writeVolume(ch *Channel, vol uint8) {
	out := vol
	if d.fadeActive && uint8(d.fadeValue) < out {
		out = uint8(d.fadeValue)
	}
	d.emitReg(regAVol(ch.channelIndex), out)
}

func (d *Driver) emitNoteEvent(ch *Channel, octave, note, volume uint8, length uint16, isRest bool) {
	if d.observer == nil {
		return
	}
	d.observer.OnNoteEvent(ch.channelIndex, octave, note, volume, length, isRest, d.bpmX10)
}

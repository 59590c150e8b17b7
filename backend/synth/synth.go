// Package synth renders the register writes the driver produces into
// actual PCM, so a song can be heard without real YM2149 hardware. Audio
// synthesis is kept out of the core sequencer on purpose, but a backend is
// an external collaborator, and a backend that produces nothing audible
// makes the rest of the repository hard to exercise end to end.
//
// Modeled closely on an NES APU's timer/mixer pair: each voice is a timer
// that toggles its output and reports the delta through AddDelta into a
// github.com/arl/blip.Buffer, which band-limits and resamples to the
// output rate.
package synth

import (
	"encoding/binary"
	"io"

	"github.com/arl/blip"

	"p6psg/backend"
)

// chipClockHz is the YM2149's typical wiring on the reference hardware
// this driver targets: a 2.000 MHz crystal.
const chipClockHz = 2_000_000

// voice holds one AY-3-8910 tone generator's state, in the style of an
// NES APU timer: a countdown to the next output toggle, plus the
// last delta reported to the shared blip.Buffer.
type voice struct {
	period     uint16 // 12-bit tone period
	volume     uint8  // 0..15, pre-fade/mixer
	enabled    bool   // tone bit of register 7 for this voice
	amplitude  int16  // envelope-less fixed amplitude derived from volume

	counter       uint32
	previousCycle uint32
	lastOutput    int16
	output        int16 // +amplitude or -amplitude
}

func (v *voice) halfPeriodCycles() uint32 {
	// f = clock / (16 * period); a full square wave has two toggles, so
	// each half lasts 16*period/2 == 8*period cycles of the chip clock
	// (the clock rate the blip.Buffer is set to).
	p := uint32(v.period)
	if p == 0 {
		p = 1
	}
	return p * 8
}

func (v *voice) addOutput(buf *blip.Buffer, out int16) {
	if out != v.lastOutput {
		buf.AddDelta(uint64(v.previousCycle), int32(out-v.lastOutput))
		v.lastOutput = out
	}
}

// run advances the voice's oscillator up to targetCycle, toggling and
// reporting deltas as it crosses half-period boundaries.
func (v *voice) run(buf *blip.Buffer, targetCycle uint32) {
	if !v.enabled || v.volume == 0 {
		v.addOutput(buf, 0)
		v.previousCycle = targetCycle
		return
	}
	half := v.halfPeriodCycles()
	for targetCycle-v.previousCycle >= half {
		v.previousCycle += half
		v.output = -v.output
		if v.output == 0 {
			v.output = v.amplitude
		}
		v.addOutput(buf, v.output)
	}
}

// noise is a 17-bit linear feedback shift register, the common AY-3-8910
// noise generator approximation (feedback from bit 0 XOR bit 3).
type noise struct {
	period    uint8 // 5-bit shared NOISEPER (register 6)
	enabledAny bool
	volume    uint8
	amplitude int16

	lfsr          uint32
	counter       uint32
	previousCycle uint32
	lastOutput    int16
	output        int16
}

func newNoise() *noise { return &noise{lfsr: 1} }

func (n *noise) halfPeriodCycles() uint32 {
	p := uint32(n.period & 0x1F)
	if p == 0 {
		p = 1
	}
	return p * 16
}

func (n *noise) addOutput(buf *blip.Buffer, out int16) {
	if out != n.lastOutput {
		buf.AddDelta(uint64(n.previousCycle), int32(out-n.lastOutput))
		n.lastOutput = out
	}
}

func (n *noise) run(buf *blip.Buffer, targetCycle uint32) {
	if !n.enabledAny || n.volume == 0 {
		n.addOutput(buf, 0)
		n.previousCycle = targetCycle
		return
	}
	half := n.halfPeriodCycles()
	for targetCycle-n.previousCycle >= half {
		n.previousCycle += half

		bit := (n.lfsr ^ (n.lfsr >> 3)) & 1
		n.lfsr = (n.lfsr >> 1) | (bit << 16)

		if n.lfsr&1 != 0 {
			n.output = n.amplitude
		} else {
			n.output = 0
		}
		n.addOutput(buf, n.output)
	}
}

// Backend implements backend.Backend by rendering register writes to a
// mono PCM stream via band-limited synthesis.
type Backend struct {
	shadow    backend.Shadow
	enabled   bool
	lastError string

	sampleRate int
	buf        *blip.Buffer
	cycle      uint32

	voices [3]voice
	noise  *noise

	samples []int16
}

var _ backend.Backend = (*Backend)(nil)

func New(sampleRate int) *Backend {
	b := &Backend{
		sampleRate: sampleRate,
		buf:        blip.NewBuffer(sampleRate),
		noise:      newNoise(),
	}
	b.buf.SetRates(chipClockHz, float64(sampleRate))
	for i := range b.voices {
		b.voices[i].output = 0
	}
	return b
}

func (b *Backend) Init() error { return nil }

func (b *Backend) Enable() error {
	b.enabled = true
	return nil
}

func (b *Backend) Disable() { b.enabled = false }

func (b *Backend) Reset() error {
	b.shadow = backend.Shadow{}
	b.buf.Clear()
	b.cycle = 0
	for i := range b.voices {
		b.voices[i] = voice{}
	}
	b.noise = newNoise()
	return nil
}

func amplitudeFromVolume(volume uint8) int16 {
	// Linear approximation of the AY-3-8910's roughly logarithmic volume
	// table; accurate enough for audible playback without hardware.
	return int16(volume) * 1800
}

// WriteReg updates voice/noise state from a single PSG register write.
// Register semantics follow driver/registers.go's layout exactly.
func (b *Backend) WriteReg(reg, val uint8) {
	if !b.enabled {
		b.lastError = "write_reg called while disabled"
		return
	}
	b.shadow.Set(reg, val)

	switch {
	case reg <= 5: // AFINE/ACOARSE .. CFINE/CCOARSE
		ch := int(reg) / 2
		v := &b.voices[ch]
		if reg%2 == 0 {
			v.period = (v.period &^ 0x00FF) | uint16(val)
		} else {
			v.period = (v.period & 0x00FF) | uint16(val&0x0F)<<8
		}
	case reg == 6: // NOISEPER
		b.noise.period = val & 0x1F
	case reg == 7: // ENABLE (mixer)
		for ch := range b.voices {
			b.voices[ch].enabled = val&(1<<uint(ch)) == 0
		}
		b.noise.enabledAny = val&0x38 != 0x38
	case reg >= 8 && reg <= 10: // AVOL/BVOL/CVOL
		ch := int(reg - 8)
		b.voices[ch].volume = val & 0x0F
		b.voices[ch].amplitude = amplitudeFromVolume(b.voices[ch].volume)
		b.noise.volume = maxUint8(b.noise.volume, b.voices[ch].volume)
		b.noise.amplitude = amplitudeFromVolume(b.noise.volume)
	}
}

func maxUint8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func (b *Backend) Fini() {}

func (b *Backend) LastError() string { return b.lastError }

// Advance runs all oscillators forward by the chip clock cycles
// corresponding to one elapsed 2 ms driver tick, and buffers the resulting
// samples for a later Flush. The host loop calls this once per
// driver.Tick.
func (b *Backend) Advance() {
	const cyclesPerTick = chipClockHz * 2 / 1000 // 2 ms worth of chip clock
	b.cycle += cyclesPerTick

	for i := range b.voices {
		b.voices[i].run(b.buf, b.cycle)
	}
	b.noise.run(b.buf, b.cycle)

	b.buf.EndFrame(int(b.cycle))
	avail := b.buf.SamplesAvailable()
	if avail == 0 {
		return
	}
	out := make([]int16, avail)
	n := b.buf.ReadSamples(out, avail, blip.Mono)
	b.samples = append(b.samples, out[:n]...)
}

// WriteWAV flushes every sample rendered so far as a 16-bit mono PCM WAV
// file. There is no ready-made WAV writer among the example pack's
// dependencies (github.com/arl/blip ships only the resampling buffer, not
// a container writer), so the RIFF header is assembled directly with
// encoding/binary — the smallest correct container for a single format
// this simple.
func (b *Backend) WriteWAV(w io.Writer) error {
	const bitsPerSample = 16
	const numChannels = 1
	dataSize := len(b.samples) * 2
	byteRate := b.sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	hdr := make([]byte, 44)
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(36+dataSize))
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(b.sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(hdr[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(hdr[34:36], bitsPerSample)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], uint32(dataSize))

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	payload := make([]byte, dataSize)
	for i, s := range b.samples {
		binary.LittleEndian.PutUint16(payload[i*2:i*2+2], uint16(s))
	}
	_, err := w.Write(payload)
	return err
}

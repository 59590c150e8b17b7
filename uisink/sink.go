// Package uisink defines the observer contract the driver reports to, and
// a fan-out that lets several sinks watch the same song.
package uisink

// Sink receives driver output: every register write and every committed
// note/rest event, alongside the channel it came from and the current
// tempo. A Sink never calls back into the driver ("no
// feedback into core" carries over unchanged).
type Sink interface {
	OnRegisterWrite(reg, val uint8)
	OnNoteEvent(ch int, octave, note, volume uint8, length uint16, isRest bool, bpmX10 uint16)
}

// Multi fans a single stream of events out to every sink it holds, in
// registration order. A nil entry is skipped rather than panicking, so
// callers can assemble a slice conditionally (e.g. "trace sink only if
// -trace was passed") without filtering it themselves.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Add(s Sink) {
	if s != nil {
		m.sinks = append(m.sinks, s)
	}
}

func (m *Multi) OnRegisterWrite(reg, val uint8) {
	for _, s := range m.sinks {
		if s != nil {
			s.OnRegisterWrite(reg, val)
		}
	}
}

func (m *Multi) OnNoteEvent(ch int, octave, note, volume uint8, length uint16, isRest bool, bpmX10 uint16) {
	for _, s := range m.sinks {
		if s != nil {
			s.OnNoteEvent(ch, octave, note, volume, length, isRest, bpmX10)
		}
	}
}

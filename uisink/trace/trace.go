// Package trace writes one JSON object per line for every register write
// and note event a driver produces, using github.com/go-faster/jx. A trace
// is meant for diffing driver behavior across runs (did a refactor change
// the byte-for-byte register sequence for a fixture song?), so it favors a
// byte-exact, allocation-light writer over encoding/json.
package trace

import (
	"io"

	"github.com/go-faster/jx"
)

// Sink implements uisink.Sink, emitting newline-delimited JSON to w.
type Sink struct {
	w   io.Writer
	enc *jx.Encoder
	seq uint64
}

func New(w io.Writer) *Sink {
	return &Sink{w: w, enc: &jx.Encoder{}}
}

func (s *Sink) writeLine() error {
	s.enc.RawStr("\n")
	_, err := s.w.Write(s.enc.Bytes())
	s.enc.Reset()
	return err
}

func (s *Sink) OnRegisterWrite(reg, val uint8) {
	s.seq++
	e := s.enc
	e.ObjStart()
	e.FieldStart("seq")
	e.UInt64(s.seq)
	e.FieldStart("kind")
	e.Str("reg")
	e.FieldStart("reg")
	e.UInt8(reg)
	e.FieldStart("val")
	e.UInt8(val)
	e.ObjEnd()
	_ = s.writeLine()
}

func (s *Sink) OnNoteEvent(ch int, octave, note, volume uint8, length uint16, isRest bool, bpmX10 uint16) {
	s.seq++
	e := s.enc
	e.ObjStart()
	e.FieldStart("seq")
	e.UInt64(s.seq)
	e.FieldStart("kind")
	e.Str("note")
	e.FieldStart("ch")
	e.Int(ch)
	e.FieldStart("octave")
	e.UInt8(octave)
	e.FieldStart("note")
	e.UInt8(note)
	e.FieldStart("volume")
	e.UInt8(volume)
	e.FieldStart("length")
	e.UInt16(length)
	e.FieldStart("rest")
	e.Bool(isRest)
	e.FieldStart("bpm_x10")
	e.UInt16(bpmX10)
	e.ObjEnd()
	_ = s.writeLine()
}

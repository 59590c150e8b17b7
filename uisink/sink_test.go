package uisink

import "testing"

type countingSink struct {
	regWrites int
	notes     int
}

func (c *countingSink) OnRegisterWrite(reg, val uint8) { c.regWrites++ }
func (c *countingSink) OnNoteEvent(ch int, octave, note, volume uint8, length uint16, isRest bool, bpmX10 uint16) {
	c.notes++
}

func TestMultiFansOutToEverySink(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMulti(a, b)
	m.Add(nil) // must not panic

	m.OnRegisterWrite(0, 1)
	m.OnNoteEvent(0, 4, 1, 15, 8, false, 800)

	for _, s := range []*countingSink{a, b} {
		if s.regWrites != 1 || s.notes != 1 {
			t.Fatalf("sink got regWrites=%d notes=%d, want 1 and 1", s.regWrites, s.notes)
		}
	}
}

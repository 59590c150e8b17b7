package term

import (
	"bytes"
	"strings"
	"testing"
)

func TestRendersOnNoteEvent(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.OnRegisterWrite(7, 0xF8)
	s.OnNoteEvent(0, 4, 1, 15, 8, false, 800)

	out := buf.String()
	if !strings.Contains(out, "Ch A: NOTE=C4") {
		t.Fatalf("missing channel A note line in output: %q", out)
	}
	if !strings.Contains(out, "bpm=80.0") {
		t.Fatalf("missing bpm line in output: %q", out)
	}
}

func TestSkipsRenderWhenNothingChanged(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.OnNoteEvent(0, 4, 1, 15, 8, false, 800)
	n1 := buf.Len()
	s.OnNoteEvent(0, 4, 1, 15, 8, false, 800) // identical event
	if buf.Len() != n1 {
		t.Fatalf("render happened again for an unchanged event: %d -> %d bytes", n1, buf.Len())
	}
}

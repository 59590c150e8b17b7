package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.OnRegisterWrite(7, 0xF8)
	s.OnNoteEvent(0, 4, 1, 15, 8, false, 800)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"kind":"reg"`) {
		t.Fatalf("first line missing reg kind: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"kind":"note"`) {
		t.Fatalf("second line missing note kind: %q", lines[1])
	}
}

func TestSequenceNumbersIncrease(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	s.OnRegisterWrite(0, 1)
	s.OnRegisterWrite(1, 2)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if !strings.Contains(lines[0], `"seq":1`) || !strings.Contains(lines[1], `"seq":2`) {
		t.Fatalf("sequence numbers did not increase: %v", lines)
	}
}

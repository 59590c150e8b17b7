package loader

import (
	"encoding/binary"
	"testing"
)

// buildFile assembles a minimal well-formed PC-6001 PSG object-data buffer
// with three single-byte (end-marker-only) channels.
func buildFile() []byte {
	buf := make([]byte, 8+3) // 6-byte header + 2 reserved bytes, then 3 one-byte channels
	binary.LittleEndian.PutUint16(buf[0:2], 8)
	binary.LittleEndian.PutUint16(buf[2:4], 9)
	binary.LittleEndian.PutUint16(buf[4:6], 10)
	buf[8] = 0xFF
	buf[9] = 0xFF
	buf[10] = 0xFF
	return buf
}

func TestLoadBytesWellFormed(t *testing.T) {
	buf := buildFile()
	cs, err := LoadBytes(buf)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if len(cs.A) != 1 || cs.A[0] != 0xFF {
		t.Fatalf("channel A = %v, want [0xFF]", cs.A)
	}
	if len(cs.B) != 1 || len(cs.C) != 1 {
		t.Fatalf("channel B/C lengths = %d/%d, want 1/1", len(cs.B), len(cs.C))
	}
}

func TestLoadBytesRejectsShortFile(t *testing.T) {
	if _, err := LoadBytes(make([]byte, 5)); err == nil {
		t.Fatal("expected error for short file")
	}
}

func TestLoadBytesRejectsBadAddressOrder(t *testing.T) {
	buf := buildFile()
	binary.LittleEndian.PutUint16(buf[2:4], 7) // bAddr < aAddr
	if _, err := LoadBytes(buf); err == nil {
		t.Fatal("expected error for bad address order")
	}
}

func TestLoadBytesRejectsMissingEndMarker(t *testing.T) {
	buf := buildFile()
	buf[10] = 0x00
	if _, err := LoadBytes(buf); err == nil {
		t.Fatal("expected error for missing end marker")
	}
}

func TestLoadBytesRejectsOversizeFile(t *testing.T) {
	buf := make([]byte, maxFileSize)
	binary.LittleEndian.PutUint16(buf[0:2], 8)
	binary.LittleEndian.PutUint16(buf[2:4], 9)
	binary.LittleEndian.PutUint16(buf[4:6], 10)
	if _, err := LoadBytes(buf); err == nil {
		t.Fatal("expected error for oversize file")
	}
}

package driver

import "testing"

func TestUnknownOpcodeCounted(t *testing.T) {
	d := New(DefaultOptions())
	// 0xC0 is unassigned; the decoder must not consume an operand for it
	// (the decode table's documented fallback: count it, don't consume an operand).
	d.SetChannelData(0, []byte{0xC0, 0x21, 8, 0xFF})
	chTicks(d, 1)

	if got := d.UnknownOpcodeCount(0); got != 1 {
		t.Fatalf("UnknownOpcodeCount = %d, want 1", got)
	}
	if !d.channels[0].active {
		t.Fatal("channel inactive after unknown opcode, want still decoding")
	}
}

func TestICommand(t *testing.T) {
	d := New(DefaultOptions())
	d.SetChannelData(0, []byte{0xF4, 0x2A, 0x21, 8, 0xFF})
	chTicks(d, 1)

	if got := d.GetICommand(); got != 0x2A {
		t.Fatalf("GetICommand() = %#x, want 0x2a", got)
	}
}

func TestTempoCommandUpdatesBPM(t *testing.T) {
	d := New(DefaultOptions())
	d.SetChannelData(0, []byte{0xF8, 5, 0, 0x21, 8, 0xFF})
	chTicks(d, 1)

	if d.tempoVal != 5 {
		t.Fatalf("tempoVal = %d, want 5", d.tempoVal)
	}
	if want := bpmX10(5); d.bpmX10 != want {
		t.Fatalf("bpmX10 = %d, want %d", d.bpmX10, want)
	}
}

func TestJumpReturnContinuesDecoding(t *testing.T) {
	d := New(DefaultOptions())
	events := &eventRecorder{}
	d.SetObserver(events)

	// J (0xFE) saves the cursor right after itself; once the note plays
	// out and End (0xFF) is reached, the cursor restores there and
	// decoding continues in the same tick, replaying 0x9F/0x21 forever.
	d.SetChannelData(0, []byte{
		0xFE,       // J
		0x9F,       // set volume 15
		0x21, 8,    // note, length 8
		0xFF,       // End: jumps back to just after J
	})

	chTicks(d, 1) // decodes J, volume, and the first note
	chTicks(d, 8) // note's wait elapses; End jumps back and decodes again

	if len(events.notes) != 2 {
		t.Fatalf("got %d notes, want 2 (jump-return should replay the note)", len(events.notes))
	}
	if !d.channels[0].active {
		t.Fatal("channel inactive, want jump-return to keep it decoding")
	}
	if d.channels[0].waitCounter != 8 {
		t.Fatalf("waitCounter = %d, want 8 after replaying the note", d.channels[0].waitCounter)
	}
}

func TestDetuneSignedAdd(t *testing.T) {
	d := New(DefaultOptions())
	d.SetChannelData(0, []byte{
		0xFB, 0x05, // U%: detune = +5
		0xFC, 0xF6, // U±: delta -10 (0xF6 as int8 = -10)
		0x21, 8,
		0xFF,
	})
	chTicks(d, 1)

	if d.channels[0].detune != s8(0x85) {
		t.Fatalf("detune = %#02x, want 0x85", uint8(d.channels[0].detune))
	}
}

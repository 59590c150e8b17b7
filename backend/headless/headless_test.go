package headless

import "testing"

func TestWriteRegUpdatesShadowOnceEnabled(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := b.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}

	b.WriteReg(8, 0x0F)
	if got := b.Shadow().Regs[8]; got != 0x0F {
		t.Fatalf("shadow[8] = %#x, want 0x0f", got)
	}
	if b.LastError() != "" {
		t.Fatalf("LastError = %q, want empty", b.LastError())
	}
}

func TestWriteRegWhileDisabledRecordsError(t *testing.T) {
	b := New()
	b.WriteReg(8, 0x0F)

	if b.LastError() == "" {
		t.Fatal("expected LastError to be set when writing while disabled")
	}
	if got := b.Shadow().Regs[8]; got != 0 {
		t.Fatalf("shadow[8] = %#x, want 0 (write should be ignored)", got)
	}
}

func TestResetClearsShadow(t *testing.T) {
	b := New()
	b.Init()
	b.Enable()
	b.WriteReg(0, 0xFF)

	if err := b.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := b.Shadow().Regs[0]; got != 0 {
		t.Fatalf("shadow[0] = %#x after Reset, want 0", got)
	}
}

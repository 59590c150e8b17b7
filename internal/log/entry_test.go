package log

import "testing"

type fakeContext struct{ tick uint64 }

func (f *fakeContext) AddLogContext(z *EntryZ) { z.Uint64("tick", f.tick) }

func TestRegisteredContextStampsField(t *testing.T) {
	EnableDebugModules(ModPlayer.Mask())
	defer DisableDebugModules(ModPlayer.Mask())

	ctx := &fakeContext{tick: 42}
	RegisterContext(ctx)
	defer UnregisterContext(ctx)

	z := newEntryZ()
	z.mod = ModPlayer
	z.lvl = DebugLevel
	z.msg = "test"

	for _, c := range contexts {
		c.AddLogContext(z)
	}

	if z.zfidx != 1 || z.zfbuf[0].Key != "tick" || z.zfbuf[0].Integer != 42 {
		t.Fatalf("zfbuf = %+v (idx %d), want one field tick=42", z.zfbuf[:z.zfidx], z.zfidx)
	}
}

func TestUnregisterContextRemovesIt(t *testing.T) {
	ctx := &fakeContext{tick: 1}
	RegisterContext(ctx)
	UnregisterContext(ctx)

	for _, c := range contexts {
		if c == ctx {
			t.Fatal("context still registered after UnregisterContext")
		}
	}
}

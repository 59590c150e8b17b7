// Package headless implements a backend.Backend that performs no hardware
// I/O: it maintains the register shadow and logs writes at debug level,
// in the style of an NES APU channel's debug-only register write path.
package headless

import (
	"p6psg/backend"
	"p6psg/internal/log"
)

type Backend struct {
	shadow    backend.Shadow
	enabled   bool
	lastError string
}

var _ backend.Backend = (*Backend)(nil)

func New() *Backend { return &Backend{} }

func (b *Backend) Init() error { return nil }

func (b *Backend) Enable() error {
	b.enabled = true
	log.ModBackend.Infof("headless backend enabled")
	return nil
}

func (b *Backend) Disable() {
	b.enabled = false
}

func (b *Backend) Reset() error {
	b.shadow = backend.Shadow{}
	return nil
}

func (b *Backend) WriteReg(reg, val uint8) {
	if !b.enabled {
		b.lastError = "write_reg called while disabled"
		return
	}
	b.shadow.Set(reg, val)

	z := log.ModBackend.DebugZ("psg register write")
	z.Uint8("reg", reg).Uint8("val", val).End()
}

func (b *Backend) Fini() {}

func (b *Backend) LastError() string { return b.lastError }

// Shadow exposes the current register mirror for inspection (tests,
// info-only CLI output).
func (b *Backend) Shadow() backend.Shadow { return b.shadow }

// Package loader reads PC-6001 PSG object-data files and splits them into
// the three per-channel bytecode slices the driver package consumes.
//
// A little-endian triplet of 16-bit addresses at the head of the file
// delimits channels A, B and C, and each resulting slice must end with
// the 0xFF end marker.
package loader

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	headerSize  = 6
	minFileSize = headerSize + 2 + 3
	maxFileSize = 0x10000
)

// ChannelSet holds the three borrowed, read-only bytecode slices produced
// by a load. The slices reference buf directly and are only valid for as
// long as buf is kept alive; LoadFile keeps its own buffer alive by
// returning it embedded in the ChannelSet.
type ChannelSet struct {
	A, B, C []byte

	buf []byte // keeps the backing array alive for LoadFile callers
}

// LoadFile reads path into memory and parses it with LoadBytes, keeping the
// file's buffer alive for the lifetime of the returned ChannelSet.
func LoadFile(path string) (ChannelSet, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return ChannelSet{}, fmt.Errorf("psg loader: read %s: %w", path, err)
	}
	cs, err := LoadBytes(buf)
	if err != nil {
		return ChannelSet{}, err
	}
	cs.buf = buf
	return cs, nil
}

// LoadBytes parses an in-memory PC-6001 PSG object-data buffer. The
// returned slices borrow buf; callers that discard buf before finishing
// with the ChannelSet must copy the slices themselves first.
func LoadBytes(buf []byte) (ChannelSet, error) {
	size := len(buf)
	if size < minFileSize {
		return ChannelSet{}, fmt.Errorf("psg loader: file too short (%d bytes, need at least %d)", size, minFileSize)
	}
	if size >= maxFileSize {
		return ChannelSet{}, fmt.Errorf("psg loader: file too large (%d bytes, max %d)", size, maxFileSize-1)
	}

	aAddr := binary.LittleEndian.Uint16(buf[0:2])
	bAddr := binary.LittleEndian.Uint16(buf[2:4])
	cAddr := binary.LittleEndian.Uint16(buf[4:6])

	if aAddr < headerSize+2 || aAddr >= bAddr || bAddr >= cAddr || int(cAddr) > size {
		return ChannelSet{}, fmt.Errorf("psg loader: invalid address layout (a=%#x b=%#x c=%#x size=%#x)", aAddr, bAddr, cAddr, size)
	}

	a := buf[aAddr:bAddr]
	b := buf[bAddr:cAddr]
	c := buf[cAddr:size]

	for _, ch := range [...]struct {
		name string
		data []byte
	}{{"A", a}, {"B", b}, {"C", c}} {
		if len(ch.data) == 0 || ch.data[len(ch.data)-1] != 0xFF {
			return ChannelSet{}, fmt.Errorf("psg loader: channel %s has no end marker", ch.name)
		}
	}

	return ChannelSet{A: a, B: b, C: c}, nil
}

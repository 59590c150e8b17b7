package driver

// toneTableOct0 gives the 12-bit tone period for octave 0, index 0 = rest,
// 1..12 = C..B chromatic. Values are AY-3-8910 clock dividers for the
// PC-6001's PSG clock.
var toneTableOct0 = [13]uint16{
	0x0000, // 0: rest
	0x1DDD, // 1: C
	0x1C2F, // 2: C#
	0x1A9A, // 3: D
	0x191C, // 4: D#
	0x17B3, // 5: E
	0x165F, // 6: F
	0x151D, // 7: F#
	0x13EE, // 8: G
	0x12D0, // 9: G#
	0x11C1, // 10: A
	0x10C2, // 11: A#
	0x0FD2, // 12: B
}

const (
	minPeriod = 1
	maxPeriod = 0x0FFF
)

// tone returns the 12-bit tone period for the given octave (1..8) and note
// (0 = rest, 1..12 = chromatic). Returns 0 for a rest or an out-of-range
// octave/note.
func tone(octave, note uint8) uint16 {
	if note == 0 || note > 12 || octave < 1 || octave > 8 {
		return 0
	}
	return toneTableOct0[note] >> octave
}

// applyDetune adjusts a tone period by a sign-magnitude detune byte: bit 7
// clear subtracts the magnitude (raises pitch), bit 7 set adds it (lowers
// pitch). Result is clamped to [minPeriod, maxPeriod].
func applyDetune(period uint16, detune int8) uint16 {
	d := uint8(detune)
	mag := int32(d & 0x7F)
	var p int32
	if d&0x80 == 0 {
		p = int32(period) - mag
	} else {
		p = int32(period) + mag
	}
	return clampPeriod(p)
}

func clampPeriod(p int32) uint16 {
	if p < minPeriod {
		return minPeriod
	}
	if p > maxPeriod {
		return maxPeriod
	}
	return uint16(p)
}

// addSignMagnitude applies a signed delta to a sign-magnitude byte (bit 7
// sign, bits 6..0 magnitude) by converting to two's complement, adding, and
// re-encoding.
func addSignMagnitude(detune int8, delta int8) int8 {
	d := uint8(detune)
	var twos int8
	if d&0x80 == 0 {
		twos = int8(d & 0x7F)
	} else {
		twos = -int8(d & 0x7F)
	}
	twos += delta

	if twos < 0 {
		return int8(0x80 | (uint8(-twos) & 0x7F))
	}
	return int8(uint8(twos) & 0x7F)
}

func clampVolume(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 15 {
		return 15
	}
	return uint8(v)
}

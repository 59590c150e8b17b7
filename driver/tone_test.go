package driver

import "testing"

// s8 performs a wrapping uint8->int8 conversion at runtime, letting test
// literals express the intended bit pattern without triggering a
// constant-overflow compile error.
func s8(u uint8) int8 { return int8(u) }

func TestTone(t *testing.T) {
	cases := []struct {
		octave, note uint8
		want         uint16
	}{
		{4, 1, 0x01DD},
		{5, 1, 0x00EE},
		{0, 1, 0},
		{9, 1, 0},
		{4, 0, 0},
	}
	for _, c := range cases {
		if got := tone(c.octave, c.note); got != c.want {
			t.Errorf("tone(%d,%d) = %#04x, want %#04x", c.octave, c.note, got, c.want)
		}
	}
}

func TestAddSignMagnitude(t *testing.T) {
	cases := []struct {
		detune, delta, want int8
	}{
		{0x05, -10, s8(0x85)},
		{s8(0x83), 5, 0x02},
	}
	for _, c := range cases {
		if got := addSignMagnitude(c.detune, c.delta); got != c.want {
			t.Errorf("addSignMagnitude(%#02x, %d) = %#02x, want %#02x",
				uint8(c.detune), c.delta, uint8(got), uint8(c.want))
		}
	}
}

func TestApplyDetuneClampsToPeriodRange(t *testing.T) {
	if got := applyDetune(5, 0x7F); got != minPeriod {
		t.Errorf("applyDetune(5, -127) = %#x, want %#x", got, minPeriod)
	}
	if got := applyDetune(maxPeriod, s8(0xFF)); got != maxPeriod {
		t.Errorf("applyDetune(maxPeriod, +127) = %#x, want %#x", got, maxPeriod)
	}
}

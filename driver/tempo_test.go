package driver

import "testing"

func TestBPMx10(t *testing.T) {
	cases := []struct {
		t96  uint8
		want uint16
	}{
		{10, 1250},
		{0, 0},
	}
	for _, c := range cases {
		if got := bpmX10(c.t96); got != c.want {
			t.Errorf("bpmX10(%d) = %d, want %d", c.t96, got, c.want)
		}
	}
}

package prayer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-30, 330},
		{-720, 0},
		{-1e-15, 0},
		{1e9 + 10, math.Mod(1e9+10, 360)},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize360(tt.in), 1e-9, "Normalize360(%v)", tt.in)
	}
}

func TestNormalize_IdempotentAndInRange(t *testing.T) {
	inputs := []float64{-1e6, -361.25, -0.0001, 0, 12.5, 23.99, 24, 359.999, 360, 1234.5678, 7e8}
	for _, x := range inputs {
		a := Normalize360(x)
		if a < 0 || a >= 360 {
			t.Errorf("Normalize360(%v) = %v, out of range", x, a)
		}
		if Normalize360(a) != a {
			t.Errorf("Normalize360 not idempotent for %v", x)
		}

		h := Normalize24(x)
		if h < 0 || h >= 24 {
			t.Errorf("Normalize24(%v) = %v, out of range", x, h)
		}
		if Normalize24(h) != h {
			t.Errorf("Normalize24 not idempotent for %v", x)
		}
	}
}

func TestHoursToClock(t *testing.T) {
	tests := []struct {
		in         float64
		hour, mins int
	}{
		{0, 0, 0},
		{12.5, 12, 30},
		{12.999, 12, 59},
		{24, 0, 0},
		{25.5, 1, 30},
		{-0.5, 23, 30},
		{-24.25, 23, 45},
		{4.0981, 4, 5},
	}
	for _, tt := range tests {
		h, m := HoursToClock(tt.in)
		if h != tt.hour || m != tt.mins {
			t.Errorf("HoursToClock(%v) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.mins)
		}
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "04:05", FormatClock(4.0981))
	assert.Equal(t, "23:30", FormatClock(-0.5))
	assert.Equal(t, "00:00", FormatClock(48))
}

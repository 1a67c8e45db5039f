package prayer

import (
	"fmt"
	"math"
)

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalize folds x into [0, n) in a single step.
func normalize(x, n float64) float64 {
	r := x - n*math.Floor(x/n)
	// x slightly below zero can round up to exactly n.
	if r >= n {
		r -= n
	}
	return r
}

// Normalize360 folds an angle in degrees into [0, 360).
// x must be finite.
func Normalize360(x float64) float64 {
	return normalize(x, 360)
}

// Normalize24 folds an hour value into [0, 24).
// x must be finite.
func Normalize24(x float64) float64 {
	return normalize(x, 24)
}

// HoursToClock splits a raw hour value into a 24-hour clock hour and minute.
// Seconds are truncated, so 12.999 becomes 12:59.
func HoursToClock(x float64) (hour, minute int) {
	hour = int(math.Floor(Normalize24(x)))
	minute = int(math.Floor(Normalize24(x-float64(hour)) * 60))
	return hour, minute
}

// FormatClock renders a raw hour value as "HH:MM".
func FormatClock(x float64) string {
	h, m := HoursToClock(x)
	return fmt.Sprintf("%02d:%02d", h, m)
}

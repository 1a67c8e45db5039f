package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayNumber(t *testing.T) {
	assert.Equal(t, -0.5, dayNumber(2000, 1, 1))
	assert.Equal(t, 8571.5, dayNumber(2023, 6, 21))
	assert.Equal(t, 8779.5, dayNumber(2024, 1, 15))
	assert.Equal(t, 1.0, dayNumber(2000, 1, 3)-dayNumber(2000, 1, 2))
}

func TestSolarGeometry_Declination(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             float64
		delta            float64
	}{
		{"june solstice", 2023, 6, 21, 23.434, 0.01},
		{"december solstice", 2024, 12, 21, -23.435, 0.01},
		{"march equinox", 2024, 3, 20, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sun := solarGeometry(tt.year, tt.month, tt.day, 0)
			assert.InDelta(t, tt.want, sun.Declination, tt.delta)
		})
	}
}

func TestSolarGeometry_LongitudeShiftsNoon(t *testing.T) {
	greenwich := solarGeometry(2023, 6, 21, 0)
	east := solarGeometry(2023, 6, 21, 15)

	assert.Equal(t, greenwich.Declination, east.Declination)
	// 15 degrees east is one hour earlier in UTC.
	assert.InDelta(t, greenwich.UTNoon/15-1, east.UTNoon/15, 1e-9)
}

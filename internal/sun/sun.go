// Package sun reports where the sun is right now, as a companion to the
// computed schedule.
package sun

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Position is the sun's apparent place in the sky, in degrees.
// Azimuth is a compass bearing, clockwise from north.
type Position struct {
	Altitude float64
	Azimuth  float64
}

// Phase names the part of the day implied by the sun's altitude.
type Phase string

const (
	Day                  Phase = "day"
	CivilTwilight        Phase = "civil twilight"
	NauticalTwilight     Phase = "nautical twilight"
	AstronomicalTwilight Phase = "astronomical twilight"
	Night                Phase = "night"
)

// At returns the sun's position at t for an observer at lat/lon.
func At(t time.Time, lat, lon float64) Position {
	p := suncalc.GetPosition(t, lat, lon)
	return Position{
		Altitude: p.Altitude * 180 / math.Pi,
		// suncalc measures azimuth from south, westward positive.
		Azimuth: math.Mod(p.Azimuth*180/math.Pi+180+360, 360),
	}
}

// Phase classifies the position by the standard twilight depths.
func (p Position) Phase() Phase {
	switch {
	case p.Altitude >= -0.8333:
		return Day
	case p.Altitude >= -6:
		return CivilTwilight
	case p.Altitude >= -12:
		return NauticalTwilight
	case p.Altitude >= -18:
		return AstronomicalTwilight
	}
	return Night
}

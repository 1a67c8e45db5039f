package geo

import (
	"fmt"
	"math"
	"time"

	// Zone lookups must work on hosts without a system zoneinfo database.
	_ "time/tzdata"
)

// Zone is a time zone resolved for a particular calendar day.
type Zone struct {
	Name        string  // IANA name, or "UTC+03:00" for fixed offsets
	Abbrev      string  // abbreviation in effect on the day, e.g. "BST"
	OffsetHours float64 // offset from UTC on the day, DST included
	Location    *time.Location
}

// Offset renders OffsetHours as "+03:00".
func (z Zone) Offset() string {
	return FormatOffset(z.OffsetHours)
}

// LookupZone resolves an IANA zone name and reports its UTC offset at local
// noon of date, so DST transitions in the small hours do not matter.
func LookupZone(name string, date time.Time) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return zoneAt(name, loc, date), nil
}

// LocalZone is the system zone on date.
func LocalZone(date time.Time) Zone {
	return zoneAt(time.Local.String(), time.Local, date)
}

// FixedZone builds a zone with a constant offset in hours.
func FixedZone(hours float64) (Zone, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < -14 || hours > 14 {
		return Zone{}, fmt.Errorf("utc offset %v must be between -14 and 14 hours", hours)
	}
	name := "UTC" + FormatOffset(hours)
	return Zone{
		Name:        name,
		Abbrev:      name,
		OffsetHours: hours,
		Location:    time.FixedZone(name, int(math.Round(hours*3600))),
	}, nil
}

// GuessZone picks the nearest whole-hour mean solar zone for a longitude
// that came without a zone.
func GuessZone(longitude float64) Zone {
	// round(lon/15) stays within -12..12, always a valid offset.
	z, _ := FixedZone(math.Round(longitude / 15))
	return z
}

// NearLocal reports whether the system zone on date is within two hours of
// the longitude's mean solar time.
func NearLocal(longitude float64, date time.Time) bool {
	return math.Abs(LocalZone(date).OffsetHours-longitude/15) <= 2
}

func zoneAt(name string, loc *time.Location, date time.Time) Zone {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
	abbrev, offset := noon.Zone()
	return Zone{
		Name:        name,
		Abbrev:      abbrev,
		OffsetHours: float64(offset) / 3600,
		Location:    loc,
	}
}

// FormatOffset renders an hour offset as "+05:30".
func FormatOffset(hours float64) string {
	sign := "+"
	if hours < 0 {
		sign, hours = "-", -hours
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

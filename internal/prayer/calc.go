package prayer

import (
	"fmt"
	"math"
	"time"
)

// Twilight angles of the Egyptian General Authority of Survey.
const (
	DefaultFajrAngle = -19.5
	DefaultIshaAngle = -17.5
)

// sunriseAngle accounts for the solar disk radius and atmospheric refraction.
const sunriseAngle = -0.8333

// Event identifies one of the six daily times.
type Event int

const (
	Fajr Event = iota
	Sunrise
	Zuhr
	Asr
	Maghrib
	Isha
)

var eventNames = [...]string{"Fajr", "Sunrise", "Zuhr", "Asr", "Maghrib", "Isha"}

func (e Event) String() string {
	if e < Fajr || e > Isha {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// School selects the Asr shadow convention.
type School int

const (
	Shafi  School = iota // shadow equals object length
	Hanafi               // shadow equals twice the object length
)

func (s School) String() string {
	switch s {
	case Shafi:
		return "Shafi"
	case Hanafi:
		return "Hanafi"
	default:
		return fmt.Sprintf("School(%d)", int(s))
	}
}

func (s School) shadowFactor() float64 {
	if s == Hanafi {
		return 2
	}
	return 1
}

// Input is a single calculation request.
type Input struct {
	Year  int
	Month int
	Day   int

	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	UTCOffset float64 // hours

	FajrAngle float64 // degrees, negative below the horizon
	IshaAngle float64 // degrees, negative below the horizon
	School    School
}

// Time is one computed event.
// Hours is local clock time and may fall outside [0, 24); it is zero when Err is set.
type Time struct {
	Event Event
	Hours float64
	Err   error
}

// Clock renders the time as "HH:MM", or "--:--" when undefined.
func (t Time) Clock() string {
	if t.Err != nil {
		return "--:--"
	}
	return FormatClock(t.Hours)
}

// Times holds the six events of one day.
type Times struct {
	Fajr    Time
	Sunrise Time
	Zuhr    Time
	Asr     Time
	Maghrib Time
	Isha    Time
}

// All returns the events in chronological order.
func (t Times) All() []Time {
	return []Time{t.Fajr, t.Sunrise, t.Zuhr, t.Asr, t.Maghrib, t.Isha}
}

// Get returns the given event.
func (t Times) Get(e Event) Time {
	switch e {
	case Fajr:
		return t.Fajr
	case Sunrise:
		return t.Sunrise
	case Zuhr:
		return t.Zuhr
	case Asr:
		return t.Asr
	case Maghrib:
		return t.Maghrib
	case Isha:
		return t.Isha
	}
	return Time{Event: e, Err: fmt.Errorf("unknown event %d", int(e))}
}

// Compute returns the prayer times for in. Only invalid input fails the call;
// an event the sun never reaches is reported through that event's Err.
func Compute(in Input) (Times, error) {
	if err := in.validate(); err != nil {
		return Times{}, err
	}

	sun := solarGeometry(in.Year, in.Month, in.Day, in.Longitude)
	return deriveTimes(sun, in), nil
}

func (in Input) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"latitude", in.Latitude},
		{"longitude", in.Longitude},
		{"utc offset", in.UTCOffset},
		{"fajr angle", in.FajrAngle},
		{"isha angle", in.IshaAngle},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, f.name)
		}
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidInput, in.Latitude)
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidInput, in.Longitude)
	}
	if in.UTCOffset < -14 || in.UTCOffset > 14 {
		return fmt.Errorf("%w: utc offset %v must be between -14 and 14 hours", ErrInvalidInput, in.UTCOffset)
	}
	if in.School != Shafi && in.School != Hanafi {
		return fmt.Errorf("%w: unknown school %d", ErrInvalidInput, int(in.School))
	}
	if !ValidDate(in.Year, in.Month, in.Day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, in.Year, in.Month, in.Day)
	}
	return nil
}

// ValidDate reports whether year/month/day names a Gregorian calendar day.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func deriveTimes(sun solarPosition, in Input) Times {
	zuhr := sun.UTNoon/15 + in.UTCOffset
	dec := sun.Declination
	lat := in.Latitude

	before := func(e Event, angle float64) Time {
		arc, err := hourArc(e, angle, dec, lat)
		if err != nil {
			return Time{Event: e, Err: err}
		}
		return Time{Event: e, Hours: zuhr - arc}
	}
	after := func(e Event, angle float64) Time {
		arc, err := hourArc(e, angle, dec, lat)
		if err != nil {
			return Time{Event: e, Err: err}
		}
		return Time{Event: e, Hours: zuhr + arc}
	}

	asrAltitude := radToDeg(math.Atan(in.School.shadowFactor() + math.Tan(degToRad(lat-dec))))

	return Times{
		Fajr:    before(Fajr, in.FajrAngle),
		Sunrise: before(Sunrise, sunriseAngle),
		Zuhr:    Time{Event: Zuhr, Hours: zuhr},
		Asr:     after(Asr, 90-asrAltitude),
		// Sunset mirrors sunrise around solar noon.
		Maghrib: after(Maghrib, sunriseAngle),
		Isha:    after(Isha, in.IshaAngle),
	}
}

// hourArc returns the hours between solar noon and the moment the sun sits
// at altitude angle (degrees).
func hourArc(e Event, angle, dec, lat float64) (float64, error) {
	cos := (math.Sin(degToRad(angle)) - math.Sin(degToRad(dec))*math.Sin(degToRad(lat))) /
		(math.Cos(degToRad(dec)) * math.Cos(degToRad(lat)))

	// Written to also reject NaN, e.g. at the poles.
	if !(cos >= -1 && cos <= 1) {
		return 0, &UndefinedError{Event: e, Cos: cos}
	}
	return radToDeg(math.Acos(cos)) / 15, nil
}

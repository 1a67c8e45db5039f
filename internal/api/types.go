package api

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/geo"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// Response is the envelope returned by GET /v1/times.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds one day's schedule and the parameters it was computed with.
type Data struct {
	Timings []Timing `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
	Sun     *SunInfo `json:"sun,omitempty"`
}

// Timing is one event. Time is "HH:MM" local, or "--:--" when the sun never
// reaches the event's altitude.
type Timing struct {
	Name      string  `json:"name"`
	Time      string  `json:"time"`
	Hours     float64 `json:"hours"`
	Undefined bool    `json:"undefined,omitempty"`
}

// DateInfo describes the calendar day.
type DateInfo struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Weekday string `json:"weekday"`
}

// Meta echoes the resolved request.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Abbrev    string     `json:"abbreviation,omitempty"`
	UTCOffset float64    `json:"utc_offset"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
	FajrAngle float64    `json:"fajr_angle"`
	IshaAngle float64    `json:"isha_angle"`
}

// MethodInfo identifies a calculation method.
type MethodInfo struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	FajrAngle float64 `json:"fajr_angle,omitempty"`
	IshaAngle float64 `json:"isha_angle,omitempty"`
}

// SunInfo is the sun's position at the moment of the request.
type SunInfo struct {
	At       time.Time `json:"at"`
	Altitude float64   `json:"altitude"`
	Azimuth  float64   `json:"azimuth"`
	Phase    string    `json:"phase"`
}

// MethodsResponse is returned by GET /v1/methods.
type MethodsResponse struct {
	Code   int          `json:"code"`
	Status string       `json:"status"`
	Data   []MethodInfo `json:"data"`
}

// CalendarResponse is returned by GET /v1/calendar/:year/:month, one Data per day.
type CalendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []Data `json:"data"`
}

// ErrorResponse is the body of every non-200 reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTimings converts computed times into wire form.
func NewTimings(times prayer.Times) []Timing {
	var timings []Timing
	for _, t := range times.All() {
		timings = append(timings, Timing{
			Name:      t.Event.String(),
			Time:      t.Clock(),
			Hours:     t.Hours,
			Undefined: t.Err != nil,
		})
	}
	return timings
}

// Times rebuilds the calculator result from the wire form.
func (d Data) Times() (prayer.Times, error) {
	var times prayer.Times
	seen := 0
	for _, tm := range d.Timings {
		e, ok := prayer.EventByName(tm.Name)
		if !ok {
			return prayer.Times{}, fmt.Errorf("unknown timing %q in response", tm.Name)
		}
		t := prayer.Time{Event: e, Hours: tm.Hours}
		if tm.Undefined {
			t = prayer.Time{Event: e, Err: fmt.Errorf("%w (reported by server)", prayer.ErrUndefined)}
		}
		switch e {
		case prayer.Fajr:
			times.Fajr = t
		case prayer.Sunrise:
			times.Sunrise = t
		case prayer.Zuhr:
			times.Zuhr = t
		case prayer.Asr:
			times.Asr = t
		case prayer.Maghrib:
			times.Maghrib = t
		case prayer.Isha:
			times.Isha = t
		}
		seen++
	}
	if seen != len(prayer.AllPrayerNames) {
		return prayer.Times{}, fmt.Errorf("response has %d timings, want %d", seen, len(prayer.AllPrayerNames))
	}
	return times, nil
}

// Location returns the zone the timings are expressed in.
func (d Data) Location() *time.Location {
	if d.Meta.Timezone != "" {
		if loc, err := time.LoadLocation(d.Meta.Timezone); err == nil {
			return loc
		}
	}
	z, err := geo.FixedZone(d.Meta.UTCOffset)
	if err != nil {
		return time.UTC
	}
	return z.Location
}

// Day parses Date.Date in the response's zone.
func (d Data) Day() (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", d.Date.Date, d.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q in response: %w", d.Date.Date, err)
	}
	return day, nil
}

// Prayers places the selected timings on the wall clock.
func (d Data) Prayers(selected []string) ([]prayer.Prayer, error) {
	times, err := d.Times()
	if err != nil {
		return nil, err
	}
	day, err := d.Day()
	if err != nil {
		return nil, err
	}
	return prayer.FromTimes(times, day, d.Location(), selected)
}

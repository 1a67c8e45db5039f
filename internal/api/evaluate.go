package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayertime/internal/geo"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
	"github.com/smokyabdulrahman/prayertime/internal/sun"
)

// ResolveZone picks the zone for req: an explicit offset, then a named zone,
// then a guess from the longitude.
func ResolveZone(req TimesRequest) (geo.Zone, error) {
	switch {
	case req.UTCOffset != nil:
		z, err := geo.FixedZone(*req.UTCOffset)
		if err != nil {
			return geo.Zone{}, fmt.Errorf("%w: %v", prayer.ErrInvalidInput, err)
		}
		return z, nil
	case req.Timezone != "":
		z, err := geo.LookupZone(req.Timezone, req.Date)
		if err != nil {
			return geo.Zone{}, fmt.Errorf("%w: %v", prayer.ErrInvalidInput, err)
		}
		return z, nil
	}
	z := geo.GuessZone(req.Longitude)
	log.Debug().Str("zone", z.Name).Float64("longitude", req.Longitude).Msg("no timezone given, guessed from longitude")
	return z, nil
}

// TodayIn returns the calendar date of now in req's zone, as midnight UTC.
func TodayIn(req TimesRequest, now time.Time) (time.Time, error) {
	req.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	zone, err := ResolveZone(req)
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(zone.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Evaluate computes the schedule for req locally. now stamps the sun position.
func Evaluate(req TimesRequest, now time.Time) (*Data, error) {
	zone, err := ResolveZone(req)
	if err != nil {
		return nil, err
	}

	in, err := req.Settings.Input(req.Date, req.Latitude, req.Longitude, zone.OffsetHours)
	if err != nil {
		return nil, err
	}
	times, err := prayer.Compute(in)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("zone", zone.Name).Str("offset", zone.Offset()).Str("date", req.Date.Format("2006-01-02")).Msg("computing times")
	for _, t := range times.All() {
		if t.Err != nil {
			log.Debug().Err(t.Err).Str("event", t.Event.String()).Msg("event undefined at this latitude")
		}
	}

	method, _ := prayer.MethodByID(req.Settings.MethodID)
	pos := sun.At(now, req.Latitude, req.Longitude)

	return &Data{
		Timings: NewTimings(times),
		Date: DateInfo{
			Date:    req.Date.Format("2006-01-02"),
			Weekday: req.Date.Weekday().String(),
		},
		Meta: Meta{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Timezone:  zoneName(zone),
			Abbrev:    zone.Abbrev,
			UTCOffset: zone.OffsetHours,
			Method:    MethodInfo{ID: method.ID, Name: method.Name},
			School:    in.School.String(),
			FajrAngle: in.FajrAngle,
			IshaAngle: in.IshaAngle,
		},
		Sun: &SunInfo{
			At:       now,
			Altitude: pos.Altitude,
			Azimuth:  pos.Azimuth,
			Phase:    string(pos.Phase()),
		},
	}, nil
}

// zoneName drops synthetic fixed-offset names so clients fall back to the offset.
func zoneName(z geo.Zone) string {
	if strings.HasPrefix(z.Name, "UTC+") || strings.HasPrefix(z.Name, "UTC-") || z.Name == "Local" {
		return ""
	}
	return z.Name
}

// Methods lists the supported calculation methods in wire form.
func Methods() []MethodInfo {
	var methods []MethodInfo
	for _, m := range prayer.Methods {
		methods = append(methods, MethodInfo{ID: m.ID, Name: m.Name, FajrAngle: m.FajrAngle, IshaAngle: m.IshaAngle})
	}
	return methods
}

// EvaluateMonth computes every day of the given month. req.Date is ignored.
func EvaluateMonth(year int, month time.Month, req TimesRequest, now time.Time) ([]Data, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", prayer.ErrInvalidDate, int(month))
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var days []Data
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		req.Date = d
		data, err := Evaluate(req, now)
		if err != nil {
			return nil, err
		}
		days = append(days, *data)
	}
	return days, nil
}

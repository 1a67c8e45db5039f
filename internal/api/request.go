package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// TimesRequest is a single schedule query, shared by the CLI and the server.
type TimesRequest struct {
	Date      time.Time // only the calendar day is used
	Latitude  float64
	Longitude float64
	Timezone  string   // IANA name; empty means guess from the longitude
	UTCOffset *float64 // overrides Timezone
	Settings  prayer.Settings
}

// Values encodes the request as GET /v1/times query parameters.
func (r TimesRequest) Values() url.Values {
	params := url.Values{}
	params.Set("date", r.Date.Format("2006-01-02"))
	params.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	if r.Timezone != "" {
		params.Set("timezone", r.Timezone)
	}
	if r.UTCOffset != nil {
		params.Set("utc_offset", strconv.FormatFloat(*r.UTCOffset, 'f', -1, 64))
	}
	params.Set("method", strconv.Itoa(r.Settings.MethodID))
	params.Set("school", strings.ToLower(r.Settings.School.String()))
	if r.Settings.FajrAngle != nil {
		params.Set("fajr_angle", strconv.FormatFloat(*r.Settings.FajrAngle, 'f', -1, 64))
	}
	if r.Settings.IshaAngle != nil {
		params.Set("isha_angle", strconv.FormatFloat(*r.Settings.IshaAngle, 'f', -1, 64))
	}
	return params
}

// ParseTimesQuery decodes GET /v1/times parameters. latitude and longitude
// are required; date defaults to today in the requested zone.
// All errors wrap prayer.ErrInvalidInput or prayer.ErrInvalidDate.
func ParseTimesQuery(q url.Values, now time.Time) (TimesRequest, error) {
	req := TimesRequest{Settings: prayer.DefaultSettings()}

	var err error
	if req.Latitude, err = requiredFloat(q, "latitude"); err != nil {
		return TimesRequest{}, err
	}
	if req.Longitude, err = requiredFloat(q, "longitude"); err != nil {
		return TimesRequest{}, err
	}

	req.Timezone = q.Get("timezone")
	if req.UTCOffset, err = optionalFloat(q, "utc_offset"); err != nil {
		return TimesRequest{}, err
	}

	if s := q.Get("date"); s != "" {
		if req.Date, err = ParseDate(s); err != nil {
			return TimesRequest{}, err
		}
	} else if req.Date, err = TodayIn(req, now); err != nil {
		return TimesRequest{}, err
	}

	if s := q.Get("method"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return TimesRequest{}, fmt.Errorf("%w: invalid method %q", prayer.ErrInvalidInput, s)
		}
		req.Settings.MethodID = id
	}
	if s := q.Get("school"); s != "" {
		if req.Settings.School, err = prayer.ParseSchool(s); err != nil {
			return TimesRequest{}, err
		}
	}
	if req.Settings.FajrAngle, err = optionalFloat(q, "fajr_angle"); err != nil {
		return TimesRequest{}, err
	}
	if req.Settings.IshaAngle, err = optionalFloat(q, "isha_angle"); err != nil {
		return TimesRequest{}, err
	}

	return req, nil
}

// ParseDate parses YYYY-MM-DD, rejecting days that do not exist.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", prayer.ErrInvalidDate, s)
	}
	return d, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	s := q.Get(key)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is required", prayer.ErrInvalidInput, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", prayer.ErrInvalidInput, key, s)
	}
	return v, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	if q.Get(key) == "" {
		return nil, nil
	}
	v, err := requiredFloat(q, key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

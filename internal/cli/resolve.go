package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/cache"
	"github.com/smokyabdulrahman/prayertime/internal/config"
	"github.com/smokyabdulrahman/prayertime/internal/geo"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// locationSource records how the location was found.
type locationSource string

const (
	sourceCoords   locationSource = "coordinates"
	sourceAddress  locationSource = "address"
	sourceDetected locationSource = "ip"
)

// resolvedLocation holds the result of location resolution.
type resolvedLocation struct {
	Source   locationSource
	Lat, Lon float64
	Label    string
	Timezone string // optional hint from geocoding or IP detection
}

// Geocoding and IP detection are variables so tests can stay offline.
var (
	geocode        = geo.Geocode
	detectLocation = geo.DetectLocation
)

// resolveLocation determines the effective location.
// Priority: coordinates > address > cached geolocation > IP auto-detect.
func resolveLocation(cfg *config.Config, c *cache.Cache) (resolvedLocation, error) {
	switch {
	case cfg.HasCoordinates():
		lat, lon := *cfg.Latitude, *cfg.Longitude
		return resolvedLocation{
			Source: sourceCoords,
			Lat:    lat,
			Lon:    lon,
			Label:  geo.FormatCoordinates(lat, lon),
		}, nil

	case cfg.Address != "":
		if c != nil {
			if cached := c.LoadGeocode(cfg.Address); cached != nil {
				log.Debug().Str("address", cfg.Address).Msg("geocode cache hit")
				return fromGeo(sourceAddress, cached), nil
			}
		}
		found, err := geocode(cfg.Address)
		if err != nil {
			return resolvedLocation{}, fmt.Errorf("could not find %q: %w", cfg.Address, err)
		}
		if c != nil {
			if err := c.SaveGeocode(cfg.Address, found); err != nil {
				log.Warn().Err(err).Msg("failed to cache geocode result")
			}
		}
		return fromGeo(sourceAddress, found), nil

	default:
		// Try cached geolocation first.
		if c != nil {
			if cached := c.LoadGeo(); cached != nil {
				log.Debug().Msg("geolocation cache hit")
				return fromGeo(sourceDetected, cached), nil
			}
		}

		detected, err := detectLocation()
		if err != nil {
			return resolvedLocation{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
		}
		if c != nil {
			if err := c.SaveGeo(detected); err != nil {
				log.Warn().Err(err).Msg("failed to cache geolocation")
			}
		}
		return fromGeo(sourceDetected, detected), nil
	}
}

func fromGeo(src locationSource, l *geo.Location) resolvedLocation {
	return resolvedLocation{
		Source:   src,
		Lat:      l.Latitude,
		Lon:      l.Longitude,
		Label:    l.Label(),
		Timezone: l.Timezone,
	}
}

// hostZone names the system zone; time.LoadLocation resolves it to time.Local.
const hostZone = "Local"

// buildRequest turns the merged config into a calculation request for date.
// An explicit timezone beats the hint that came with the location.
func buildRequest(cfg *config.Config, loc resolvedLocation, utcOffset *float64, date time.Time) api.TimesRequest {
	tz := cfg.Timezone
	if tz == "" {
		tz = loc.Timezone
	}
	// Locally, bare coordinates near the user's own zone follow its DST rules.
	// A server would read "Local" as its own zone, so remote requests fall
	// back to the server's longitude guess.
	if tz == "" && utcOffset == nil && cfg.Server == "" && geo.NearLocal(loc.Lon, date) {
		tz = hostZone
	}
	return api.TimesRequest{
		Date:      date,
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
		Timezone:  tz,
		UTCOffset: utcOffset,
		Settings: prayer.Settings{
			MethodID:  cfg.MethodOrDefault(prayer.DefaultMethodID),
			School:    prayer.School(cfg.SchoolOrDefault(int(prayer.Shafi))),
			FajrAngle: cfg.FajrAngle,
			IshaAngle: cfg.IshaAngle,
		},
	}
}


// source produces schedules, either locally or from a prayertime server.
type source struct {
	server string
	client *api.Client
	cache  *cache.Cache
	now    time.Time
}

func newSource(cfg *config.Config, c *cache.Cache, now time.Time) *source {
	s := &source{server: cfg.Server, cache: c, now: now}
	if cfg.Server != "" {
		s.client = api.NewClient(cfg.Server)
	}
	return s
}

func (s *source) remote() bool {
	return s.client != nil
}

// day returns one day's schedule. Remote results are cached per server.
func (s *source) day(req api.TimesRequest) (*api.Data, error) {
	if !s.remote() {
		return api.Evaluate(req, s.now)
	}

	if s.cache != nil {
		if data := s.cache.LoadTimes(s.server, req); data != nil {
			log.Debug().Str("date", data.Date.Date).Msg("times cache hit")
			return data, nil
		}
	}

	resp, err := s.client.FetchTimes(req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveTimes(s.server, req, &resp.Data); err != nil {
			log.Warn().Err(err).Msg("failed to cache times")
		}
	}
	return &resp.Data, nil
}

// month returns every day of a calendar month.
func (s *source) month(year int, month time.Month, req api.TimesRequest) ([]api.Data, error) {
	if !s.remote() {
		return api.EvaluateMonth(year, month, req, s.now)
	}

	if s.cache != nil {
		if entry := s.cache.LoadCalendar(s.server, year, month, req); entry != nil {
			return entry.Days, nil
		}
	}

	resp, err := s.client.FetchCalendar(year, month, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar for %d-%02d: %w", year, int(month), err)
	}

	if s.cache != nil {
		if err := s.cache.SaveCalendar(s.server, year, month, req, resp.Data); err != nil {
			log.Warn().Err(err).Msg("failed to cache calendar")
		}
	}
	return resp.Data, nil
}

// days returns n consecutive days starting at req.Date, one month
// request per calendar month touched.
func (s *source) days(req api.TimesRequest, n int) ([]api.Data, error) {
	type yearMonth struct {
		year  int
		month time.Month
	}
	months := make(map[yearMonth][]api.Data)

	var result []api.Data
	for i := 0; i < n; i++ {
		d := req.Date.AddDate(0, 0, i)
		ym := yearMonth{d.Year(), d.Month()}
		daysInMonth, ok := months[ym]
		if !ok {
			var err error
			daysInMonth, err = s.month(ym.year, ym.month, req)
			if err != nil {
				return nil, err
			}
			months[ym] = daysInMonth
		}

		idx := d.Day() - 1
		if idx >= len(daysInMonth) {
			return nil, fmt.Errorf("day %d out of range for %d-%02d (got %d days)", d.Day(), ym.year, int(ym.month), len(daysInMonth))
		}
		result = append(result, daysInMonth[idx])
	}
	return result, nil
}

// openCache opens the cache, logging and continuing without it on failure.
func openCache(cfg *config.Config) *cache.Cache {
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	return c
}

// selectedPrayers picks the prayers to show: override > config > defaults.
func selectedPrayers(override string, cfg *config.Config) ([]string, error) {
	switch {
	case override != "":
		return prayer.ParseNames(override)
	case cfg.Prayers != "":
		return prayer.ParseNames(cfg.Prayers)
	}
	return prayer.DefaultPrayerNames, nil
}

// nowFunc is the clock used by every command.
var nowFunc = time.Now

// session bundles everything a schedule command needs.
type session struct {
	cfg    *config.Config
	loc    resolvedLocation
	src    *source
	req    api.TimesRequest // Date is the first day to show
	today  time.Time        // today's date in the target zone, as UTC midnight
	now    time.Time
	layout string
}

// newSession merges flags and config, resolves the location and picks
// the start date: --date when given, otherwise today in the target zone.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	c := openCache(cfg)
	loc, err := resolveLocation(cfg, c)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("source", string(loc.Source)).Float64("lat", loc.Lat).Float64("lon", loc.Lon).Msg("location resolved")

	now := nowFunc()
	req := buildRequest(cfg, loc, utcOffsetFlag(cmd), now)
	today, err := api.TodayIn(req, now)
	if err != nil {
		return nil, err
	}
	req.Date = today
	if FlagDate != "" {
		if req.Date, err = api.ParseDate(FlagDate); err != nil {
			return nil, err
		}
	}

	return &session{
		cfg:    cfg,
		loc:    loc,
		src:    newSource(cfg, c, now),
		req:    req,
		today:  today,
		now:    now,
		layout: prayer.LayoutFor(cfg.TimeFormat),
	}, nil
}

// showsToday reports whether the start date is today, which is when the
// current and next prayers mean something.
func (s *session) showsToday() bool {
	return s.req.Date.Equal(s.today)
}

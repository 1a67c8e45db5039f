package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/geo"
)

const (
	timesCacheFile    = "times_%s.json"    // keyed by hash
	calendarCacheFile = "calendar_%s.json" // keyed by hash
	geocodeCacheFile  = "geocode_%s.json"  // keyed by hash
	geoCacheFile      = "geolocation.json"
	geoTTL            = 24 * time.Hour
	geocodeTTL        = 30 * 24 * time.Hour
)

// Cache provides file-based caching for server responses and location lookups.
// Locally computed schedules are never cached.
type Cache struct {
	dir string
}

// TimesCacheEntry stores one day's schedule fetched from a server.
type TimesCacheEntry struct {
	Date string   `json:"date"` // YYYY-MM-DD
	Data api.Data `json:"data"`
}

// CalendarCacheEntry stores a month of schedules fetched from a server.
type CalendarCacheEntry struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []api.Data `json:"days"`
}

// GeoCacheEntry stores a cached location with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/prayertime/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "prayertime")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// cacheKey builds a deterministic hash from the parts that identify a result.
func cacheKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// requestKey ignores the date, which is stored and checked separately.
func requestKey(server string, req api.TimesRequest) string {
	params := req.Values()
	params.Del("date")
	return cacheKey(server, params.Encode())
}

func (c *Cache) read(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *Cache) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// LoadTimes returns a schedule previously fetched from server for req.
// Returns nil if the cache is missing or stale (wrong date).
func (c *Cache) LoadTimes(server string, req api.TimesRequest) *api.Data {
	dateStr := req.Date.Format("2006-01-02")
	name := fmt.Sprintf(timesCacheFile, cacheKey(requestKey(server, req), dateStr))

	var entry TimesCacheEntry
	if !c.read(name, &entry) {
		return nil
	}

	// Validate the date matches -- stale cache for a previous day is useless.
	if entry.Date != dateStr {
		return nil
	}

	return &entry.Data
}

// SaveTimes stores a schedule fetched from server.
func (c *Cache) SaveTimes(server string, req api.TimesRequest, data *api.Data) error {
	dateStr := req.Date.Format("2006-01-02")
	name := fmt.Sprintf(timesCacheFile, cacheKey(requestKey(server, req), dateStr))
	return c.write(name, TimesCacheEntry{Date: dateStr, Data: *data})
}

// LoadCalendar returns a month previously fetched from server.
func (c *Cache) LoadCalendar(server string, year int, month time.Month, req api.TimesRequest) *CalendarCacheEntry {
	name := fmt.Sprintf(calendarCacheFile, cacheKey(requestKey(server, req), fmt.Sprintf("%04d-%02d", year, int(month))))

	var entry CalendarCacheEntry
	if !c.read(name, &entry) {
		return nil
	}
	if entry.Year != year || entry.Month != int(month) {
		return nil
	}
	return &entry
}

// SaveCalendar stores a month fetched from server.
func (c *Cache) SaveCalendar(server string, year int, month time.Month, req api.TimesRequest, days []api.Data) error {
	name := fmt.Sprintf(calendarCacheFile, cacheKey(requestKey(server, req), fmt.Sprintf("%04d-%02d", year, int(month))))
	return c.write(name, CalendarCacheEntry{Year: year, Month: int(month), Days: days})
}

// LoadGeo attempts to read a cached IP geolocation result.
// Returns nil if the cache is missing or older than the TTL (24 hours).
func (c *Cache) LoadGeo() *geo.Location {
	return c.loadLocation(geoCacheFile, geoTTL)
}

// SaveGeo writes an IP geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	return c.saveLocation(geoCacheFile, loc)
}

// LoadGeocode returns the cached coordinates for address. Addresses differing
// only in case or surrounding space share an entry.
func (c *Cache) LoadGeocode(address string) *geo.Location {
	return c.loadLocation(geocodeName(address), geocodeTTL)
}

// SaveGeocode caches a geocoding result for address.
func (c *Cache) SaveGeocode(address string, loc *geo.Location) error {
	return c.saveLocation(geocodeName(address), loc)
}

func geocodeName(address string) string {
	return fmt.Sprintf(geocodeCacheFile, cacheKey(strings.ToLower(strings.TrimSpace(address))))
}

func (c *Cache) loadLocation(name string, ttl time.Duration) *geo.Location {
	var entry GeoCacheEntry
	if !c.read(name, &entry) {
		return nil
	}
	if time.Since(entry.CachedAt) > ttl {
		return nil
	}
	return &entry.Location
}

func (c *Cache) saveLocation(name string, loc *geo.Location) error {
	return c.write(name, GeoCacheEntry{Location: *loc, CachedAt: time.Now()})
}

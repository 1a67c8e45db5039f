// Package config provides persistent configuration for the prayertime CLI.
//
// Configuration is stored as JSON at ~/.config/prayertime/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/geo"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

const (
	configDirName  = "prayertime"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"address",
	"latitude", "longitude",
	"timezone",
	"method", "school",
	"fajr_angle", "isha_angle",
	"time_format",
	"prayers",
	"cache_dir",
	"server",
}

// Config holds all user-configurable settings.
// Nil pointers and empty strings mean "not set" (use defaults or auto-detect).
type Config struct {
	Address    string   `json:"address,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"` // pointer so the equator is not "unset"
	Longitude  *float64 `json:"longitude,omitempty"`
	Timezone   string   `json:"timezone,omitempty"` // IANA name
	Method     *int     `json:"method,omitempty"`
	School     *int     `json:"school,omitempty"` // 0 Shafi, 1 Hanafi
	FajrAngle  *float64 `json:"fajr_angle,omitempty"`
	IshaAngle  *float64 `json:"isha_angle,omitempty"`
	TimeFormat string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers    string   `json:"prayers,omitempty"`     // comma-separated list
	CacheDir   string   `json:"cache_dir,omitempty"`
	Server     string   `json:"server,omitempty"` // base URL of a prayertime server
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	method := prayer.DefaultMethodID
	school := int(prayer.Shafi)
	return Config{
		Method:     &method,
		School:     &school,
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "address":
		c.Address = value
	case "latitude":
		v, err := parseRange(key, value, -90, 90)
		if err != nil {
			return err
		}
		c.Latitude = v
	case "longitude":
		v, err := parseRange(key, value, -180, 180)
		if err != nil {
			return err
		}
		c.Longitude = v
	case "timezone":
		if value != "" {
			if _, err := geo.LookupZone(value, time.Now()); err != nil {
				return fmt.Errorf("invalid timezone: %w", err)
			}
		}
		c.Timezone = value
	case "method":
		if value == "" {
			c.Method = nil
			return nil
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be an integer", value)
		}
		if _, ok := prayer.MethodByID(v); !ok {
			return fmt.Errorf("invalid method %q: run `prayertime methods` for the list", value)
		}
		c.Method = &v
	case "school":
		if value == "" {
			c.School = nil
			return nil
		}
		s, err := prayer.ParseSchool(value)
		if err != nil {
			return fmt.Errorf("invalid school %q: must be 0 (Shafi) or 1 (Hanafi)", value)
		}
		v := int(s)
		c.School = &v
	case "fajr_angle":
		v, err := parseRange(key, value, -30, 30)
		if err != nil {
			return err
		}
		c.FajrAngle = v
	case "isha_angle":
		v, err := parseRange(key, value, -30, 30)
		if err != nil {
			return err
		}
		c.IshaAngle = v
	case "time_format":
		if value != "" && value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		if value != "" {
			if _, err := prayer.ParseNames(value); err != nil {
				return fmt.Errorf("invalid prayers list %q: %w", value, err)
			}
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	case "server":
		if value != "" {
			u, err := url.Parse(value)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid server %q: must be an absolute URL", value)
			}
		}
		c.Server = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

func parseRange(key, value string, min, max float64) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if v < min || v > max {
		return nil, fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, min, max)
	}
	return &v, nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "address":
		return c.Address, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		if c.Method == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Method), nil
	case "school":
		if c.School == nil {
			return "", nil
		}
		return strconv.Itoa(*c.School), nil
	case "fajr_angle":
		return formatFloat(c.FajrAngle), nil
	case "isha_angle":
		return formatFloat(c.IshaAngle), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "server":
		return c.Server, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (c *Config) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// MethodOrDefault returns the method value, falling back to the given default.
func (c *Config) MethodOrDefault(def int) int {
	if c.Method != nil {
		return *c.Method
	}
	return def
}

// SchoolOrDefault returns the school value, falling back to the given default.
func (c *Config) SchoolOrDefault(def int) int {
	if c.School != nil {
		return *c.School
	}
	return def
}

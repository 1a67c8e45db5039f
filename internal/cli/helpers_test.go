package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/config"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

func TestZoneLabel(t *testing.T) {
	tests := []struct {
		meta api.Meta
		want string
	}{
		{api.Meta{UTCOffset: 3}, "UTC+03:00"},
		{api.Meta{UTCOffset: -4.5}, "UTC-04:30"},
		{api.Meta{Timezone: "Asia/Riyadh", Abbrev: "+03", UTCOffset: 3}, "Asia/Riyadh (+03:00)"},
		{api.Meta{Timezone: "Europe/London", Abbrev: "BST", UTCOffset: 1}, "Europe/London (BST, +01:00)"},
	}
	for _, tt := range tests {
		if got := zoneLabel(&api.Data{Meta: tt.meta}); got != tt.want {
			t.Errorf("zoneLabel(%+v) = %q, want %q", tt.meta, got, tt.want)
		}
	}
}

func TestSunLabel(t *testing.T) {
	if got := sunLabel(nil); got != "" {
		t.Errorf("sunLabel(nil) = %q, want empty", got)
	}

	got := sunLabel(&api.SunInfo{Altitude: 23.44, Azimuth: 85.2, Phase: "day"})
	if want := "23.4° up, azimuth 85° (day)"; got != want {
		t.Errorf("sunLabel = %q, want %q", got, want)
	}

	got = sunLabel(&api.SunInfo{Altitude: -8, Azimuth: 290, Phase: "nautical twilight"})
	if want := "8.0° below horizon, azimuth 290° (nautical twilight)"; got != want {
		t.Errorf("sunLabel = %q, want %q", got, want)
	}
}

func TestParseDays(t *testing.T) {
	tests := map[string]int{"": 1, "week": 7, "month": 30, "3": 3, "366": 366}
	for in, want := range tests {
		got, err := parseDays(in)
		if err != nil || got != want {
			t.Errorf("parseDays(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"0", "-1", "367", "fortnight"} {
		if _, err := parseDays(bad); err == nil {
			t.Errorf("parseDays(%q) should fail", bad)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	method, school := 3, 1
	fajr := -15.0
	cfg := &config.Config{Method: &method, School: &school, FajrAngle: &fajr}
	loc := resolvedLocation{Lat: 51.5, Lon: -0.1, Timezone: "Europe/London"}
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	req := buildRequest(cfg, loc, nil, date)
	if req.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want the location's hint", req.Timezone)
	}
	if req.Settings.MethodID != 3 || req.Settings.School != prayer.Hanafi {
		t.Errorf("Settings = %+v, want method 3 Hanafi", req.Settings)
	}
	if req.Settings.FajrAngle == nil || *req.Settings.FajrAngle != -15 {
		t.Errorf("FajrAngle override lost")
	}

	cfg.Timezone = "Asia/Riyadh"
	if req := buildRequest(cfg, loc, nil, date); req.Timezone != "Asia/Riyadh" {
		t.Errorf("configured timezone should beat the location hint, got %q", req.Timezone)
	}
}

func TestBuildRequest_HostZone(t *testing.T) {
	orig := time.Local
	defer func() { time.Local = orig }()
	time.Local = time.FixedZone("AST", 3*3600)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mecca := resolvedLocation{Lat: 21.4225, Lon: 39.8262}

	if req := buildRequest(&config.Config{}, mecca, nil, date); req.Timezone != hostZone {
		t.Errorf("coordinates near the system zone: Timezone = %q, want %q", req.Timezone, hostZone)
	}

	newYork := resolvedLocation{Lat: 40.7, Lon: -74.0}
	if req := buildRequest(&config.Config{}, newYork, nil, date); req.Timezone != "" {
		t.Errorf("distant coordinates should be left to the longitude guess, got %q", req.Timezone)
	}

	offset := 3.0
	if req := buildRequest(&config.Config{}, mecca, &offset, date); req.Timezone != "" {
		t.Errorf("an explicit offset should not pick a zone, got %q", req.Timezone)
	}

	remote := &config.Config{Server: "http://prayers.example"}
	if req := buildRequest(remote, mecca, nil, date); req.Timezone != "" {
		t.Errorf("remote requests should not send the system zone, got %q", req.Timezone)
	}

	// The system zone resolves through the same path as named zones.
	req := buildRequest(&config.Config{}, mecca, nil, date)
	zone, err := api.ResolveZone(req)
	if err != nil {
		t.Fatal(err)
	}
	if zone.OffsetHours != 3 || zone.Abbrev != "AST" {
		t.Errorf("zone = %+v, want AST +3", zone)
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("PRAYERTIME_ADDR", "")
	t.Setenv("PORT", "")
	if got := listenAddr(""); got != ":8080" {
		t.Errorf("default = %q, want :8080", got)
	}

	t.Setenv("PORT", "3000")
	if got := listenAddr(""); got != ":3000" {
		t.Errorf("PORT = %q, want :3000", got)
	}

	t.Setenv("PRAYERTIME_ADDR", "127.0.0.1:9000")
	if got := listenAddr(""); got != "127.0.0.1:9000" {
		t.Errorf("PRAYERTIME_ADDR = %q, want 127.0.0.1:9000", got)
	}

	if got := listenAddr(":7000"); got != ":7000" {
		t.Errorf("flag = %q, want :7000", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// Register cleanup, then unset so godotenv treats the key as new.
	t.Setenv("PRAYERTIME_ADDR", "")
	os.Unsetenv("PRAYERTIME_ADDR")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PRAYERTIME_ADDR=:9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("PRAYERTIME_ADDR"); got != ":9999" {
		t.Errorf("PRAYERTIME_ADDR = %q, want :9999", got)
	}

	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
	if err := loadEnvFile(""); err != nil {
		t.Errorf("empty path should be ignored, got %v", err)
	}
}

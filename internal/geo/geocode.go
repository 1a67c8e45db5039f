package geo

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when an address matches no place.
var ErrNotFound = errors.New("address not found")

// UserAgent identifies this program to Nominatim, whose usage policy
// rejects anonymous clients.
var UserAgent = "prayertime"

// geocodeURL is the Nominatim search endpoint; tests point it at httptest.
var geocodeURL = "https://nominatim.openstreetmap.org/search"

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Geocode resolves a free-text place description to coordinates using
// OpenStreetMap Nominatim. Only the best match is returned.
func Geocode(address string) (*Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	req, err := http.NewRequest(http.MethodGet, geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	var places []nominatimPlace
	if err := getJSON(req, 10*time.Second, "geocoding", &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, address)
	}

	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q in geocoding response: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q in geocoding response: %w", p.Lon, err)
	}

	city := firstNonEmpty(p.Address.City, p.Address.Town, p.Address.Village, p.Address.State)
	if city == "" && p.Address.Country == "" {
		city = p.DisplayName
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		City:      city,
		Country:   p.Address.Country,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package prayer

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Prayer is a computed event placed on the wall clock.
// Undefined prayers carry a zero Time.
type Prayer struct {
	Name      string
	Time      time.Time
	Undefined bool
}

// AllPrayerNames lists every event the calculator produces, in chronological order.
var AllPrayerNames = []string{"Fajr", "Sunrise", "Zuhr", "Asr", "Maghrib", "Isha"}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = AllPrayerNames

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Zuhr":    "Z",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// EventByName resolves a prayer name, ignoring case.
func EventByName(name string) (Event, bool) {
	for i, n := range eventNames {
		if strings.EqualFold(n, name) {
			return Event(i), true
		}
	}
	return 0, false
}

// ParseNames splits a comma-separated prayer list and normalizes each name.
func ParseNames(list string) ([]string, error) {
	var names []string
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		e, ok := EventByName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", raw)
		}
		names = append(names, e.String())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("empty prayer list")
	}
	return names, nil
}

// FromTimes places the selected events of times on the calendar day of date in loc.
// Hours outside [0, 24) roll into the neighbouring day.
func FromTimes(times Times, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	var prayers []Prayer
	for _, name := range selected {
		e, ok := EventByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}

		t := times.Get(e)
		if t.Err != nil {
			prayers = append(prayers, Prayer{Name: e.String(), Undefined: true})
			continue
		}
		prayers = append(prayers, Prayer{Name: e.String(), Time: clockTime(date, t.Hours, loc)})
	}

	return prayers, nil
}

func clockTime(date time.Time, hours float64, loc *time.Location) time.Time {
	dayShift := int(math.Floor(hours / 24))
	h, m := HoursToClock(hours)
	return time.Date(date.Year(), date.Month(), date.Day()+dayShift, h, m, 0, 0, loc)
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should compute tomorrow's).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Undefined {
			continue
		}
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the latest prayer that has already started, or nil
// before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Undefined {
			continue
		}
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/display"
	"github.com/smokyabdulrahman/prayertime/internal/geo"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
	"github.com/smokyabdulrahman/prayertime/internal/sun"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	selected, err := selectedPrayers("", s.cfg)
	if err != nil {
		return err
	}

	data, err := s.src.day(s.req)
	if err != nil {
		return err
	}

	prayers, err := data.Prayers(selected)
	if err != nil {
		return err
	}

	// Re-anchor "now" to the schedule's zone.
	now := s.now.In(data.Location())

	// Current and next only make sense when looking at today.
	var current, next *prayer.Prayer
	if s.showsToday() {
		current = prayer.CurrentPrayer(prayers, now)
		next = prayer.NextPrayer(prayers, now)
	}

	if FlagJSON {
		return printTodayJSON(cmd.OutOrStdout(), prayers, current, next, now, data, s.loc.Label, s.layout)
	}

	printTodayRich(cmd.OutOrStdout(), prayers, current, next, now, data, s.loc.Label, s.layout)
	return nil
}

// zoneLabel renders the schedule's zone as "Asia/Riyadh (+03:00)" or "UTC+03:00".
func zoneLabel(data *api.Data) string {
	offset := geo.FormatOffset(data.Meta.UTCOffset)
	if data.Meta.Timezone == "" {
		return "UTC" + offset
	}
	if data.Meta.Abbrev != "" && !strings.HasPrefix(data.Meta.Abbrev, "+") && !strings.HasPrefix(data.Meta.Abbrev, "-") {
		return fmt.Sprintf("%s (%s, %s)", data.Meta.Timezone, data.Meta.Abbrev, offset)
	}
	return fmt.Sprintf("%s (%s)", data.Meta.Timezone, offset)
}

// formatDate renders the schedule's date, e.g. "Wednesday 21 Jun 2023".
func formatDate(data *api.Data) string {
	day, err := data.Day()
	if err != nil {
		return data.Date.Date
	}
	return day.Format("Monday 02 Jan 2006")
}

// sunLabel describes the sun's current position, e.g. "23.4° up, azimuth 85° (day)".
func sunLabel(sun *api.SunInfo) string {
	if sun == nil {
		return ""
	}
	dir := "up"
	alt := sun.Altitude
	if alt < 0 {
		dir, alt = "below horizon", -alt
	}
	return fmt.Sprintf("%.1f° %s, azimuth %.0f° (%s)", alt, dir, sun.Azimuth, phaseColor(sun.Phase))
}

func phaseColor(phase string) string {
	switch sun.Phase(phase) {
	case sun.Day:
		return display.Yellow(phase)
	case sun.CivilTwilight, sun.NauticalTwilight:
		return display.Cyan(phase)
	case sun.AstronomicalTwilight:
		return display.Green(phase)
	}
	return phase
}

// printTodayRich renders the colored terminal output for one day's schedule.
func printTodayRich(w io.Writer, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time, data *api.Data, locationStr, layout string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fields := []display.Field{
		{Label: "Location", Value: locationStr},
		{Label: "Coordinates", Value: geo.FormatCoordinates(data.Meta.Latitude, data.Meta.Longitude)},
		{Label: "Timezone", Value: zoneLabel(data)},
		{Label: "Date", Value: formatDate(data)},
		{Label: "Method", Value: fmt.Sprintf("%s, %s Asr", data.Meta.Method.Name, data.Meta.School)},
	}
	if locationStr == fields[1].Value {
		fields[1].Value = ""
	}
	fmt.Fprint(w, display.RenderFields(fields))
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Prayer", "Time", ""})
	for i, p := range prayers {
		note := ""
		switch {
		case p.Undefined:
			note = "sun does not reach this altitude"
			tbl.SetRowStyle(i, display.Red)
		case next != nil && p.Name == next.Name:
			note = "<- next in " + prayer.FormatRemaining(prayer.TimeRemaining(p, now))
			tbl.SetHighlightRow(i)
		case current != nil && p.Name == current.Name:
			tbl.SetRowStyle(i, display.Dim)
		}
		tbl.AddRow([]string{p.Name, prayer.FormatTime(p, layout), note})
	}
	fmt.Fprint(w, tbl.Render())

	if current != nil || next != nil {
		if sun := sunLabel(data.Sun); sun != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, display.RenderFields([]display.Field{{Label: "Sun", Value: sun}}))
		}
	}
	fmt.Fprintln(w)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     string            `json:"date"`
	Method   string            `json:"method"`
	School   string            `json:"school"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
	Sun      *api.SunInfo      `json:"sun,omitempty"`
}

type todayJSONLocation struct {
	Label     string  `json:"label"`
	Timezone  string  `json:"timezone,omitempty"`
	UTCOffset string  `json:"utc_offset"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func newJSONLocation(data *api.Data, label string) todayJSONLocation {
	return todayJSONLocation{
		Label:     label,
		Timezone:  data.Meta.Timezone,
		UTCOffset: geo.FormatOffset(data.Meta.UTCOffset),
		Latitude:  data.Meta.Latitude,
		Longitude: data.Meta.Longitude,
	}
}

// timingsMap keys each prayer by its lower-case name.
func timingsMap(prayers []prayer.Prayer, layout string) map[string]string {
	timings := make(map[string]string)
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = prayer.FormatTime(p, layout)
	}
	return timings
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time, data *api.Data, locationStr, layout string) error {
	out := todayJSON{
		Location: newJSONLocation(data, locationStr),
		Date:     data.Date.Date,
		Method:   data.Meta.Method.Name,
		School:   strings.ToLower(data.Meta.School),
		Timings:  timingsMap(prayers, layout),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      prayer.FormatTime(*next, layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		}
		out.Sun = data.Sun
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

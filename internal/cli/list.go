package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/display"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7), starting today or at --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// dayPrayers is one day of a multi-day listing.
type dayPrayers struct {
	Data    api.Data
	Prayers []prayer.Prayer
}

// collectDays computes n days from the session's start date.
func collectDays(s *session, n int, selected []string) ([]dayPrayers, error) {
	all, err := s.src.days(s.req, n)
	if err != nil {
		return nil, err
	}
	days := make([]dayPrayers, 0, len(all))
	for _, d := range all {
		prayers, err := d.Prayers(selected)
		if err != nil {
			return nil, err
		}
		days = append(days, dayPrayers{Data: d, Prayers: prayers})
	}
	return days, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > 366 {
			return fmt.Errorf("invalid number of days: %q (must be between 1 and 366)", args[0])
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	selected, err := selectedPrayers("", s.cfg)
	if err != nil {
		return err
	}

	daysList, err := collectDays(s, days, selected)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(w, daysList, s.loc.Label, s.layout)
	}

	printListHeader(w, fmt.Sprintf("Prayer Times, %d Days", days), &daysList[0].Data, s.loc.Label)

	headers := append([]string{"Date"}, selected...)
	tbl := display.NewTable(headers)

	todayStr := s.today.Format("2006-01-02")
	for i, dd := range daysList {
		row := []string{dayLabel(&dd.Data)}
		for _, p := range dd.Prayers {
			row = append(row, prayer.FormatTime(p, s.layout))
		}
		tbl.AddRow(row)

		// Highlight today's row.
		if dd.Data.Date.Date == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

// printListHeader prints the title and the location block shared by list and query.
func printListHeader(w io.Writer, title string, first *api.Data, locationStr string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(title))
	fmt.Fprintln(w)
	fmt.Fprint(w, display.RenderFields([]display.Field{
		{Label: "Location", Value: locationStr},
		{Label: "Timezone", Value: zoneLabel(first)},
		{Label: "Method", Value: fmt.Sprintf("%s, %s Asr", first.Meta.Method.Name, first.Meta.School)},
	}))
	fmt.Fprintln(w)
}

// dayLabel renders a short date such as "Mon 01 Mar".
func dayLabel(data *api.Data) string {
	day, err := data.Day()
	if err != nil {
		return data.Date.Date
	}
	return day.Format("Mon 02 Jan")
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Weekday string            `json:"weekday"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(w io.Writer, daysList []dayPrayers, locationStr, layout string) error {
	out := listJSONOutput{
		Location: newJSONLocation(&daysList[0].Data, locationStr),
	}
	for _, dd := range daysList {
		out.Days = append(out.Days, listJSONDay{
			Date:    dd.Data.Date.Date,
			Weekday: dd.Data.Date.Weekday,
			Timings: timingsMap(dd.Prayers, layout),
		})
	}
	return writeJSON(w, out)
}

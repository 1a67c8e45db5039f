package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/display"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " + strings.Join(prayer.AllPrayerNames, ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// parseDays accepts a positive count, "week" or "month".
func parseDays(s string) (int, error) {
	switch s {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 366 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", s)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	// Validate and normalize the prayer name.
	e, ok := prayer.EventByName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllPrayerNames, ", "))
	}
	prayerName := e.String()

	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	daysList, err := collectDays(s, days, []string{prayerName})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if days == 1 {
		p := daysList[0].Prayers[0]
		if FlagJSON {
			return writeJSON(w, queryJSONSingle{
				Prayer:    strings.ToLower(prayerName),
				Time:      prayer.FormatTime(p, s.layout),
				Date:      daysList[0].Data.Date.Date,
				Undefined: p.Undefined,
			})
		}
		fmt.Fprintf(w, "%s %s\n", prayerName, prayer.FormatTime(p, s.layout))
		return nil
	}

	if FlagJSON {
		return printQueryJSON(w, daysList, prayerName, s.loc.Label, s.layout)
	}

	printListHeader(w, fmt.Sprintf("%s Times, %d Days", prayerName, days), &daysList[0].Data, s.loc.Label)

	tbl := display.NewTable([]string{"Date", prayerName})
	todayStr := s.today.Format("2006-01-02")
	for i, dd := range daysList {
		tbl.AddRow([]string{dayLabel(&dd.Data), prayer.FormatTime(dd.Prayers[0], s.layout)})
		if dd.Data.Date.Date == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Undefined bool   `json:"undefined,omitempty"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func printQueryJSON(w io.Writer, daysList []dayPrayers, prayerName, locationStr, layout string) error {
	out := queryJSONMulti{
		Location: newJSONLocation(&daysList[0].Data, locationStr),
		Prayer:   strings.ToLower(prayerName),
	}
	for _, dd := range daysList {
		out.Days = append(out.Days, queryJSONDay{
			Date: dd.Data.Date.Date,
			Time: prayer.FormatTime(dd.Prayers[0], layout),
		})
	}
	return writeJSON(w, out)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nSuited to status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.FormatModes(), ", ")+", or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	override := ""
	if cmd.Flags().Changed("prayers") {
		override = flagPrayers
	}
	selected, err := selectedPrayers(override, s.cfg)
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

	// Re-anchor "now" to the schedule's zone so comparisons work correctly
	// when the user is querying a different timezone than their local one.
	now := s.now.In(data.Location())

	next := prayer.NextPrayer(prayers, now)

	// If all today's prayers have passed, compute tomorrow's first prayer.
	if next == nil {
		tomorrow := s.req
		tomorrow.Date = s.req.Date.AddDate(0, 0, 1)

		tData, fetchErr := s.src.day(tomorrow)
		if fetchErr != nil {
			// Tomorrow unavailable (server down): show the last prayer with
			// a "done" indicator rather than crashing the status bar.
			log.Warn().Err(fetchErr).Msg("failed to get tomorrow's times")
			if last := lastDefined(prayers); last != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s --:--", last.Name)
				return nil
			}
			return fmt.Errorf("failed to get tomorrow's times: %w", fetchErr)
		}

		tomorrowPrayers, err := tData.Prayers(selected)
		if err != nil {
			return err
		}
		next = prayer.NextPrayer(tomorrowPrayers, now)
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer: none of %v occurs at this latitude", selected)
	}

	output := prayer.FormatOutput(*next, now, flagFormat, s.layout)
	fmt.Fprint(cmd.OutOrStdout(), output)

	return nil
}

func lastDefined(prayers []prayer.Prayer) *prayer.Prayer {
	for i := len(prayers) - 1; i >= 0; i-- {
		if !prayers[i].Undefined {
			return &prayers[i]
		}
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/display"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the supported calculation methods and their Fajr and Isha angles.\nWith --server, lists the methods the server supports.",
		RunE:  runMethods,
	}
}

func runMethods(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	methods := api.Methods()
	if cfg.Server != "" {
		if methods, err = api.NewClient(cfg.Server).FetchMethods(); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(w, methods)
	}

	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"ID", "Name", "Fajr", "Isha"})
	for i, m := range methods {
		tbl.AddRow([]string{
			fmt.Sprint(m.ID),
			m.Name,
			fmt.Sprintf("%g°", m.FajrAngle),
			fmt.Sprintf("%g°", m.IshaAngle),
		})
		if m.ID == cfg.MethodOrDefault(prayer.DefaultMethodID) {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <ID> to select a calculation method.")
	fmt.Fprintf(w, "If omitted, method %d is used. --fajr-angle and --isha-angle override any method.\n", prayer.DefaultMethodID)
	return nil
}

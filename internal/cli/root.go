package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayertime/internal/config"
	"github.com/smokyabdulrahman/prayertime/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagAddress    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagTimezone   string
	FlagUTCOffset  float64
	FlagDate       string
	FlagMethod     int
	FlagSchool     string
	FlagFajrAngle  float64
	FlagIshaAngle  float64
	FlagJSON       bool
	FlagCacheDir   string
	FlagTimeFormat string
	FlagServer     string
	FlagVerbose    bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayertime CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayertime",
		Short:   "Islamic prayer times CLI",
		Long:    "Compute Islamic prayer times from the sun's position for any place and date.\nWorks offline; use --server to query a prayertime server instead.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(cmd.ErrOrStderr(), FlagVerbose)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagAddress, "address", "", "Place name or address to geocode, e.g. \"Mecca, Saudi Arabia\"")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Longitude in degrees, east positive")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone, e.g. Asia/Riyadh (default: detected or guessed)")
	pf.Float64Var(&FlagUTCOffset, "utc-offset", 0, "Fixed UTC offset in hours, e.g. 3 or 5.5 (overrides --timezone)")
	pf.StringVar(&FlagDate, "date", "", "Date as YYYY-MM-DD (default: today)")
	pf.IntVar(&FlagMethod, "method", -1, "Calculation method ID (see 'methods')")
	pf.StringVar(&FlagSchool, "school", "", "Asr school: shafi or hanafi")
	pf.Float64Var(&FlagFajrAngle, "fajr-angle", 0, "Sun altitude for Fajr in degrees, e.g. -18 (overrides method)")
	pf.Float64Var(&FlagIshaAngle, "isha-angle", 0, "Sun altitude for Isha in degrees, e.g. -17 (overrides method)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/prayertime/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagServer, "server", "", "Base URL of a prayertime server to query instead of computing locally")
	pf.BoolVar(&FlagVerbose, "verbose", false, "Log debug details to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	latSet := flagWasSet(flags, root, "latitude")
	lonSet := flagWasSet(flags, root, "longitude")
	if latSet != lonSet {
		return nil, fmt.Errorf("--latitude and --longitude must be given together")
	}
	if latSet {
		lat, lon := FlagLatitude, FlagLongitude
		cfg.Latitude, cfg.Longitude = &lat, &lon
	}
	if flagWasSet(flags, root, "address") {
		cfg.Address = FlagAddress
		// An explicit address beats coordinates stored in the config file.
		if !latSet {
			cfg.Latitude, cfg.Longitude = nil, nil
		}
	}
	if flagWasSet(flags, root, "timezone") {
		cfg.Timezone = FlagTimezone
	}

	// Run each override through config.Set so flags get the same validation.
	if flagWasSet(flags, root, "method") {
		if err := cfg.Set("method", fmt.Sprint(FlagMethod)); err != nil {
			return nil, err
		}
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		if err := cfg.Set("school", FlagSchool); err != nil {
			return nil, err
		}
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "fajr-angle") {
		if err := cfg.Set("fajr_angle", fmt.Sprint(FlagFajrAngle)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "isha-angle") {
		if err := cfg.Set("isha_angle", fmt.Sprint(FlagIshaAngle)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if flagWasSet(flags, root, "server") {
		cfg.Server = FlagServer
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		if err := cfg.Set("time_format", FlagTimeFormat); err != nil {
			return nil, err
		}
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// utcOffsetFlag returns --utc-offset when it was given.
func utcOffsetFlag(cmd *cobra.Command) *float64 {
	if !flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "utc-offset") {
		return nil
	}
	v := FlagUTCOffset
	return &v
}

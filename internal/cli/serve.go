package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayertime/internal/logging"
	"github.com/smokyabdulrahman/prayertime/internal/server"
)

var (
	flagAddr    string
	flagEnvFile string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prayer times over HTTP",
		Long: `Run the prayertime HTTP API.

ENDPOINTS:
  GET /health                          Health check
  GET /v1/times                        One day's schedule
  GET /v1/calendar/:year/:month        Every day of a month
  GET /v1/methods                      Supported calculation methods

ENVIRONMENT VARIABLES (also read from --env-file):
  PRAYERTIME_ADDR         Listen address (default: :8080)
  PORT                    Listen port, used when PRAYERTIME_ADDR is unset
  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)
  GIN_MODE                debug or release (default: release)
  LOG_LEVEL               debug, info, warn or error (default: info)
  LOG_FORMAT              console or json (default: console)`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides PRAYERTIME_ADDR and PORT)")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")

	return cmd
}

// listenAddr picks the address: flag > PRAYERTIME_ADDR > PORT > :8080.
func listenAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if addr := os.Getenv("PRAYERTIME_ADDR"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// loadEnvFile loads a dotenv file; a missing file is not an error.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadEnvFile(flagEnvFile); err != nil {
		return err
	}

	level := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if FlagVerbose {
		level = logging.ParseLevel("debug")
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logging.SetupJSON(cmd.ErrOrStderr(), level)
	} else {
		logging.Setup(cmd.ErrOrStderr(), true)
		logging.SetLevel(level)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := listenAddr(flagAddr)
	router := server.SetupRouter(server.NewHandler())

	log.Info().Str("addr", addr).Msg("prayertime server listening")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, addr, router)
}

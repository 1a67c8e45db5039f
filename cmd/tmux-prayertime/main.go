// Command tmux-prayertime prints the next prayer in a single short line for
// status bars. It takes the same flags as `prayertime next`.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/smokyabdulrahman/prayertime/internal/cli"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// defaultFormat keeps the status bar narrow.
const defaultFormat = prayer.FormatNameAndTime

func main() {
	args := os.Args[1:]
	for _, a := range args {
		if a == "--version" {
			fmt.Printf("tmux-prayertime %s\n", version)
			return
		}
	}

	rootCmd := cli.NewRootCmd(version)
	rootCmd.SetArgs(nextArgs(args))
	if err := rootCmd.Execute(); err != nil {
		// Keep the error on one line; tmux shows stderr verbatim.
		fmt.Fprintf(os.Stderr, "error: %s\n", strings.ReplaceAll(err.Error(), "\n", " "))
		os.Exit(1)
	}
}

// nextArgs turns the binary's arguments into a `next` invocation, adding
// the compact format unless one was given.
func nextArgs(args []string) []string {
	out := append([]string{"next"}, args...)
	for _, a := range args {
		if a == "--format" || strings.HasPrefix(a, "--format=") {
			return out
		}
	}
	return append(out, "--format", defaultFormat)
}

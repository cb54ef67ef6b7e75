// Command nnctl pokes Nintendo Network servers while pretending to be a
// 3DS or Wii U, using the console data from its config file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nnctl",
	Short: "Talk to Nintendo Network servers as a 3DS or Wii U",
	Long: `nnctl emulates the network client of a Nintendo 3DS or Wii U.

It reads console data (device type, region, client credentials, device
certificate) from its config file and sends requests carrying the same
header fingerprint the real console would.

Examples:
  # Inspect a raw device certificate
  nnctl cert inspect device.bin

  # Check whether a Nintendo Network id is taken
  nnctl account user-exists marcrasi

  # Fetch the latest EULA for Germany
  nnctl account agreements DE

  # Ask the account server for the current time
  nnctl account time`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

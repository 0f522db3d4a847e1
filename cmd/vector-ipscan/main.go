// Vector-ipscan finds an Anki Vector robot whose DHCP address has changed.
//
// It checks the robot's recorded address first and only sweeps the local
// /24 subnets when the robot no longer answers there. A robot found at a new
// address is written back to the device record and to the Vector SDK
// configuration.
//
// Usage:
//
//	vector-ipscan [command]
//
// Running without arguments performs a locate run.
// See 'vector-ipscan --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/vectorscan/internal/logging"
	"github.com/muurk/vectorscan/internal/ui"
	"github.com/muurk/vectorscan/internal/version"
)

// exitCancelled is the conventional exit status after SIGINT.
const exitCancelled = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		if isCancelled(err) {
			os.Exit(exitCancelled)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ui.ErrPromptCancelled)
}

var rootCmd = &cobra.Command{
	Use:   "vector-ipscan",
	Short: "Find a Vector robot on the local network",
	Long: `Find an Anki Vector robot whose IP address has changed.

The recorded address (or the address in ~/.anki_vector/sdk_config.ini) is
checked first. If the robot no longer answers there with its known MAC
address, every local /24 subnet is swept and the first host with a matching
MAC address wins. The new address is saved and written to the SDK config.

On first use the robot's address and serial are requested interactively.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runLocate,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vector-ipscan %s\n", version.Full())
	},
}

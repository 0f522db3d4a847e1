package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/vectorscan/internal/config"
	"github.com/muurk/vectorscan/internal/discovery"
	"github.com/muurk/vectorscan/internal/identity"
	"github.com/muurk/vectorscan/internal/locator"
	"github.com/muurk/vectorscan/internal/logging"
	"github.com/muurk/vectorscan/internal/netprobe"
	"github.com/muurk/vectorscan/internal/push"
	"github.com/muurk/vectorscan/internal/record"
	"github.com/muurk/vectorscan/internal/scan"
	"github.com/muurk/vectorscan/internal/sdkconfig"
	"github.com/muurk/vectorscan/internal/subnet"
	"github.com/muurk/vectorscan/internal/ui"
	"github.com/muurk/vectorscan/internal/version"
)

// newLogger initializes logging from the environment and tags every entry
// with a fresh run id.
func newLogger() *zap.Logger {
	// Initialize logging from environment variable (silent by default)
	// Set VECTORSCAN_LOG_LEVEL=debug to see detailed logs
	if err := logging.InitializeFromEnv(); err != nil {
		// Ignore error, GetLogger will create fallback logger
		_ = err
	}
	return logging.GetLogger().With(zap.String("run_id", uuid.NewString()))
}

// loadSettings reads the settings file, falling back to defaults when it
// cannot be read.
func loadSettings(logger *zap.Logger) *config.Settings {
	settings, err := config.Load()
	if err != nil {
		logger.Warn("Ignoring unreadable settings file", zap.Error(err))
		return config.DefaultSettings()
	}
	return settings
}

func runLocate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()
	settings := loadSettings(logger)

	recordPath, err := settings.RecordPath()
	if err != nil {
		return fmt.Errorf("failed to locate device record: %w", err)
	}
	sdkPath, err := settings.SDKConfigPath()
	if err != nil {
		return fmt.Errorf("failed to locate SDK config: %w", err)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout()).SetMaxHost(settings.Scan.MaxHost)
	printer.PrintHeader(ui.NewHeader("Vector IP scan", "vector-ipscan "+version.Version,
		ui.Detail{Key: "Record", Value: recordPath},
		ui.Detail{Key: "SDK config", Value: sdkPath},
	))

	sdkCfg, sdkErr := sdkconfig.Load(sdkPath)
	loadSDK := func() (*sdkconfig.Config, error) { return sdkCfg, sdkErr }

	prefs := settings.Scan
	macs := netprobe.NewResolver(netprobe.NewARPLookup(prefs.PingTimeout()), prefs.ResolveAttempts, prefs.ResolveDelay(), logger)
	prober := netprobe.NewProber(netprobe.NewExecPinger(prefs.PingTimeout()), macs, logger)

	var hints identity.HintSource
	if settings.Discovery.MDNSEnabled() {
		scanner := discovery.NewScanner()
		scanner.Timeout = settings.Discovery.MDNSTimeout()
		if robot := sdkCfg.Robot(""); robot != nil {
			scanner.Name = robot.Name
		}
		hints = scanner
	}

	var pusher push.Pusher = push.Disabled{}
	if !settings.Push.Disabled {
		pusher = push.NewCommandPusher(settings.Push.Command, logger)
	}

	var prompter locator.Prompter = ui.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if ui.IsTerminal() {
		prompter = ui.NewFormPrompter()
	}

	sweeper := scan.NewCoordinator(prober, scan.Options{
		Workers:  prefs.Workers,
		MaxHost:  prefs.MaxHost,
		Observer: printer,
	}, logger)
	enumerate := func() ([]subnet.Prefix, error) {
		return subnet.Enumerate(subnet.SystemInterfaces)
	}

	store := record.NewStore(recordPath)
	loc := locator.New(locator.Config{
		Identity:  identity.NewResolver(store, loadSDK, macs, hints, logger),
		Records:   store,
		Enumerate: enumerate,
		Sweeper:   sweeper,
		Pusher:    pusher,
		Prompter:  prompter,
		Steps:     ui.RegistrationSteps,
	}, logger)

	report, err := loc.Run(ctx)
	if isCancelled(err) {
		printer.Newline()
		printer.PrintWarning("Scan cancelled")
		return err
	}
	if report != nil {
		printReport(printer, report)
	}
	if err != nil {
		var title string
		switch {
		case errors.Is(err, locator.ErrRegistrationRequired):
			title = "Registration required"
		case report != nil:
			title = "SDK config update failed"
		default:
			title = "Locate failed"
		}
		printer.PrintError(title, err, troubleshooting(err))
		return err
	}
	return nil
}

// configCmd manages the settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the settings file",
	Long: `Show the settings file location and its effective values.

Use 'vector-ipscan config init' to write a settings file with the default
values, which can then be edited to tune the scan or the push command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		settings := loadSettings(newLogger())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Settings file: %s\n", path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintln(out, "  (not present, defaults in use)")
		}
		fmt.Fprintf(out, "Workers: %d\nHosts per subnet: 1-%d\nPing timeout: %s\n",
			settings.Scan.Workers, settings.Scan.MaxHost, settings.Scan.PingTimeout())
		fmt.Fprintf(out, "MAC lookup: %d attempts, %s apart\n",
			settings.Scan.ResolveAttempts, settings.Scan.ResolveDelay())
		fmt.Fprintf(out, "mDNS hints: %v\nPush to SDK config: %v\n",
			settings.Discovery.MDNSEnabled(), !settings.Push.Disabled)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("settings file already exists: %s", path)
		}
		if err := config.DefaultSettings().SaveFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

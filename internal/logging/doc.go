// Package logging provides structured logging for vector-ipscan.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used across the scanner: probe results, subnet sweeps and identity
// decisions.
//
// # Log Levels
//
//   - Debug: per-host probe results, resolution retries
//   - Info: sweep start/finish, identity decisions, record writes
//   - Warn: hardware address mismatches, failed probes, unreadable config files
//   - Error: failures that end the run
//
// # Configuration
//
// Logging is silent by default so the CLI output stays readable. Set the
// VECTORSCAN_LOG_LEVEL environment variable to enable it:
//
//	VECTORSCAN_LOG_LEVEL=debug vector-ipscan
//
// Initialize once at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The scan workers log
// through the same logger.
package logging

// Package ui provides terminal output and prompts for the vector-ipscan CLI.
//
// Output follows a "run once and exit" pattern built on Lipgloss:
//
//   - Header: run banner showing the command and the files in use
//   - Printer: progress lines during a sweep (one per live host) and
//     success / failure / warning result boxes at the end
//   - Instructions: the on-robot steps shown before registration prompts
//
// Registration input comes from a Prompter. On a terminal FormPrompter runs
// a small Bubble Tea form per field; otherwise LinePrompter reads lines from
// stdin. Both re-prompt until the value passes validation.
//
// # Logging Integration
//
// This package expects logging to be controlled via the VECTORSCAN_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui

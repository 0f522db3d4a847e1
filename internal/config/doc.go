// Package config manages the vector-ipscan settings file.
//
// Settings are stored as YAML in the platform's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/vector-ipscan/config.yaml or $HOME/.config/vector-ipscan/config.yaml
//   - macOS: $HOME/.config/vector-ipscan/config.yaml
//   - Windows: %LOCALAPPDATA%\vector-ipscan\config.yaml
//
// The file is optional. A missing file yields DefaultSettings, and any zero
// or out-of-range value is replaced by its default when loaded:
//
//	version: 1
//	scan:
//	  workers: 30
//	  max_host: 254
//	  ping_timeout_ms: 1000
//	  resolve_attempts: 10
//	  resolve_delay_ms: 500
//	discovery:
//	  mdns: true
//	  timeout_seconds: 3
//
// The device record itself (robot address, serial and MAC) is not stored
// here; see package record.
package config

package config

import "time"

// Defaults for the scan section.
const (
	DefaultWorkers         = 30
	DefaultMaxHost         = 254
	DefaultPingTimeoutMS   = 1000
	DefaultResolveAttempts = 10
	DefaultResolveDelayMS  = 500
	DefaultMDNSTimeoutSecs = 3

	// RecordFileName is the device record file kept next to config.yaml.
	RecordFileName = "ipscanner_config.json"
)

// DefaultPushCommand invokes the Vector SDK's configure module to write the
// robot address into the SDK's own configuration. Serial and address reach
// the script as argv entries, never as Python source.
var DefaultPushCommand = []string{
	"python3", "-c",
	"import sys; from anki_vector.configure.__main__ import write_config; " +
		"write_config(sys.argv[1], ip=sys.argv[2], clear={{if .Clear}}True{{else}}False{{end}})",
	"{{.Serial}}", "{{.Address}}",
}

// Settings represents the entire settings file.
type Settings struct {
	Version   int            `yaml:"version"`
	Scan      *ScanPrefs     `yaml:"scan,omitempty"`
	Paths     *PathPrefs     `yaml:"paths,omitempty"`
	Push      *PushPrefs     `yaml:"push,omitempty"`
	Discovery *DiscoveryPref `yaml:"discovery,omitempty"`
}

// ScanPrefs tunes the subnet sweep.
type ScanPrefs struct {
	Workers         int `yaml:"workers"`          // Worker goroutines per subnet
	MaxHost         int `yaml:"max_host"`         // Highest host number swept (1..max_host)
	PingTimeoutMS   int `yaml:"ping_timeout_ms"`  // Liveness probe timeout
	ResolveAttempts int `yaml:"resolve_attempts"` // Hardware address lookup attempts
	ResolveDelayMS  int `yaml:"resolve_delay_ms"` // Delay between lookup attempts
}

// PathPrefs overrides the location of files the scanner reads or writes.
// Empty values mean "use the default location".
type PathPrefs struct {
	Record    string `yaml:"record,omitempty"`     // Device record JSON
	SDKConfig string `yaml:"sdk_config,omitempty"` // Vector SDK sdk_config.ini
}

// PushPrefs configures the external configuration tool.
type PushPrefs struct {
	Disabled bool     `yaml:"disabled"`
	Command  []string `yaml:"command,omitempty"` // argv template; {{.Serial}}, {{.Address}}, {{.Clear}}
}

// DiscoveryPref configures the mDNS hint lookup. An absent mdns key means
// enabled.
type DiscoveryPref struct {
	MDNS           *bool `yaml:"mdns,omitempty"`
	TimeoutSeconds int   `yaml:"timeout_seconds"`
}

// DefaultSettings returns Settings populated with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Version: 1,
		Scan: &ScanPrefs{
			Workers:         DefaultWorkers,
			MaxHost:         DefaultMaxHost,
			PingTimeoutMS:   DefaultPingTimeoutMS,
			ResolveAttempts: DefaultResolveAttempts,
			ResolveDelayMS:  DefaultResolveDelayMS,
		},
		Paths: &PathPrefs{},
		Push: &PushPrefs{
			Command: append([]string(nil), DefaultPushCommand...),
		},
		Discovery: &DiscoveryPref{
			MDNS:           boolPtr(true),
			TimeoutSeconds: DefaultMDNSTimeoutSecs,
		},
	}
}

// Normalize fills missing sections and replaces out-of-range values with
// defaults. It returns the receiver for chaining.
func (s *Settings) Normalize() *Settings {
	defaults := DefaultSettings()

	if s.Version == 0 {
		s.Version = defaults.Version
	}
	if s.Scan == nil {
		s.Scan = defaults.Scan
	}
	if s.Paths == nil {
		s.Paths = defaults.Paths
	}
	if s.Push == nil {
		s.Push = defaults.Push
	}
	if s.Discovery == nil {
		s.Discovery = defaults.Discovery
	}

	if s.Scan.Workers <= 0 {
		s.Scan.Workers = DefaultWorkers
	}
	if s.Scan.MaxHost <= 0 || s.Scan.MaxHost > 254 {
		s.Scan.MaxHost = DefaultMaxHost
	}
	if s.Scan.PingTimeoutMS <= 0 {
		s.Scan.PingTimeoutMS = DefaultPingTimeoutMS
	}
	if s.Scan.ResolveAttempts <= 0 {
		s.Scan.ResolveAttempts = DefaultResolveAttempts
	}
	if s.Scan.ResolveDelayMS <= 0 {
		s.Scan.ResolveDelayMS = DefaultResolveDelayMS
	}
	if len(s.Push.Command) == 0 {
		s.Push.Command = append([]string(nil), DefaultPushCommand...)
	}
	if s.Discovery.MDNS == nil {
		s.Discovery.MDNS = boolPtr(true)
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		s.Discovery.TimeoutSeconds = DefaultMDNSTimeoutSecs
	}

	return s
}

// PingTimeout returns the liveness probe timeout as a duration.
func (p *ScanPrefs) PingTimeout() time.Duration {
	return time.Duration(p.PingTimeoutMS) * time.Millisecond
}

// ResolveDelay returns the delay between hardware address lookups.
func (p *ScanPrefs) ResolveDelay() time.Duration {
	return time.Duration(p.ResolveDelayMS) * time.Millisecond
}

// MDNSEnabled reports whether mDNS hints are looked up.
func (d *DiscoveryPref) MDNSEnabled() bool {
	return d.MDNS == nil || *d.MDNS
}

// MDNSTimeout returns how long the mDNS hint lookup browses.
func (d *DiscoveryPref) MDNSTimeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

func boolPtr(b bool) *bool { return &b }

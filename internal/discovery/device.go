package discovery

import (
	"fmt"
	"time"
)

// Device is a robot advertisement seen over mDNS
type Device struct {
	// Name is the robot name (e.g., "Vector-A1B2")
	Name string

	// Hostname is the mDNS hostname (e.g., "Vector-A1B2.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.37")
	IP string

	// Port is the advertised SDK port (typically 443)
	Port int

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the advertisement was received
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", d.Name, d.Hostname, d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}

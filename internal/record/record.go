// Package record persists the located robot's identity: its last confirmed
// address, its serial and its hardware (MAC) address.
//
// The file format is shared with earlier releases of the scanner:
//
//	{"0": {"ip": "192.168.1.37", "serial": "00e20100", "mac": "00:11:22:33:44:55"}}
//
// The file is always fully overwritten on Save, never merged.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// deviceKey is the index of the single device entry in the file.
const deviceKey = "0"

// ErrNotFound is returned by Load when no record file exists.
var ErrNotFound = errors.New("device record not found")

// Device is the persisted identity of the robot.
type Device struct {
	IP     string `json:"ip"`
	Serial string `json:"serial"`
	MAC    string `json:"mac,omitempty"`
}

// HardwareAddr parses the stored MAC. It returns nil when the MAC is absent
// or malformed.
func (d *Device) HardwareAddr() net.HardwareAddr {
	if d == nil || d.MAC == "" {
		return nil
	}
	mac, err := net.ParseMAC(d.MAC)
	if err != nil {
		return nil
	}
	return mac
}

// Complete reports whether address, serial and MAC are all present.
func (d *Device) Complete() bool {
	return d != nil && d.IP != "" && d.Serial != "" && d.HardwareAddr() != nil
}

// String returns a human-readable representation of the record.
func (d *Device) String() string {
	mac := d.MAC
	if mac == "" {
		mac = "unknown"
	}
	return fmt.Sprintf("Vector %s at %s (mac %s)", d.Serial, d.IP, mac)
}

// Store reads and writes the record file at Path.
type Store struct {
	Path string
}

// NewStore creates a store for the record file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the record. A missing file returns ErrNotFound.
func (s *Store) Load() (*Device, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var file map[string]*rawDevice
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", s.Path, err)
	}

	raw, ok := file[deviceKey]
	if !ok || raw == nil {
		return nil, ErrNotFound
	}

	return raw.device(), nil
}

// Save overwrites the record file with device. The write goes through a
// temporary file so a crash never leaves a truncated record behind.
func (s *Store) Save(device *Device) error {
	if device == nil {
		return fmt.Errorf("cannot save nil device record")
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	normalized := *device
	if mac := device.HardwareAddr(); mac != nil {
		normalized.MAC = mac.String()
	}

	data, err := json.Marshal(map[string]*Device{deviceKey: &normalized})
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary record: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// rawDevice tolerates a null "mac" written by older releases.
type rawDevice struct {
	IP     string  `json:"ip"`
	Serial string  `json:"serial"`
	MAC    *string `json:"mac"`
}

func (r *rawDevice) device() *Device {
	d := &Device{
		IP:     strings.TrimSpace(r.IP),
		Serial: strings.TrimSpace(r.Serial),
	}
	if r.MAC != nil {
		d.MAC = strings.ToLower(strings.TrimSpace(*r.MAC))
	}
	return d
}

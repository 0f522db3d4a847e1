package identity

import (
	"fmt"
	"net"
	"strings"

	"github.com/muurk/vectorscan/internal/record"
)

// Action is what the caller should do after identity resolution.
type Action int

const (
	// ActionRegister means the identity is incomplete; ask for the Missing
	// fields, resolve the hardware address and persist.
	ActionRegister Action = iota
	// ActionConfirmed means the configured address still answers with the
	// stored hardware address.
	ActionConfirmed
	// ActionAdopted means another known address answers with the stored
	// hardware address; Source says which.
	ActionAdopted
	// ActionScan means no known address matched; sweep for MAC.
	ActionScan
)

// String returns the action name used in logs
func (a Action) String() string {
	switch a {
	case ActionRegister:
		return "register"
	case ActionConfirmed:
		return "confirmed"
	case ActionAdopted:
		return "adopted"
	case ActionScan:
		return "scan"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Source is where a verified address came from.
type Source string

const (
	SourceRecord Source = "record"
	SourceSDK    Source = "sdk"
	SourceMDNS   Source = "mdns"
)

// Decision is the outcome of Resolver.Resolve.
type Decision struct {
	Action Action
	Source Source

	// Address is the verified address for ActionConfirmed and ActionAdopted,
	// and the configured (possibly stale or empty) address otherwise.
	Address string
	Serial  string
	MAC     net.HardwareAddr

	// Missing lists the fields the user must supply for ActionRegister.
	Missing []Field

	// Record is the device record as loaded, nil if absent or unreadable.
	Record *record.Device
}

// Shortcut reports whether the run ends without scanning.
func (d *Decision) Shortcut() bool {
	return d.Action != ActionScan
}

// NeedsPush reports whether the verified address must be written to the SDK
// config. An address adopted from the SDK config is already there.
func (d *Decision) NeedsPush() bool {
	switch d.Action {
	case ActionConfirmed:
		return true
	case ActionAdopted:
		return d.Source != SourceSDK
	default:
		return false
	}
}

// Device returns the record to persist for this decision.
func (d *Decision) Device() *record.Device {
	dev := &record.Device{IP: d.Address, Serial: d.Serial}
	if d.MAC != nil {
		dev.MAC = d.MAC.String()
	}
	return dev
}

// Needs reports whether f is one of the missing fields.
func (d *Decision) Needs(f Field) bool {
	for _, m := range d.Missing {
		if m == f {
			return true
		}
	}
	return false
}

// String returns a short description for logs and status output.
func (d *Decision) String() string {
	var b strings.Builder
	b.WriteString(d.Action.String())
	if d.Source != "" {
		fmt.Fprintf(&b, " via %s", d.Source)
	}
	if d.Address != "" {
		fmt.Fprintf(&b, " at %s", d.Address)
	}
	return b.String()
}

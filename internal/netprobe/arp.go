package netprobe

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/j-keck/arping"
)

// DefaultNeighborTable is the Linux kernel's IPv4 neighbour table.
const DefaultNeighborTable = "/proc/net/arp"

// HardwareLookup performs a single hardware address lookup. iface scopes the
// lookup to one interface; empty means "any interface".
type HardwareLookup interface {
	Lookup(ctx context.Context, address, iface string) (net.HardwareAddr, error)
}

// ARPLookup resolves hardware addresses from the kernel neighbour table,
// falling back to an ARP request.
type ARPLookup struct {
	// TablePath is the neighbour table to read (default: /proc/net/arp).
	// A missing file is skipped, so non-Linux hosts go straight to ARP.
	TablePath string

	// request sends one ARP request; replaced in tests.
	request func(ip net.IP, iface string) (net.HardwareAddr, error)
}

// NewARPLookup creates a lookup whose ARP requests wait at most timeout for
// a reply. The arping timeout is process-wide; the last call wins.
func NewARPLookup(timeout time.Duration) *ARPLookup {
	if timeout > 0 {
		arping.SetTimeout(timeout)
	}
	return &ARPLookup{
		TablePath: DefaultNeighborTable,
		request:   arpRequest,
	}
}

// Lookup returns the hardware address of address, or ErrNotFound.
func (a *ARPLookup) Lookup(ctx context.Context, address, iface string) (net.HardwareAddr, error) {
	ip := net.ParseIP(address).To4()
	if ip == nil {
		return nil, NewProbeError(ErrTypeInvalidAddress, address, "not an IPv4 address", nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, NewProbeError(ErrTypeCanceled, address, "lookup interrupted", err)
	}

	if mac := a.fromTable(ip, iface); mac != nil {
		return mac, nil
	}

	if a.request == nil {
		return nil, ErrNotFound
	}

	mac, err := a.request(ip, iface)
	if errors.Is(err, arping.ErrTimeout) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewProbeError(ErrTypeLookup, address, "arp request failed for", err)
	}
	if isZeroMAC(mac) {
		return nil, ErrNotFound
	}
	return mac, nil
}

func (a *ARPLookup) fromTable(ip net.IP, iface string) net.HardwareAddr {
	if a.TablePath == "" {
		return nil
	}
	f, err := os.Open(a.TablePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	for _, entry := range parseNeighborTable(f) {
		if !entry.IP.Equal(ip) {
			continue
		}
		if iface != "" && entry.Device != iface {
			continue
		}
		return entry.MAC
	}
	return nil
}

func arpRequest(ip net.IP, iface string) (net.HardwareAddr, error) {
	if iface != "" {
		mac, _, err := arping.PingOverIfaceByName(ip, iface)
		return mac, err
	}
	mac, _, err := arping.Ping(ip)
	return mac, err
}

// neighborEntry is one complete row of the neighbour table.
type neighborEntry struct {
	IP     net.IP
	MAC    net.HardwareAddr
	Device string
}

// parseNeighborTable parses /proc/net/arp:
//
//	IP address       HW type     Flags       HW address            Mask     Device
//	192.168.1.37     0x1         0x2         00:11:22:33:44:55     *        wlan0
//
// Incomplete entries (flags 0x0 or an all-zero MAC) are dropped.
func parseNeighborTable(r io.Reader) []neighborEntry {
	var entries []neighborEntry

	scanner := bufio.NewScanner(r)
	scanner.Scan() // header
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}

		if fields[2] == "0x0" {
			continue
		}

		ip := net.ParseIP(fields[0])
		mac, err := net.ParseMAC(fields[3])
		if ip == nil || err != nil || isZeroMAC(mac) {
			continue
		}

		entries = append(entries, neighborEntry{IP: ip, MAC: mac, Device: fields[5]})
	}

	return entries
}

func isZeroMAC(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}

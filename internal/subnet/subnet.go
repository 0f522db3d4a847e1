// Package subnet derives the /24-equivalent IPv4 prefixes of the host's
// network interfaces.
package subnet

import (
	"fmt"
	"net"
	"strconv"
)

// Prefix is the first three octets of an IPv4 network together with the
// interface it was discovered on.
type Prefix struct {
	Network   string // e.g. "192.168.1"
	Interface string // e.g. "wlan0"
}

// Host returns the address of host n on the prefix, e.g. "192.168.1.37".
func (p Prefix) Host(n int) string {
	return p.Network + "." + strconv.Itoa(n)
}

// String returns the prefix in CIDR notation with its interface.
func (p Prefix) String() string {
	return fmt.Sprintf("%s.0/24 (%s)", p.Network, p.Interface)
}

// Interface is the subset of an interface that the enumerator needs.
type Interface struct {
	Name  string
	Flags net.Flags
	Addrs func() ([]net.Addr, error)
}

// Lister returns the host's network interfaces.
type Lister func() ([]Interface, error)

// SystemInterfaces lists the host's interfaces via the net package.
func SystemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(ifaces))
	for i := range ifaces {
		iface := ifaces[i]
		out = append(out, Interface{
			Name:  iface.Name,
			Flags: iface.Flags,
			Addrs: iface.Addrs,
		})
	}
	return out, nil
}

// Enumerate returns the distinct prefixes of every interface that is up and
// not loopback, in enumeration order. Only the first IPv4 address of each
// interface is used, and each prefix keeps the first interface that produced
// it. Interfaces without IPv4 or whose addresses cannot be listed are skipped.
func Enumerate(list Lister) ([]Prefix, error) {
	if list == nil {
		list = SystemInterfaces
	}

	ifaces, err := list()
	if err != nil {
		return nil, err
	}

	var prefixes []Prefix
	seen := make(map[string]bool)

	for _, iface := range ifaces {
		if !usable(iface) {
			continue
		}

		ip := firstIPv4(iface)
		if ip == nil {
			continue
		}

		network := fmt.Sprintf("%d.%d.%d", ip[0], ip[1], ip[2])
		if seen[network] {
			continue
		}
		seen[network] = true

		prefixes = append(prefixes, Prefix{Network: network, Interface: iface.Name})
	}

	return prefixes, nil
}

func usable(iface Interface) bool {
	return iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0
}

func firstIPv4(iface Interface) net.IP {
	if iface.Addrs == nil {
		return nil
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil
	}

	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4
		}
	}
	return nil
}

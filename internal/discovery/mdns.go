package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Vector advertises
	ServiceType = "_ankivector._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 3 * time.Second

	// DefaultPort is Vector's SDK port
	DefaultPort = 443
)

// namePattern matches Vector instance and host names ("Vector-A1B2",
// "Vector-A1B2.local.")
var namePattern = regexp.MustCompile(`^(Vector-[A-Za-z0-9]{4})(\.local\.?)?$`)

// browseFunc starts browsing for service and sends entries until ctx is done.
type browseFunc func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error

// Scanner handles mDNS robot discovery
type Scanner struct {
	// Timeout is how long to browse
	Timeout time.Duration

	// Name, when set, restricts results to the robot with that name
	Name string

	browse browseFunc
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
		browse:  zeroconfBrowse,
	}
}

func zeroconfBrowse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}
	return resolver.Browse(ctx, service, domain, entries)
}

// ScanForDevicesWithContext browses for Timeout and returns every robot
// seen, deduplicated by address.
func (s *Scanner) ScanForDevicesWithContext(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	var (
		mu      sync.Mutex
		devices []*Device
		seen    = make(map[string]bool)
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				device := s.parseServiceEntry(entry)
				if device == nil {
					continue
				}
				mu.Lock()
				if !seen[device.IP] {
					seen[device.IP] = true
					devices = append(devices, device)
				}
				mu.Unlock()
			}
		}
	}()

	browse := s.browse
	if browse == nil {
		browse = zeroconfBrowse
	}
	if err := browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Device(nil), devices...), nil
}

// Hints returns the advertised IPv4 addresses of matching robots.
func (s *Scanner) Hints(ctx context.Context) ([]string, error) {
	devices, err := s.ScanForDevicesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, len(devices))
	for _, d := range devices {
		addrs = append(addrs, d.IP)
	}
	return addrs, nil
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not a Vector, has no IPv4 address, or does not
// match Name.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	if entry == nil {
		return nil
	}

	name := robotName(entry.Instance)
	if name == "" {
		name = robotName(entry.HostName)
	}
	if name == "" {
		return nil
	}

	if s.Name != "" && !strings.EqualFold(s.Name, name) {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		if v4 := addr.To4(); v4 != nil {
			ip = v4.String()
			break
		}
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Device{
		Name:         name,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

func robotName(s string) string {
	matches := namePattern.FindStringSubmatch(s)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

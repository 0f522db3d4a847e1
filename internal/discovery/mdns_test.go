package discovery

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, ips ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if parsed.To4() != nil {
			e.AddrIPv4 = append(e.AddrIPv4, parsed)
		} else {
			e.AddrIPv6 = append(e.AddrIPv6, parsed)
		}
	}
	return e
}

func TestScanner_parseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name:     "vector with ipv4",
			entry:    entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37"),
			wantName: "Vector-A1B2",
			wantIP:   "192.168.1.37",
			wantPort: 443,
		},
		{
			name:     "name taken from hostname",
			entry:    entry("", "Vector-Z9Y8.local", 443, "10.0.0.5"),
			wantName: "Vector-Z9Y8",
			wantIP:   "10.0.0.5",
			wantPort: 443,
		},
		{
			name:     "no port defaults to 443",
			entry:    entry("Vector-A1B2", "", 0, "172.16.0.1"),
			wantName: "Vector-A1B2",
			wantIP:   "172.16.0.1",
			wantPort: DefaultPort,
		},
		{
			name:     "prefers ipv4 over ipv6",
			entry:    entry("Vector-A1B2", "Vector-A1B2.local.", 443, "fe80::2", "192.168.1.50"),
			wantName: "Vector-A1B2",
			wantIP:   "192.168.1.50",
			wantPort: 443,
		},
		{
			name:    "ipv6 only ignored",
			entry:   entry("Vector-A1B2", "Vector-A1B2.local.", 443, "fe80::1"),
			wantNil: true,
		},
		{
			name:    "not a vector",
			entry:   entry("printer", "printer.local.", 631, "192.168.1.9"),
			wantNil: true,
		},
		{
			name:    "malformed vector name",
			entry:   entry("Vector-TOOLONG", "Vector-TOOLONG.local.", 443, "192.168.1.9"),
			wantNil: true,
		},
		{
			name:     "name filter matches case-insensitively",
			filter:   "vector-a1b2",
			entry:    entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37"),
			wantName: "Vector-A1B2",
			wantIP:   "192.168.1.37",
			wantPort: 443,
		},
		{
			name:    "name filter rejects other robot",
			filter:  "Vector-C3D4",
			entry:   entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37"),
			wantNil: true,
		},
		{
			name:    "nil entry",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner()
			scanner.Name = tt.filter

			device := scanner.parseServiceEntry(tt.entry)
			if tt.wantNil {
				if device != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}
			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want device")
			}
			if device.Name != tt.wantName {
				t.Errorf("Name = %v, want %v", device.Name, tt.wantName)
			}
			if device.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", device.Port, tt.wantPort)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	e := entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37")
	e.Text = []string{"build=1.8.1", "flag"}

	device := NewScanner().parseServiceEntry(e)
	if device == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got := device.GetMetadata("build"); got != "1.8.1" {
		t.Errorf("GetMetadata(build) = %q", got)
	}
	if _, ok := device.Metadata["flag"]; !ok {
		t.Error("key without value not stored")
	}
	if device.DiscoveredAt.IsZero() {
		t.Error("DiscoveredAt not set")
	}
}

func fakeBrowse(entries ...*zeroconf.ServiceEntry) browseFunc {
	return func(ctx context.Context, service, domain string, out chan<- *zeroconf.ServiceEntry) error {
		if service != ServiceType {
			return errors.New("unexpected service " + service)
		}
		go func() {
			for _, e := range entries {
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}()
		return nil
	}
}

func TestScanner_Hints(t *testing.T) {
	scanner := NewScanner()
	scanner.Timeout = 100 * time.Millisecond
	scanner.browse = fakeBrowse(
		entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37"),
		entry("printer", "printer.local.", 631, "192.168.1.9"),
		entry("Vector-A1B2", "Vector-A1B2.local.", 443, "192.168.1.37"),
		entry("Vector-C3D4", "Vector-C3D4.local.", 443, "192.168.1.40"),
	)

	addrs, err := scanner.Hints(context.Background())
	if err != nil {
		t.Fatalf("Hints() error = %v", err)
	}
	if len(addrs) != 2 || addrs[0] != "192.168.1.37" || addrs[1] != "192.168.1.40" {
		t.Errorf("Hints() = %v, want [192.168.1.37 192.168.1.40]", addrs)
	}
}

func TestScanner_HintsBrowseError(t *testing.T) {
	scanner := NewScanner()
	scanner.Timeout = 50 * time.Millisecond
	scanner.browse = func(ctx context.Context, service, domain string, out chan<- *zeroconf.ServiceEntry) error {
		return errors.New("no multicast")
	}

	if _, err := scanner.Hints(context.Background()); err == nil {
		t.Error("Hints() error = nil, want error")
	}
}

func TestScanner_HintsCanceled(t *testing.T) {
	scanner := NewScanner()
	scanner.Timeout = time.Hour
	scanner.browse = fakeBrowse()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		scanner.Hints(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Hints() did not return after cancel")
	}
}

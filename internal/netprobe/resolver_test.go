package netprobe

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"
)

// scriptedLookup fails the first failures calls, then returns mac.
type scriptedLookup struct {
	mu       sync.Mutex
	failures int
	calls    int
	mac      net.HardwareAddr
	err      error
}

func (s *scriptedLookup) Lookup(ctx context.Context, address, iface string) (net.HardwareAddr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		if s.err != nil {
			return nil, s.err
		}
		return nil, ErrNotFound
	}
	return s.mac, nil
}

func TestResolver_Resolve(t *testing.T) {
	mac, _ := net.ParseMAC("00:11:22:33:44:55")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantOK    bool
		wantCalls int
	}{
		{name: "first attempt succeeds", failures: 0, wantOK: true, wantCalls: 1},
		{name: "succeeds on the tenth attempt", failures: 9, wantOK: true, wantCalls: 10},
		{name: "ten failures gives up", failures: 10, wantOK: false, wantCalls: 10},
		{name: "eleven failures gives up after ten", failures: 11, wantOK: false, wantCalls: 10},
		{name: "lookup errors are retried", failures: 3, err: errors.New("boom"), wantOK: true, wantCalls: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &scriptedLookup{failures: tt.failures, err: tt.err, mac: mac}
			r := NewResolver(lookup, 10, 0, nil)

			got, ok := r.Resolve(context.Background(), "192.168.1.37", "wlan0")
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && got.String() != mac.String() {
				t.Errorf("Resolve() mac = %v, want %v", got, mac)
			}
			if !tt.wantOK && got != nil {
				t.Errorf("Resolve() mac = %v, want nil", got)
			}
			if lookup.calls != tt.wantCalls {
				t.Errorf("lookup calls = %d, want %d", lookup.calls, tt.wantCalls)
			}
		})
	}
}

func TestResolver_InvalidAddressStopsRetrying(t *testing.T) {
	lookup := &scriptedLookup{
		failures: 100,
		err:      NewProbeError(ErrTypeInvalidAddress, "bogus", "not an IPv4 address", nil),
	}
	r := NewResolver(lookup, 10, 0, nil)

	if _, ok := r.Resolve(context.Background(), "bogus", ""); ok {
		t.Fatal("Resolve() ok = true, want false")
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestResolver_CanceledContext(t *testing.T) {
	lookup := &scriptedLookup{failures: 100}
	r := NewResolver(lookup, 10, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		r.Resolve(ctx, "192.168.1.37", "")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Resolve() did not return after cancel")
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestNewResolver_Defaults(t *testing.T) {
	r := NewResolver(&scriptedLookup{}, 0, -1, nil)
	if r.MaxAttempts != DefaultResolveAttempts {
		t.Errorf("MaxAttempts = %d, want %d", r.MaxAttempts, DefaultResolveAttempts)
	}
	if r.RetryDelay != DefaultResolveDelay {
		t.Errorf("RetryDelay = %v, want %v", r.RetryDelay, DefaultResolveDelay)
	}
}

package netprobe

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakePinger struct {
	alive bool
	err   error
}

func (f *fakePinger) Alive(ctx context.Context, address string) (bool, error) {
	return f.alive, f.err
}

type fakeResolver struct {
	mac   net.HardwareAddr
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, address, iface string) (net.HardwareAddr, bool) {
	f.calls++
	return f.mac, f.mac != nil
}

func TestProber_Probe(t *testing.T) {
	mac, _ := net.ParseMAC("00:11:22:33:44:55")
	target := Target{Address: "192.168.1.37", Interface: "wlan0"}

	tests := []struct {
		name         string
		pinger       *fakePinger
		resolverMAC  net.HardwareAddr
		wantState    State
		wantMAC      bool
		wantResolves int
	}{
		{name: "down host", pinger: &fakePinger{alive: false}, wantState: StateDown},
		{name: "alive with mac", pinger: &fakePinger{alive: true}, resolverMAC: mac, wantState: StateAlive, wantMAC: true, wantResolves: 1},
		{name: "alive without mac", pinger: &fakePinger{alive: true}, wantState: StateAlive, wantResolves: 1},
		{name: "ping error", pinger: &fakePinger{err: errors.New("boom")}, wantState: StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{mac: tt.resolverMAC}
			p := NewProber(tt.pinger, resolver, nil)

			res := p.Probe(context.Background(), target)
			if res.State != tt.wantState {
				t.Errorf("State = %v, want %v", res.State, tt.wantState)
			}
			if res.Target != target {
				t.Errorf("Target = %+v, want %+v", res.Target, target)
			}
			if (res.HardwareAddr != nil) != tt.wantMAC {
				t.Errorf("HardwareAddr = %v, want present=%v", res.HardwareAddr, tt.wantMAC)
			}
			if tt.wantState == StateError && res.Err == nil {
				t.Error("Err = nil, want error")
			}
			if resolver.calls != tt.wantResolves {
				t.Errorf("resolver calls = %d, want %d", resolver.calls, tt.wantResolves)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateDown:  "down",
		StateAlive: "alive",
		StateError: "error",
		State(42):  "State(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

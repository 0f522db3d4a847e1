package netprobe

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestPingArgs(t *testing.T) {
	tests := []struct {
		goos    string
		timeout time.Duration
		want    []string
	}{
		{"linux", time.Second, []string{"-c", "1", "-W", "1", "192.168.1.37"}},
		{"linux", 1500 * time.Millisecond, []string{"-c", "1", "-W", "2", "192.168.1.37"}},
		{"linux", 100 * time.Millisecond, []string{"-c", "1", "-W", "1", "192.168.1.37"}},
		{"darwin", time.Second, []string{"-c", "1", "-W", "1000", "192.168.1.37"}},
		{"freebsd", 250 * time.Millisecond, []string{"-c", "1", "-W", "250", "192.168.1.37"}},
		{"windows", time.Second, []string{"-n", "1", "-w", "1000", "192.168.1.37"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.timeout.String(), func(t *testing.T) {
			got := PingArgs(tt.goos, "192.168.1.37", tt.timeout)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PingArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecPinger_InvalidAddress(t *testing.T) {
	p := NewExecPinger(time.Second)

	for _, addr := range []string{"", "host.local", "::1", "256.1.1.1"} {
		alive, err := p.Alive(context.Background(), addr)
		if alive {
			t.Errorf("Alive(%q) = true, want false", addr)
		}
		if !IsInvalidAddress(err) {
			t.Errorf("Alive(%q) error = %v, want invalid address", addr, err)
		}
	}
}

func TestExecPinger_MissingBinary(t *testing.T) {
	p := NewExecPinger(time.Second)
	p.Path = "/nonexistent/ping-binary"

	alive, err := p.Alive(context.Background(), "127.0.0.1")
	if alive {
		t.Error("Alive() = true, want false")
	}
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) || probeErr.Type != ErrTypeExec {
		t.Errorf("Alive() error = %v, want ErrTypeExec", err)
	}
}

func TestNewExecPinger_DefaultTimeout(t *testing.T) {
	if p := NewExecPinger(0); p.Timeout != DefaultPingTimeout {
		t.Errorf("Timeout = %v, want %v", p.Timeout, DefaultPingTimeout)
	}
}

package netprobe

import (
	"context"
	"errors"
	"math"
	"net/netip"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// DefaultPingTimeout is how long a single echo request waits for a reply.
const DefaultPingTimeout = time.Second

// Pinger checks whether an address answers a liveness probe.
type Pinger interface {
	Alive(ctx context.Context, address string) (bool, error)
}

// ExecPinger runs the operating system's ping binary once per probe.
type ExecPinger struct {
	// Path is the ping binary (default: "ping", searched in PATH)
	Path string

	// Timeout bounds the wait for the echo reply
	Timeout time.Duration

	// GOOS selects the flag dialect (default: runtime.GOOS)
	GOOS string
}

// NewExecPinger creates a pinger for the current platform.
func NewExecPinger(timeout time.Duration) *ExecPinger {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	return &ExecPinger{
		Path:    "ping",
		Timeout: timeout,
		GOOS:    runtime.GOOS,
	}
}

// Alive sends one echo request to address. A host that does not reply in
// time is reported as not alive with a nil error.
func (p *ExecPinger) Alive(ctx context.Context, address string) (bool, error) {
	addr, err := netip.ParseAddr(address)
	if err != nil || !addr.Is4() {
		return false, NewProbeError(ErrTypeInvalidAddress, address, "not an IPv4 address", err)
	}

	// The binary enforces Timeout itself; the context deadline only guards
	// against a ping that hangs.
	runCtx, cancel := context.WithTimeout(ctx, p.Timeout+time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.Path, PingArgs(p.GOOS, addr.String(), p.Timeout)...)
	err = cmd.Run()
	if err == nil {
		return true, nil
	}

	if ctx.Err() != nil {
		return false, NewProbeError(ErrTypeCanceled, address, "ping interrupted", ctx.Err())
	}
	if runCtx.Err() != nil {
		return false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}

	return false, NewProbeError(ErrTypeExec, address, "failed to run ping for", err)
}

// PingArgs builds the argument list for a single echo request with the given
// reply timeout, in the flag dialect of goos.
func PingArgs(goos, address string, timeout time.Duration) []string {
	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), address}
	case "darwin", "freebsd", "netbsd", "openbsd":
		return []string{"-c", "1", "-W", strconv.FormatInt(timeout.Milliseconds(), 10), address}
	default:
		secs := int(math.Ceil(timeout.Seconds()))
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", "1", "-W", strconv.Itoa(secs), address}
	}
}

package netprobe

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
)

// State is the outcome of probing one candidate.
type State int

const (
	// StateDown means the host did not answer the liveness probe
	StateDown State = iota
	// StateAlive means the host answered; HardwareAddr may still be nil
	StateAlive
	// StateError means the probe itself failed; Err holds the cause
	StateError
)

// String returns the state name used in logs and progress output
func (s State) String() string {
	switch s {
	case StateDown:
		return "down"
	case StateAlive:
		return "alive"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Target is one candidate address, bound to the interface its subnet was
// discovered on.
type Target struct {
	Address   string
	Interface string
}

// Result is the typed outcome of a probe.
type Result struct {
	Target
	State        State
	HardwareAddr net.HardwareAddr // nil unless State is StateAlive and resolution succeeded
	Err          error            // set only for StateError
}

// Prober combines a liveness probe with hardware address resolution.
type Prober struct {
	pinger   Pinger
	resolver HardwareResolver
	logger   *zap.Logger
}

// NewProber creates a Prober from its two collaborators.
func NewProber(pinger Pinger, resolver HardwareResolver, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		pinger:   pinger,
		resolver: resolver,
		logger:   logger,
	}
}

// Probe checks liveness of target and, if alive, resolves its hardware
// address. Callers running many probes recover panics themselves, as
// scan.Coordinator does.
func (p *Prober) Probe(ctx context.Context, target Target) (res Result) {
	res.Target = target

	alive, err := p.pinger.Alive(ctx, target.Address)
	if err != nil {
		res.State = StateError
		res.Err = err
		return res
	}
	if !alive {
		res.State = StateDown
		return res
	}

	res.State = StateAlive
	if mac, ok := p.resolver.Resolve(ctx, target.Address, target.Interface); ok {
		res.HardwareAddr = mac
	}
	return res
}

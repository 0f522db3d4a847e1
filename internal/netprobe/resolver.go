package netprobe

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultResolveAttempts is how many lookups Resolver makes per address
	DefaultResolveAttempts = 10

	// DefaultResolveDelay is the wait between lookups
	DefaultResolveDelay = 500 * time.Millisecond
)

// HardwareResolver resolves the hardware address of a live host.
type HardwareResolver interface {
	// Resolve returns the hardware address and true, or nil and false when
	// it could not be resolved.
	Resolve(ctx context.Context, address, iface string) (net.HardwareAddr, bool)
}

// Resolver retries a HardwareLookup a bounded number of times with a fixed
// delay between attempts.
type Resolver struct {
	// Lookup performs each attempt
	Lookup HardwareLookup

	// MaxAttempts is the total number of lookups before giving up
	MaxAttempts int

	// RetryDelay is the fixed delay between attempts
	RetryDelay time.Duration

	logger *zap.Logger
}

// NewResolver creates a Resolver. Non-positive attempts fall back to
// DefaultResolveAttempts; a negative delay falls back to DefaultResolveDelay.
func NewResolver(lookup HardwareLookup, attempts int, delay time.Duration, logger *zap.Logger) *Resolver {
	if attempts <= 0 {
		attempts = DefaultResolveAttempts
	}
	if delay < 0 {
		delay = DefaultResolveDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		Lookup:      lookup,
		MaxAttempts: attempts,
		RetryDelay:  delay,
		logger:      logger,
	}
}

// Resolve looks up the hardware address of address on iface. Lookup errors
// are treated as transient; after MaxAttempts failures it returns nil, false.
// Cancelling ctx stops the retries early.
func (r *Resolver) Resolve(ctx context.Context, address, iface string) (net.HardwareAddr, bool) {
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		if attempt > 1 && !sleepCtx(ctx, r.RetryDelay) {
			return nil, false
		}
		if ctx.Err() != nil {
			return nil, false
		}

		mac, err := r.Lookup.Lookup(ctx, address, iface)
		if err == nil && len(mac) > 0 {
			return mac, true
		}
		if IsInvalidAddress(err) {
			return nil, false
		}

		r.logger.Debug("hardware address lookup failed, retrying",
			zap.String("address", address),
			zap.String("interface", iface),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.MaxAttempts),
			zap.Error(err),
		)
	}

	return nil, false
}

// sleepCtx waits for d or until ctx is done. It reports whether the full
// delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

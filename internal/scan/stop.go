package scan

import (
	"sync"
	"sync/atomic"

	"github.com/muurk/vectorscan/internal/netprobe"
)

// StopSignal records the first match of a run. It transitions from unset to
// set exactly once and is never reset.
type StopSignal struct {
	fired atomic.Bool

	mu     sync.Mutex
	target netprobe.Target
}

// NewStopSignal returns an unset signal.
func NewStopSignal() *StopSignal {
	return &StopSignal{}
}

// Fired reports whether the signal has been set. Safe to call without
// holding any lock.
func (s *StopSignal) Fired() bool {
	return s.fired.Load()
}

// Fire sets the signal to target. It returns true only for the caller that
// performed the transition; later callers get false and the stored target is
// unchanged.
func (s *StopSignal) Fire(target netprobe.Target) bool {
	if s.fired.Load() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fired.Load() {
		return false
	}
	s.target = target
	s.fired.Store(true)
	return true
}

// Target returns the matched target and whether the signal has fired.
func (s *StopSignal) Target() (netprobe.Target, bool) {
	if !s.fired.Load() {
		return netprobe.Target{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, true
}

// Address returns the matched address, or "" if the signal has not fired.
func (s *StopSignal) Address() string {
	t, _ := s.Target()
	return t.Address
}

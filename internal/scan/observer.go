package scan

import (
	"github.com/muurk/vectorscan/internal/netprobe"
	"github.com/muurk/vectorscan/internal/subnet"
)

// Observer receives progress events during a run. Methods other than
// PrefixStarted are called from worker goroutines one at a time, and never
// after Sweep has returned. They must not call back into the Coordinator.
type Observer interface {
	// PrefixStarted is called before a prefix is swept
	PrefixStarted(prefix subnet.Prefix)

	// HostAlive is called for each live host while the run is undecided
	HostAlive(res netprobe.Result)

	// ProbeFailed is called for a probe that ended in StateError
	ProbeFailed(res netprobe.Result)

	// Matched is called once, by the worker that won the run
	Matched(res netprobe.Result)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) PrefixStarted(subnet.Prefix) {}
func (NopObserver) HostAlive(netprobe.Result) {}
func (NopObserver) ProbeFailed(netprobe.Result) {}
func (NopObserver) Matched(netprobe.Result) {}

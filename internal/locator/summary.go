package locator

import (
	"time"

	"github.com/muurk/vectorscan/internal/record"
	"github.com/muurk/vectorscan/internal/scan"
)

// Summary is the aggregated result of a sweep.
type Summary struct {
	Found       bool
	Address     string
	Interface   string
	Elapsed     time.Duration
	Probed      int
	Prefixes    int
	NeedsUpdate bool // found at an address other than the recorded one
}

// Summarize combines a sweep outcome with the persisted record. A nil outcome
// summarises as not found.
func Summarize(outcome *scan.Outcome, rec *record.Device) Summary {
	if outcome == nil {
		return Summary{}
	}

	s := Summary{
		Found:     outcome.Found,
		Address:   outcome.Address,
		Interface: outcome.Interface,
		Elapsed:   outcome.Elapsed,
		Probed:    outcome.Probed,
		Prefixes:  outcome.Prefixes,
	}

	recorded := ""
	if rec != nil {
		recorded = rec.IP
	}
	s.NeedsUpdate = s.Found && s.Address != recorded
	return s
}

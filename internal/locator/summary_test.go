package locator

import (
	"testing"
	"time"

	"github.com/muurk/vectorscan/internal/record"
	"github.com/muurk/vectorscan/internal/scan"
)

func TestSummarize(t *testing.T) {
	rec := &record.Device{IP: "192.168.1.37"}

	tests := []struct {
		name        string
		outcome     *scan.Outcome
		rec         *record.Device
		wantFound   bool
		wantUpdate  bool
		wantAddress string
	}{
		{name: "nil outcome", outcome: nil, rec: rec},
		{name: "not found", outcome: &scan.Outcome{Probed: 254}, rec: rec},
		{name: "moved", outcome: &scan.Outcome{Found: true, Address: "192.168.1.80"}, rec: rec, wantFound: true, wantUpdate: true, wantAddress: "192.168.1.80"},
		{name: "unchanged", outcome: &scan.Outcome{Found: true, Address: "192.168.1.37"}, rec: rec, wantFound: true, wantAddress: "192.168.1.37"},
		{name: "no record", outcome: &scan.Outcome{Found: true, Address: "192.168.1.37"}, wantFound: true, wantUpdate: true, wantAddress: "192.168.1.37"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.outcome, tt.rec)
			if s.Found != tt.wantFound || s.NeedsUpdate != tt.wantUpdate || s.Address != tt.wantAddress {
				t.Errorf("Summarize() = %+v", s)
			}
		})
	}
}

func TestSummarize_CopiesCounters(t *testing.T) {
	s := Summarize(&scan.Outcome{Elapsed: 3 * time.Second, Probed: 300, Prefixes: 2, Interface: "eth0"}, nil)
	if s.Elapsed != 3*time.Second || s.Probed != 300 || s.Prefixes != 2 || s.Interface != "eth0" {
		t.Errorf("Summarize() = %+v", s)
	}
}

package main

import (
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/muurk/vectorscan/internal/locator"
	"github.com/muurk/vectorscan/internal/ui"
)

// printReport renders the end of a run.
func printReport(p *ui.Printer, r *locator.Report) {
	if r.Summary != nil && r.Summary.Prefixes > 0 {
		p.Divider()
		p.Info("Scanning completed in: %s", r.Summary.Elapsed.Round(time.Millisecond))
		p.Divider()
		p.Newline()
	}

	var details []ui.Detail
	if r.Device != nil {
		details = append(details,
			ui.Detail{Key: "Address", Value: r.Device.IP},
			ui.Detail{Key: "Serial", Value: r.Device.Serial},
		)
		if r.Device.MAC != "" {
			details = append(details, ui.Detail{Key: "MAC", Value: r.Device.MAC})
		}
	}
	if r.Summary != nil && r.Summary.Found {
		details = append(details, ui.Detail{Key: "Interface", Value: r.Summary.Interface})
	}
	if r.Pushed {
		details = append(details, ui.Detail{Key: "SDK config", Value: "updated"})
	}
	if r.Note != "" {
		details = append(details, ui.Detail{Key: "Note", Value: r.Note})
	}

	switch r.Kind {
	case locator.KindRegistered:
		if r.Device != nil && r.Device.MAC == "" {
			p.PrintWarning("Vector registered without MAC address", details...)
			return
		}
		p.PrintSuccess("Vector registered", details...)
	case locator.KindConfirmed:
		p.PrintSuccess("Vector ip unchanged, nothing to do", details...)
	case locator.KindAdopted:
		p.PrintSuccess(fmt.Sprintf("Vector answered at its %s address", r.Decision.Source), details...)
	case locator.KindFound:
		p.PrintSuccess("Vector detected at "+r.Summary.Address, details...)
	case locator.KindUnchanged:
		details = append(details, ui.Detail{Key: "Address", Value: r.Summary.Address})
		p.PrintSuccess("Vector ip unchanged, no configuration update needed", details...)
	case locator.KindNotFound:
		if r.Summary != nil {
			details = append(details, ui.Detail{Key: "Probed", Value: fmt.Sprintf("%d hosts on %d subnet(s)", r.Summary.Probed, r.Summary.Prefixes)})
		}
		p.PrintWarning("Vector not found", details...)
	}
}

// troubleshooting returns tips for a failed run.
func troubleshooting(err error) []string {
	var exitErr *exec.ExitError
	var execErr *exec.Error
	switch {
	case errors.Is(err, locator.ErrRegistrationRequired):
		return []string{
			"Run vector-ipscan from a terminal to enter the address and serial",
			"Or configure the robot once with the Vector SDK (python3 -m anki_vector.configure)",
		}
	case errors.As(err, &execErr):
		return []string{
			"Check that python3 and the anki_vector package are installed",
			"Or set push.command in the settings file (vector-ipscan config init)",
		}
	case errors.As(err, &exitErr):
		return []string{
			"Run the SDK configure tool manually to see its full output",
			"Set push.disabled: true in the settings file to skip this step",
		}
	default:
		return nil
	}
}

// Package locator runs one locate cycle: identity resolution, then, only if
// needed, a sweep of every local prefix, then persisting and pushing the
// result.
package locator

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/muurk/vectorscan/internal/identity"
	"github.com/muurk/vectorscan/internal/logging"
	"github.com/muurk/vectorscan/internal/push"
	"github.com/muurk/vectorscan/internal/record"
	"github.com/muurk/vectorscan/internal/scan"
	"github.com/muurk/vectorscan/internal/subnet"
)

// ErrRegistrationRequired is returned when registration values are missing
// and no Prompter is configured.
var ErrRegistrationRequired = errors.New("robot address and serial are required but no prompt is available")

// Kind is how a run ended.
type Kind int

const (
	// KindRegistered means the identity was entered and persisted
	KindRegistered Kind = iota
	// KindConfirmed means the recorded address is still correct
	KindConfirmed
	// KindAdopted means another known address was verified and adopted
	KindAdopted
	// KindFound means a sweep found the robot at a new address
	KindFound
	// KindUnchanged means a sweep found the robot at its recorded address
	KindUnchanged
	// KindNotFound means a sweep did not find the robot
	KindNotFound
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindRegistered:
		return "registered"
	case KindConfirmed:
		return "confirmed"
	case KindAdopted:
		return "adopted"
	case KindFound:
		return "found"
	case KindUnchanged:
		return "unchanged"
	case KindNotFound:
		return "not-found"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Report describes the end of a run.
type Report struct {
	Kind     Kind
	Decision *identity.Decision

	// Device is the record written during the run, nil if none was written.
	Device *record.Device

	// Summary is set for runs that swept.
	Summary *Summary

	// Pushed reports whether the address was pushed to the SDK config.
	Pushed bool

	// Incomplete is set when the sweep could not cover every prefix.
	Incomplete bool
	Note       string
}

// IdentityResolver is implemented by *identity.Resolver.
type IdentityResolver interface {
	Resolve(ctx context.Context) (*identity.Decision, error)
	HardwareAddrAt(ctx context.Context, address string) (net.HardwareAddr, bool)
}

// RecordSaver is implemented by *record.Store.
type RecordSaver interface {
	Save(device *record.Device) error
}

// Sweeper is implemented by *scan.Coordinator.
type Sweeper interface {
	Run(ctx context.Context, target net.HardwareAddr, prefixes []subnet.Prefix) (*scan.Outcome, error)
}

// Prompter asks for registration values. ui.LinePrompter and
// ui.FormPrompter implement it.
type Prompter interface {
	Instruct(title string, steps []string)
	Prompt(ctx context.Context, label string, validate func(string) error) (string, error)
}

// Config holds a Locator's collaborators. Prompter may be nil when the run is
// not interactive; Pusher nil disables pushing.
type Config struct {
	Identity  IdentityResolver
	Records   RecordSaver
	Enumerate func() ([]subnet.Prefix, error)
	Sweeper   Sweeper
	Pusher    push.Pusher
	Prompter  Prompter

	// Steps are shown before registration prompts
	Steps []string
}

// Locator runs locate cycles.
type Locator struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Locator.
func New(cfg Config, logger *zap.Logger) *Locator {
	if cfg.Pusher == nil {
		cfg.Pusher = push.Disabled{}
	}
	if cfg.Enumerate == nil {
		cfg.Enumerate = func() ([]subnet.Prefix, error) { return subnet.Enumerate(subnet.SystemInterfaces) }
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Locator{cfg: cfg, logger: logger}
}

// Run performs one locate cycle. The returned error is ctx's on cancellation,
// or a registration, persistence or push failure. A push failure is returned
// together with the Report, since the record has already been written.
func (l *Locator) Run(ctx context.Context) (*Report, error) {
	d, err := l.cfg.Identity.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	switch d.Action {
	case identity.ActionRegister:
		return l.register(ctx, d)
	case identity.ActionConfirmed:
		return l.persist(ctx, &Report{Kind: KindConfirmed, Decision: d}, d.Device(), d.NeedsPush())
	case identity.ActionAdopted:
		return l.persist(ctx, &Report{Kind: KindAdopted, Decision: d}, d.Device(), d.NeedsPush())
	default:
		return l.sweep(ctx, d)
	}
}

func (l *Locator) register(ctx context.Context, d *identity.Decision) (*Report, error) {
	address, serial := d.Address, d.Serial

	if len(d.Missing) > 0 {
		if l.cfg.Prompter == nil {
			return nil, ErrRegistrationRequired
		}

		l.cfg.Prompter.Instruct("An address must be registered to continue", l.cfg.Steps)

		var err error
		if d.Needs(identity.FieldAddress) {
			address, err = l.cfg.Prompter.Prompt(ctx, "Enter the displayed address (XXX.XXX.XXX.XXX)", identity.ValidateAddress)
			if err != nil {
				return nil, err
			}
		}
		if d.Needs(identity.FieldSerial) {
			serial, err = l.cfg.Prompter.Prompt(ctx, fmt.Sprintf("Enter the displayed serial (%d characters)", identity.SerialLength), identity.ValidateSerial)
			if err != nil {
				return nil, err
			}
		}
	}

	dev := &record.Device{IP: address, Serial: serial}
	report := &Report{Kind: KindRegistered, Decision: d}

	if mac, ok := l.cfg.Identity.HardwareAddrAt(ctx, address); ok {
		dev.MAC = mac.String()
	} else {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Note = "hardware address not resolved; run again while the robot is on its charger"
		l.logger.Warn("Registered without hardware address", zap.String("address", address))
	}

	return l.persist(ctx, report, dev, false)
}

func (l *Locator) sweep(ctx context.Context, d *identity.Decision) (*Report, error) {
	report := &Report{Kind: KindNotFound, Decision: d}

	prefixes, err := l.cfg.Enumerate()
	if err != nil {
		l.logger.Error("Failed to enumerate subnets", zap.Error(err))
		report.Summary = &Summary{}
		report.Incomplete = true
		report.Note = fmt.Sprintf("scan incomplete: %v", err)
		return report, nil
	}
	if len(prefixes) == 0 {
		report.Summary = &Summary{}
		report.Note = "no usable IPv4 interface"
		return report, nil
	}

	outcome, err := l.cfg.Sweeper.Run(ctx, d.MAC, prefixes)
	if err != nil {
		return nil, err
	}

	summary := Summarize(outcome, d.Record)
	report.Summary = &summary

	switch {
	case !summary.Found:
		return report, nil
	case !summary.NeedsUpdate:
		report.Kind = KindUnchanged
		return report, nil
	}

	report.Kind = KindFound
	dev := &record.Device{IP: summary.Address, Serial: d.Serial, MAC: d.MAC.String()}
	return l.persist(ctx, report, dev, true)
}

// persist writes dev and, if push is set, pushes its address.
func (l *Locator) persist(ctx context.Context, report *Report, dev *record.Device, doPush bool) (*Report, error) {
	if err := l.cfg.Records.Save(dev); err != nil {
		return nil, fmt.Errorf("failed to save device record: %w", err)
	}
	report.Device = dev
	l.logger.Info("Device record saved",
		zap.String("address", dev.IP),
		zap.String("serial", dev.Serial),
		zap.String("mac", dev.MAC),
	)

	if !doPush {
		return report, nil
	}

	if err := l.cfg.Pusher.Push(ctx, dev.Serial, dev.IP); err != nil {
		return report, err
	}
	_, disabled := l.cfg.Pusher.(push.Disabled)
	report.Pushed = !disabled
	return report, nil
}

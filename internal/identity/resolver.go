package identity

import (
	"bytes"
	"context"
	"errors"
	"net"

	"go.uber.org/zap"

	"github.com/muurk/vectorscan/internal/logging"
	"github.com/muurk/vectorscan/internal/netprobe"
	"github.com/muurk/vectorscan/internal/record"
	"github.com/muurk/vectorscan/internal/sdkconfig"
)

// RecordLoader loads the persisted device record. *record.Store implements
// it.
type RecordLoader interface {
	Load() (*record.Device, error)
}

// SDKLoader loads the SDK config.
type SDKLoader func() (*sdkconfig.Config, error)

// HintSource yields candidate addresses advertised by the robot.
type HintSource interface {
	Hints(ctx context.Context) ([]string, error)
}

// Resolver decides whether a scan is needed.
type Resolver struct {
	records RecordLoader
	sdk     SDKLoader
	macs    netprobe.HardwareResolver
	hints   HintSource
	logger  *zap.Logger
}

// NewResolver creates a Resolver. macs resolves addresses directly, without a
// liveness check first. hints may be nil to skip mDNS.
func NewResolver(records RecordLoader, sdk SDKLoader, macs netprobe.HardwareResolver, hints HintSource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Resolver{
		records: records,
		sdk:     sdk,
		macs:    macs,
		hints:   hints,
		logger:  logger,
	}
}

// known is what the stored sources say about the robot.
type known struct {
	rec        *record.Device
	serial     string
	configured string
	sdkAddr    string
	mac        net.HardwareAddr
}

func (r *Resolver) load() known {
	var k known

	rec, err := r.records.Load()
	switch {
	case err == nil:
		k.rec = rec
	case errors.Is(err, record.ErrNotFound):
		r.logger.Info("No device record, trying SDK config")
	default:
		r.logger.Warn("Ignoring unreadable device record", zap.Error(err))
	}

	var sdk *sdkconfig.Config
	if r.sdk != nil {
		sdk, err = r.sdk()
		switch {
		case err == nil:
		case errors.Is(err, sdkconfig.ErrNotFound):
			r.logger.Info("No SDK config found")
		default:
			r.logger.Warn("Ignoring unreadable SDK config", zap.Error(err))
		}
	}

	if k.rec != nil {
		k.serial = k.rec.Serial
		k.configured = k.rec.IP
		k.mac = k.rec.HardwareAddr()
	}

	if robot := sdk.Robot(k.serial); robot != nil {
		if k.serial == "" {
			k.serial = robot.Serial
		}
		k.sdkAddr = robot.IP
	}

	switch {
	case k.sdkAddr == "":
	case k.configured == "":
		k.configured = k.sdkAddr
	case k.configured != k.sdkAddr:
		r.logger.Info("Recorded address differs from SDK config",
			zap.String("recorded", k.configured),
			zap.String("sdk", k.sdkAddr),
		)
	}

	return k
}

// Resolve returns the decision for the current state of the record, the SDK
// config and the network. The only error it returns is ctx's.
func (r *Resolver) Resolve(ctx context.Context) (*Decision, error) {
	k := r.load()

	d := &Decision{
		Address: k.configured,
		Serial:  k.serial,
		MAC:     k.mac,
		Record:  k.rec,
	}

	if k.configured == "" {
		d.Missing = append(d.Missing, FieldAddress)
	}
	if k.serial == "" {
		d.Missing = append(d.Missing, FieldSerial)
	}
	if len(d.Missing) > 0 || k.mac == nil {
		d.Action = ActionRegister
		return r.decided(d), nil
	}

	checked := map[string]bool{}
	check := func(address string) (bool, error) {
		checked[address] = true
		live, _ := r.HardwareAddrAt(ctx, address)
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if live == nil {
			r.logger.Info("No hardware address at address", zap.String("address", address))
			return false, nil
		}
		if !bytes.Equal(live, k.mac) {
			r.logger.Warn("Hardware address mismatch",
				zap.String("address", address),
				zap.String("expected", k.mac.String()),
				zap.String("found", live.String()),
			)
			return false, nil
		}
		return true, nil
	}

	ok, err := check(k.configured)
	if err != nil {
		return nil, err
	}
	if ok {
		d.Action = ActionConfirmed
		d.Source = SourceRecord
		if k.rec == nil || k.rec.IP == "" {
			d.Source = SourceSDK
		}
		return r.decided(d), nil
	}

	if k.sdkAddr != "" && !checked[k.sdkAddr] {
		ok, err := check(k.sdkAddr)
		if err != nil {
			return nil, err
		}
		if ok {
			d.Action = ActionAdopted
			d.Source = SourceSDK
			d.Address = k.sdkAddr
			return r.decided(d), nil
		}
	}

	if r.hints != nil {
		hints, err := r.hints.Hints(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Warn("mDNS discovery failed", zap.Error(err))
		}
		for _, addr := range hints {
			if checked[addr] || ValidateAddress(addr) != nil {
				continue
			}
			ok, err := check(addr)
			if err != nil {
				return nil, err
			}
			if ok {
				d.Action = ActionAdopted
				d.Source = SourceMDNS
				d.Address = addr
				return r.decided(d), nil
			}
		}
	}

	d.Action = ActionScan
	return r.decided(d), nil
}

// HardwareAddrAt resolves the live hardware address of address on any
// interface. A host that drops pings is still resolved.
func (r *Resolver) HardwareAddrAt(ctx context.Context, address string) (net.HardwareAddr, bool) {
	mac, ok := r.macs.Resolve(ctx, address, "")
	if !ok || mac == nil {
		return nil, false
	}
	return mac, true
}

func (r *Resolver) decided(d *Decision) *Decision {
	logging.LogDecision(r.logger, d.Action.String(), d.Address, d.Serial)
	return d
}

package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/vectorscan/internal/logging"
	"github.com/muurk/vectorscan/internal/netprobe"
	"github.com/muurk/vectorscan/internal/subnet"
)

const (
	// DefaultWorkers is the pool size per prefix
	DefaultWorkers = 30

	// DefaultMaxHost is the highest host number swept on each prefix
	DefaultMaxHost = 254
)

// ErrNoTarget is returned by Run when the target hardware address is empty.
var ErrNoTarget = errors.New("target hardware address is empty")

// Prober probes a single candidate. *netprobe.Prober implements it.
type Prober interface {
	Probe(ctx context.Context, target netprobe.Target) netprobe.Result
}

// Options tunes a Coordinator. Zero values fall back to the defaults.
type Options struct {
	Workers  int
	MaxHost  int
	Observer Observer
}

// Outcome summarises a run.
type Outcome struct {
	Found     bool
	Address   string
	Interface string
	Elapsed   time.Duration
	Probed    int // candidates dispatched to the prober
	Prefixes  int // prefixes swept, including a partially swept one
}

// Coordinator sweeps prefixes with a bounded worker pool.
type Coordinator struct {
	prober   Prober
	workers  int
	maxHost  int
	observer Observer
	logger   *zap.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(prober Prober, opts Options, logger *zap.Logger) *Coordinator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.MaxHost <= 0 || opts.MaxHost > DefaultMaxHost {
		opts.MaxHost = DefaultMaxHost
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Coordinator{
		prober:   prober,
		workers:  opts.Workers,
		maxHost:  opts.MaxHost,
		observer: opts.Observer,
		logger:   logger,
	}
}

// Run sweeps prefixes in order until target is found, every prefix has been
// swept, or ctx is done. A nil error with Found false means the device is not
// on any of the prefixes. If ctx is cancelled before a match, the partial
// Outcome is returned together with ctx.Err().
func (c *Coordinator) Run(ctx context.Context, target net.HardwareAddr, prefixes []subnet.Prefix) (*Outcome, error) {
	if len(target) == 0 {
		return nil, ErrNoTarget
	}

	start := time.Now()
	stop := NewStopSignal()
	outcome := &Outcome{}

	var runErr error
	for _, prefix := range prefixes {
		if stop.Fired() {
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		sweepStart := time.Now()
		probed, err := c.Sweep(ctx, prefix, target, stop)
		outcome.Probed += probed
		outcome.Prefixes++
		logging.LogSweep(c.logger, prefix.Network, prefix.Interface, probed, stop.Fired(), time.Since(sweepStart))

		if err != nil {
			runErr = err
			break
		}
	}

	outcome.Elapsed = time.Since(start)
	if t, ok := stop.Target(); ok {
		outcome.Found = true
		outcome.Address = t.Address
		outcome.Interface = t.Interface
		return outcome, nil
	}

	return outcome, runErr
}

// sweep is the shared state of one prefix sweep. All fields after cond are
// guarded by mu; cond is signalled whenever the coordinator's wait condition
// may have changed.
type sweep struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []int
	inFlight int
	probed   int
	matched  bool
}

func newSweep(maxHost int) *sweep {
	s := &sweep{queue: make([]int, 0, maxHost)}
	s.cond = sync.NewCond(&s.mu)
	for n := 1; n <= maxHost; n++ {
		s.queue = append(s.queue, n)
	}
	return s
}

func (s *sweep) broadcast() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// next pops a host number, or returns false if the worker should exit.
func (s *sweep) next(ctx context.Context, stop *StopSignal) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 || stop.Fired() || ctx.Err() != nil {
		return 0, false
	}
	n := s.queue[0]
	s.queue = s.queue[1:]
	s.inFlight++
	s.probed++
	return n, true
}

func (s *sweep) done() {
	s.mu.Lock()
	s.inFlight--
	if s.inFlight == 0 && len(s.queue) == 0 {
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// report runs fn under the sweep lock unless the sweep has been decided.
// Nothing is reported once Sweep has returned.
func (s *sweep) report(ctx context.Context, stop *StopSignal, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matched || stop.Fired() || ctx.Err() != nil {
		return
	}
	fn()
}

// finish runs matched, marks the sweep as matched, discards every queued
// host and wakes the coordinator.
func (s *sweep) finish(matched func()) {
	s.mu.Lock()
	matched()
	s.matched = true
	s.queue = nil
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Sweep probes hosts 1..MaxHost of prefix, stopping early once stop fires or
// ctx is done. It returns the number of hosts dispatched. After a match it
// returns without waiting for probes still in flight; those are cancelled.
func (c *Coordinator) Sweep(ctx context.Context, prefix subnet.Prefix, target net.HardwareAddr, stop *StopSignal) (int, error) {
	if stop.Fired() {
		return 0, nil
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := newSweep(c.maxHost)
	unregister := context.AfterFunc(sweepCtx, s.broadcast)
	defer unregister()

	c.observer.PrefixStarted(prefix)
	c.logger.Debug("Sweeping prefix",
		zap.String("network", prefix.Network),
		zap.String("interface", prefix.Interface),
		zap.Int("workers", c.workers),
	)

	for i := 0; i < c.workers; i++ {
		go c.worker(sweepCtx, s, prefix, target, stop)
	}

	s.mu.Lock()
	for !s.matched && ctx.Err() == nil && (len(s.queue) > 0 || s.inFlight > 0) {
		s.cond.Wait()
	}
	probed := s.probed
	s.mu.Unlock()

	if stop.Fired() {
		return probed, nil
	}
	return probed, ctx.Err()
}

func (c *Coordinator) worker(ctx context.Context, s *sweep, prefix subnet.Prefix, target net.HardwareAddr, stop *StopSignal) {
	for {
		n, ok := s.next(ctx, stop)
		if !ok {
			return
		}
		c.runTask(ctx, s, netprobe.Target{Address: prefix.Host(n), Interface: prefix.Interface}, target, stop)
	}
}

func (c *Coordinator) runTask(ctx context.Context, s *sweep, t netprobe.Target, target net.HardwareAddr, stop *StopSignal) {
	defer s.done()

	if stop.Fired() {
		return
	}

	res := c.probe(ctx, t)

	// The run may have been decided while this probe was running.
	if stop.Fired() || ctx.Err() != nil {
		return
	}

	logging.LogProbe(c.logger, t.Address, t.Interface, res.State.String(), res.HardwareAddr, res.Err)

	switch res.State {
	case netprobe.StateError:
		s.report(ctx, stop, func() { c.observer.ProbeFailed(res) })
	case netprobe.StateAlive:
		if res.HardwareAddr != nil && bytes.Equal(res.HardwareAddr, target) {
			if stop.Fire(t) {
				s.finish(func() { c.observer.Matched(res) })
			}
			return
		}
		s.report(ctx, stop, func() { c.observer.HostAlive(res) })
	}
}

// probe calls the prober, converting a panic into StateError.
func (c *Coordinator) probe(ctx context.Context, t netprobe.Target) (res netprobe.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = netprobe.Result{
				Target: t,
				State:  netprobe.StateError,
				Err:    netprobe.NewProbeError(netprobe.ErrTypePanic, t.Address, "probe panicked for", fmt.Errorf("%v", r)),
			}
		}
	}()
	return c.prober.Probe(ctx, t)
}

package turn

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DriverOptions configures a Driver.
type DriverOptions struct {
	// TickInterval is the wall-clock period between machine ticks.
	TickInterval time.Duration
	// OnFrame, if set, runs on the driver goroutine after every tick.
	OnFrame func(*Machine)
	// BeforeTick, if set, runs before each tick while players are choosing.
	// Autopilot hooks in here.
	BeforeTick func(*Machine)
}

// Driver owns a Machine and runs it on a single goroutine, feeding it ticks
// and serialising external commands. It satisfies server.Service.
type Driver struct {
	logger  *zap.Logger
	machine *Machine
	opts    DriverOptions

	cmds     chan func(*Machine)
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once
}

// NewDriver returns a Driver for m.
//
// Precondition: logger and m must not be nil; opts.TickInterval > 0.
func NewDriver(logger *zap.Logger, m *Machine, opts DriverOptions) *Driver {
	return &Driver{
		logger:  logger,
		machine: m,
		opts:    opts,
		cmds:    make(chan func(*Machine), 16),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start runs the tick loop until Stop is called. It returns nil.
func (d *Driver) Start() error {
	ticker := time.NewTicker(d.opts.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	d.logger.Info("turn driver running", zap.Duration("tick", d.opts.TickInterval))
	for {
		select {
		case <-d.stop:
			d.logger.Info("turn driver stopped")
			return nil
		case fn := <-d.cmds:
			fn(d.machine)
			d.machine.Process()
			d.afterStep()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if d.opts.BeforeTick != nil && d.machine.Summary() == nil && d.machine.Phase() == PlayerChoosing {
				d.opts.BeforeTick(d.machine)
			}
			d.machine.Tick(dt)
			d.afterStep()
		}
	}
}

func (d *Driver) afterStep() {
	if d.opts.OnFrame != nil {
		d.opts.OnFrame(d.machine)
	}
	if d.machine.Summary() != nil {
		d.doneOnce.Do(func() { close(d.done) })
	}
}

// Stop ends the tick loop. Safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// Do queues fn to run against the machine on the driver goroutine. It returns
// false if the driver has been stopped.
func (d *Driver) Do(fn func(*Machine)) bool {
	select {
	case <-d.stop:
		return false
	default:
	}
	select {
	case <-d.stop:
		return false
	case d.cmds <- fn:
		return true
	}
}

// Done is closed once the round has a summary.
func (d *Driver) Done() <-chan struct{} { return d.done }

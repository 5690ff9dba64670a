// Package coordinator owns one poller per hardware area and the process
// table state, and advances them from the UI's frame tick.
package coordinator

import (
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/lcarsmon/internal/config"
	"github.com/Dicklesworthstone/lcarsmon/internal/logging"
	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
)

// Refreshed reports which pollers resampled during a Tick.
type Refreshed struct {
	Host    bool
	Battery bool
	GPU     bool
}

// Any reports whether at least one poller resampled.
func (r Refreshed) Any() bool { return r.Host || r.Battery || r.GPU }

type options struct {
	now   func() time.Time
	namer sampler.PCINamer
}

// Option tunes a Coordinator.
type Option func(*options)

// WithClock replaces time.Now in every poller.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPCINamer resolves GPU product names.
func WithPCINamer(n sampler.PCINamer) Option {
	return func(o *options) { o.namer = n }
}

// Coordinator is not safe for concurrent use; the UI drives it from its
// update loop.
type Coordinator struct {
	log     *slog.Logger
	host    *sampler.HostPoller
	battery *sampler.BatteryPoller // nil when disabled
	gpu     *sampler.GPUPoller     // nil when disabled
	catalog *sampler.Catalog
	view    sampler.ProcessView
}

// New builds the pollers, each taking its first sample immediately.
// cfg is expected to be valid; an unknown sort column falls back to the
// default view.
func New(cfg config.Config, src sampler.Source, fs *sysfs.Reader, log *slog.Logger, opts ...Option) *Coordinator {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logging.Discard()
	}
	common := []sampler.Option{sampler.WithLogger(log), sampler.WithClock(o.now)}
	with := func(d time.Duration) []sampler.Option {
		return append([]sampler.Option{sampler.WithInterval(d)}, common...)
	}

	c := &Coordinator{
		log:     log,
		host:    sampler.NewHostPoller(src, fs, with(cfg.HostInterval)...),
		catalog: sampler.NewCatalog(src, common...),
		view:    sampler.DefaultProcessView(),
	}
	if cfg.EnableBattery {
		c.battery = sampler.NewBatteryPoller(fs, with(cfg.BatteryInterval)...)
	}
	if cfg.EnableGPU {
		c.gpu = sampler.NewGPUPoller(fs, append(with(cfg.GPUInterval), sampler.WithPCINamer(o.namer))...)
	}

	if col, err := cfg.SortColumn(); err == nil {
		c.view.Column = col
	}
	if cfg.ProcessLimit > 0 {
		c.view.Limit = cfg.ProcessLimit
	}
	return c
}

// Tick gives every poller a chance to resample.
func (c *Coordinator) Tick() Refreshed {
	var r Refreshed
	r.Host = c.host.RefreshIfNeeded()
	if c.battery != nil {
		r.Battery = c.battery.RefreshIfNeeded()
	}
	if c.gpu != nil {
		r.GPU = c.gpu.RefreshIfNeeded()
	}
	return r
}

func (c *Coordinator) Host() model.Host       { return c.host.Snapshot() }
func (c *Coordinator) CPUInfo() model.CPUInfo { return c.host.CPUInfo() }

// Battery returns the latest battery state, unavailable when disabled.
func (c *Coordinator) Battery() model.Battery {
	if c.battery == nil {
		return model.NoBattery()
	}
	return c.battery.Snapshot()
}

// GPU returns the latest GPU state, unavailable when disabled.
func (c *Coordinator) GPU() model.GPU {
	if c.gpu == nil {
		return model.NoGPU()
	}
	return c.gpu.Snapshot()
}

// Processes lists the process table in the current view order.
func (c *Coordinator) Processes() []model.Process { return c.catalog.List(c.view) }

// Children lists the direct children of pid.
func (c *Coordinator) Children(pid int32) []model.Process { return c.catalog.ChildrenOf(pid) }

func (c *Coordinator) ToggleSort(col sampler.SortColumn) {
	c.view.ToggleSort(col)
	c.log.Debug("process sort changed", "column", c.view.Column, "order", c.view.Order)
}

func (c *Coordinator) ToggleExpanded(pid int32) { c.view.ToggleExpanded(pid) }

// View returns a copy of the process table state.
func (c *Coordinator) View() sampler.ProcessView { return c.view.Clone() }

// Report collects every snapshot and the current process list.
func (c *Coordinator) Report() model.Report {
	return model.Report{
		Host:      c.Host(),
		CPUInfo:   c.CPUInfo(),
		Battery:   c.Battery(),
		GPU:       c.GPU(),
		Processes: c.Processes(),
	}
}

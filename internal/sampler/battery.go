package sampler

import (
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
)

// DefaultBatteryInterval is slower than the other pollers; battery state
// changes slowly.
const DefaultBatteryInterval = 5 * time.Second

const powerSupplyRoot = "/sys/class/power_supply"

// micro-unit products (µAh × µV, µA × µV) down to Wh / W.
const microSquared = 1_000_000_000_000.0

// BatteryPoller reads the first power_supply device of type Battery.
type BatteryPoller struct {
	fs   *sysfs.Reader
	log  *slog.Logger
	now  func() time.Time
	gate gate
	snap model.Battery
}

// NewBatteryPoller takes the first sample immediately.
func NewBatteryPoller(fs *sysfs.Reader, opts ...Option) *BatteryPoller {
	st := newSettings(DefaultBatteryInterval, opts)
	p := &BatteryPoller{
		fs:   fs,
		log:  st.log,
		now:  st.now,
		gate: gate{interval: st.interval},
		snap: model.NoBattery(),
	}
	now := p.now()
	p.refresh()
	p.gate.mark(now)
	return p
}

// RefreshIfNeeded resamples when the interval has elapsed.
func (p *BatteryPoller) RefreshIfNeeded() bool {
	now := p.now()
	if !p.gate.due(now) {
		return false
	}
	p.refresh()
	p.gate.mark(now)
	return true
}

// Snapshot returns the latest battery state.
func (p *BatteryPoller) Snapshot() model.Battery { return p.snap }

// findBattery rescans on every call so a docked or swapped battery is seen.
func (p *BatteryPoller) findBattery() (string, string, bool) {
	for _, e := range p.fs.ReadDir(powerSupplyRoot) {
		dir := powerSupplyRoot + "/" + e.Name()
		if kind, ok := p.fs.String(dir + "/type"); ok && kind == "Battery" {
			return dir, e.Name(), true
		}
	}
	return "", "", false
}

func (p *BatteryPoller) refresh() {
	dir, name, ok := p.findBattery()
	if !ok {
		if p.snap.Available {
			p.log.Info("battery no longer detected", "device", p.snap.Device)
		}
		// keep the last known values; only the flag changes
		p.snap.Available = false
		return
	}

	s := p.snap
	s.Available = true
	s.Device = name
	s.Capacity = uint32(p.uintOr(dir+"/capacity", 0))
	s.Status = model.BatteryStatus(p.stringOr(dir+"/status", string(model.StatusUnknown)))
	s.Technology = p.stringOr(dir+"/technology", model.Unknown)
	s.Manufacturer = p.stringOr(dir+"/manufacturer", model.Unknown)
	s.Model = p.stringOr(dir+"/model_name", model.Unknown)
	s.CycleCount = uint32(p.uintOr(dir+"/cycle_count", 0))

	voltage := float64(p.uintOr(dir+"/voltage_now", 0))
	s.EnergyFullWh = p.microOrProduct(dir, "energy_full", "charge_full", voltage)
	s.EnergyFullDesignWh = p.microOrProduct(dir, "energy_full_design", "charge_full_design", voltage)
	if h, ok := batteryHealth(s.EnergyFullWh, s.EnergyFullDesignWh); ok {
		s.Health = h
	}
	s.PowerW = p.microOrProduct(dir, "power_now", "current_now", voltage)

	p.snap = s
}

// microOrProduct reads a µWh/µW attribute, falling back to a charge or
// current attribute multiplied by voltage for drivers that only expose
// charge-based telemetry. Missing both yields 0.
func (p *BatteryPoller) microOrProduct(dir, direct, fallback string, voltage float64) float64 {
	if v, ok := p.fs.Uint(dir + "/" + direct); ok {
		return float64(v) / 1_000_000
	}
	if v, ok := p.fs.Uint(dir + "/" + fallback); ok {
		return float64(v) * voltage / microSquared
	}
	return 0
}

// batteryHealth is full/design as a percentage, defined only for a known
// positive design capacity.
func batteryHealth(fullWh, designWh float64) (float64, bool) {
	if designWh <= 0 {
		return 0, false
	}
	return fullWh / designWh * 100, true
}

func (p *BatteryPoller) uintOr(path string, def uint64) uint64 {
	if v, ok := p.fs.Uint(path); ok {
		return v
	}
	return def
}

func (p *BatteryPoller) stringOr(path, def string) string {
	if v, ok := p.fs.String(path); ok && v != "" {
		return v
	}
	return def
}

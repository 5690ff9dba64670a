// Package sampler turns raw OS counters and sysfs attributes into UI-ready
// snapshots. Each poller owns its refresh interval and its latest snapshot;
// RefreshIfNeeded is cheap to call on every frame.
package sampler

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
	"github.com/Dicklesworthstone/lcarsmon/internal/units"
)

// DefaultHostInterval is the CPU/memory/disk/network refresh interval.
const DefaultHostInterval = 1500 * time.Millisecond

// HostPoller samples CPU, memory, swap, disks, networks, uptime and CPU
// temperature as one unit.
type HostPoller struct {
	src  Source
	log  *slog.Logger
	now  func() time.Time
	gate gate

	info model.CPUInfo
	snap model.Host

	prevNet map[string]net.IOCountersStat
	tempMax float64
}

// NewHostPoller reads static CPU properties once and takes the first sample.
func NewHostPoller(src Source, fs *sysfs.Reader, opts ...Option) *HostPoller {
	st := newSettings(DefaultHostInterval, opts)
	p := &HostPoller{
		src:     src,
		log:     st.log,
		now:     st.now,
		gate:    gate{interval: st.interval},
		prevNet: make(map[string]net.IOCountersStat),
	}
	p.info = readCPUInfo(src, fs, p.log)
	now := p.now()
	p.refresh(now)
	p.gate.mark(now)
	return p
}

// RefreshIfNeeded resamples when the interval has elapsed and reports
// whether it did.
func (p *HostPoller) RefreshIfNeeded() bool {
	now := p.now()
	if !p.gate.due(now) {
		return false
	}
	p.refresh(now)
	p.gate.mark(now)
	return true
}

// Snapshot returns a copy of the latest sample.
func (p *HostPoller) Snapshot() model.Host { return p.snap.Clone() }

// CPUInfo returns the properties read at construction.
func (p *HostPoller) CPUInfo() model.CPUInfo { return p.info }

// Interval is the configured refresh interval.
func (p *HostPoller) Interval() time.Duration { return p.gate.interval }

func (p *HostPoller) refresh(now time.Time) {
	snap := model.Host{SampledAt: now}

	if vm, err := p.src.VirtualMemory(); err == nil && vm != nil {
		snap.Memory.Used, snap.Memory.Total = vm.Used, vm.Total
	} else {
		p.log.Debug("virtual memory unavailable", "error", err)
	}
	if sm, err := p.src.SwapMemory(); err == nil && sm != nil {
		snap.Memory.SwapUsed, snap.Memory.SwapTotal = sm.Used, sm.Total
	} else {
		p.log.Debug("swap unavailable", "error", err)
	}

	snap.CPU = p.cpuPercents()
	snap.Disks = p.disks()
	snap.Networks = p.networks()

	if up, err := p.src.Uptime(); err == nil {
		snap.UptimeSeconds = up
	}

	temp := p.cpuTemp()
	if temp > p.tempMax {
		p.tempMax = temp
	}
	snap.CPUTempC = temp
	snap.CPUTempMaxC = p.tempMax

	p.snap = snap
}

func (p *HostPoller) cpuPercents() model.CPU {
	var out model.CPU
	if total, err := p.src.CPUPercent(false); err == nil && len(total) > 0 {
		out.Total = clampPercent(total[0])
	} else {
		p.log.Debug("cpu percent unavailable", "error", err)
	}
	if cores, err := p.src.CPUPercent(true); err == nil {
		out.PerCore = make([]float64, len(cores))
		for i, c := range cores {
			out.PerCore[i] = clampPercent(c)
		}
	}
	return out
}

func (p *HostPoller) disks() []model.Disk {
	parts, err := p.src.Partitions()
	if err != nil {
		p.log.Debug("partitions unavailable", "error", err)
		return nil
	}
	seen := make(map[string]struct{}, len(parts))
	var out []model.Disk
	for _, part := range parts {
		if part.Mountpoint == "" {
			continue
		}
		if _, dup := seen[part.Mountpoint]; dup {
			continue
		}
		seen[part.Mountpoint] = struct{}{}

		usage, err := p.src.DiskUsage(part.Mountpoint)
		if err != nil || usage == nil || usage.Total == 0 {
			continue
		}
		var used uint64
		if usage.Free < usage.Total {
			used = usage.Total - usage.Free
		}
		out = append(out, model.Disk{
			Mount:    part.Mountpoint,
			Used:     used,
			Total:    usage.Total,
			Fraction: units.Fraction(used, usage.Total),
		})
	}
	return out
}

// networks computes rates as bytes since the previous sample divided by the
// configured interval: a fixed-window estimate, not a moving average.
func (p *HostPoller) networks() []model.Network {
	counters, err := p.src.NetIOCounters()
	if err != nil {
		p.log.Debug("network counters unavailable", "error", err)
		return nil
	}
	window := p.gate.interval.Seconds()
	next := make(map[string]net.IOCountersStat, len(counters))
	out := make([]model.Network, 0, len(counters))
	for _, c := range counters {
		n := model.Network{Name: c.Name, RxBytes: c.BytesRecv, TxBytes: c.BytesSent}
		if prev, ok := p.prevNet[c.Name]; ok && window > 0 {
			if c.BytesRecv >= prev.BytesRecv {
				n.RxRate = float64(c.BytesRecv-prev.BytesRecv) / window
			}
			if c.BytesSent >= prev.BytesSent {
				n.TxRate = float64(c.BytesSent-prev.BytesSent) / window
			}
		}
		next[c.Name] = c
		out = append(out, n)
	}
	p.prevNet = next
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *HostPoller) cpuTemp() float64 {
	temps, err := p.src.Temperatures()
	if err != nil {
		p.log.Debug("temperature sensors unavailable", "error", err)
		return 0
	}
	return pickCPUTemp(temps)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

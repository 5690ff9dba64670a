package sampler

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
)

// Source is the OS statistics facility the pollers read from. Every call
// returns freshly sampled point values.
type Source interface {
	VirtualMemory() (*mem.VirtualMemoryStat, error)
	SwapMemory() (*mem.SwapMemoryStat, error)
	CPUPercent(perCPU bool) ([]float64, error)
	CPUCounts(logical bool) (int, error)
	Partitions() ([]disk.PartitionStat, error)
	DiskUsage(path string) (*disk.UsageStat, error)
	NetIOCounters() ([]net.IOCountersStat, error)
	Temperatures() ([]host.TemperatureStat, error)
	Uptime() (uint64, error)
	KernelArch() (string, error)
	Processes() ([]model.Process, error)
}

// NewSource returns the gopsutil-backed Source. WithInterval sets the
// shortest window per-process CPU percent is measured over, DefaultHostInterval
// unless given; WithClock replaces time.Now.
func NewSource(opts ...Option) Source {
	st := newSettings(DefaultHostInterval, opts)
	return &gopsutilSource{cpu: newCPUWindow(st.interval, st.now)}
}

type gopsutilSource struct {
	cpu *cpuWindow
}

func (s *gopsutilSource) VirtualMemory() (*mem.VirtualMemoryStat, error) { return mem.VirtualMemory() }
func (s *gopsutilSource) SwapMemory() (*mem.SwapMemoryStat, error)       { return mem.SwapMemory() }

// CPUPercent compares against the previous call, so it never sleeps.
func (s *gopsutilSource) CPUPercent(perCPU bool) ([]float64, error) {
	return cpu.Percent(0, perCPU)
}

func (s *gopsutilSource) CPUCounts(logical bool) (int, error) { return cpu.Counts(logical) }

func (s *gopsutilSource) Partitions() ([]disk.PartitionStat, error) { return disk.Partitions(false) }

func (s *gopsutilSource) DiskUsage(path string) (*disk.UsageStat, error) { return disk.Usage(path) }

func (s *gopsutilSource) NetIOCounters() ([]net.IOCountersStat, error) { return net.IOCounters(true) }

// Temperatures keeps whatever sensors were readable even when some failed.
func (s *gopsutilSource) Temperatures() ([]host.TemperatureStat, error) {
	temps, err := host.SensorsTemperatures()
	if len(temps) > 0 {
		return temps, nil
	}
	return nil, err
}

func (s *gopsutilSource) Uptime() (uint64, error) { return host.Uptime() }

func (s *gopsutilSource) KernelArch() (string, error) { return host.KernelArch() }

// Processes lists every process. CPU percent comes from s.cpu, so calls
// closer together than its window repeat the previous percentages.
func (s *gopsutilSource) Processes() ([]model.Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	busy := make(map[int32]float64, len(procs))
	out := make([]model.Process, 0, len(procs))
	for _, p := range procs {
		if p == nil {
			continue
		}
		name, err := p.Name()
		if err != nil {
			// exited between listing and inspection
			continue
		}
		rec := model.Process{PID: p.Pid, Name: name, User: "?"}
		if u, err := p.Username(); err == nil && u != "" {
			rec.User = u
		}
		if ppid, err := p.Ppid(); err == nil {
			rec.PPID = ppid
		}
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			rec.Memory = mi.RSS
		}
		if t, err := p.Times(); err == nil && t != nil {
			busy[p.Pid] = t.User + t.System
		}
		out = append(out, rec)
	}

	pct := s.cpu.observe(busy)
	for i := range out {
		out[i].CPU = pct[out[i].PID]
	}
	return out, nil
}

// cpuWindow turns cumulative busy seconds per pid into CPU percent. The
// baseline only advances once span has elapsed; earlier observations get the
// percentages of the last completed window. A pid's first window reads 0.
type cpuWindow struct {
	span  time.Duration
	now   func() time.Time
	start time.Time
	base  map[int32]float64
	pct   map[int32]float64
}

func newCPUWindow(span time.Duration, now func() time.Time) *cpuWindow {
	return &cpuWindow{span: span, now: now, pct: map[int32]float64{}}
}

func (w *cpuWindow) observe(busy map[int32]float64) map[int32]float64 {
	now := w.now()
	if w.base == nil {
		w.start, w.base = now, busy
		return w.pct
	}
	elapsed := now.Sub(w.start)
	if elapsed < w.span || elapsed <= 0 {
		return w.pct
	}

	pct := make(map[int32]float64, len(busy))
	for pid, b := range busy {
		// pid reuse shows up as busy time going backwards
		if prev, ok := w.base[pid]; ok && b >= prev {
			pct[pid] = (b - prev) / elapsed.Seconds() * 100
		}
	}
	w.start, w.base, w.pct = now, busy, pct
	return pct
}

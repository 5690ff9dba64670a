package sampler

import (
	"errors"
	"testing/fstest"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
)

var errUnavailable = errors.New("unavailable")

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeSource serves canned values; tests mutate its fields between refreshes.
type fakeSource struct {
	vm       *mem.VirtualMemoryStat
	swap     *mem.SwapMemoryStat
	total    []float64
	perCore  []float64
	physical int
	logical  int
	parts    []disk.PartitionStat
	usage    map[string]*disk.UsageStat
	nets     []net.IOCountersStat
	temps    []host.TemperatureStat
	uptime   uint64
	arch     string
	procs    []model.Process
	fail     bool

	calls     int
	procCalls int
}

func (f *fakeSource) VirtualMemory() (*mem.VirtualMemoryStat, error) {
	f.calls++
	if f.fail {
		return nil, errUnavailable
	}
	return f.vm, nil
}

func (f *fakeSource) SwapMemory() (*mem.SwapMemoryStat, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.swap, nil
}

func (f *fakeSource) CPUPercent(perCPU bool) ([]float64, error) {
	if f.fail {
		return nil, errUnavailable
	}
	if perCPU {
		return append([]float64(nil), f.perCore...), nil
	}
	return append([]float64(nil), f.total...), nil
}

func (f *fakeSource) CPUCounts(logical bool) (int, error) {
	if f.fail {
		return 0, errUnavailable
	}
	if logical {
		return f.logical, nil
	}
	return f.physical, nil
}

func (f *fakeSource) Partitions() ([]disk.PartitionStat, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.parts, nil
}

func (f *fakeSource) DiskUsage(path string) (*disk.UsageStat, error) {
	u, ok := f.usage[path]
	if !ok {
		return nil, errUnavailable
	}
	return u, nil
}

func (f *fakeSource) NetIOCounters() ([]net.IOCountersStat, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return append([]net.IOCountersStat(nil), f.nets...), nil
}

func (f *fakeSource) Temperatures() ([]host.TemperatureStat, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.temps, nil
}

func (f *fakeSource) Uptime() (uint64, error) {
	if f.fail {
		return 0, errUnavailable
	}
	return f.uptime, nil
}

func (f *fakeSource) KernelArch() (string, error) {
	if f.fail {
		return "", errUnavailable
	}
	return f.arch, nil
}

func (f *fakeSource) Processes() ([]model.Process, error) {
	f.procCalls++
	if f.fail {
		return nil, errUnavailable
	}
	return append([]model.Process(nil), f.procs...), nil
}

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func readerOf(m fstest.MapFS) *sysfs.Reader { return sysfs.New(m) }

package sampler

import (
	"log/slog"
	"math"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
)

const cpuRoot = "/sys/devices/system/cpu"

// Sensor labels in priority order, matched against the lower-cased sensor
// key with underscores read as spaces.
var cpuSensorLabels = []string{"tctl", "tdie", "package id 0", "cpu temperature", "cpu"}

func readCPUInfo(src Source, fs *sysfs.Reader, log *slog.Logger) model.CPUInfo {
	info := model.CPUInfo{
		MaxFreqGHz:     readMaxFreqGHz(fs),
		Sockets:        countSockets(fs),
		Virtualization: detectVirtualization(fs),
		Architecture:   runtime.GOARCH,
	}
	if n, err := src.CPUCounts(false); err == nil {
		info.PhysicalCores = n
	} else {
		log.Debug("physical core count unavailable", "error", err)
	}
	if n, err := src.CPUCounts(true); err == nil {
		info.LogicalCores = n
	} else {
		log.Debug("logical core count unavailable", "error", err)
	}
	if arch, err := src.KernelArch(); err == nil && arch != "" {
		info.Architecture = arch
	}
	return info
}

func readMaxFreqGHz(fs *sysfs.Reader) float64 {
	khz, ok := fs.Uint(cpuRoot + "/cpu0/cpufreq/cpuinfo_max_freq")
	if !ok {
		return 0
	}
	return float64(khz) / 1_000_000
}

// countSockets counts distinct physical package ids, never fewer than one.
func countSockets(fs *sysfs.Reader) int {
	ids := make(map[string]struct{})
	for _, e := range fs.ReadDir(cpuRoot) {
		if !isIndexed(e.Name(), "cpu") {
			continue
		}
		if id, ok := fs.String(cpuRoot + "/" + e.Name() + "/topology/physical_package_id"); ok {
			ids[id] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return 1
	}
	return len(ids)
}

// detectVirtualization reports hardware virtualization support from the
// cpuinfo flags line. It says nothing about whether a hypervisor is running.
func detectVirtualization(fs *sysfs.Reader) string {
	content, ok := fs.String("/proc/cpuinfo")
	if !ok {
		return "None"
	}
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "flags") {
			continue
		}
		switch {
		case strings.Contains(line, "svm"):
			return "AMD-V"
		case strings.Contains(line, "vmx"):
			return "Intel VT-x"
		}
		break
	}
	return "None"
}

func pickCPUTemp(temps []host.TemperatureStat) float64 {
	usable := make([]host.TemperatureStat, 0, len(temps))
	for _, t := range temps {
		if math.IsNaN(t.Temperature) || math.IsInf(t.Temperature, 0) {
			continue
		}
		usable = append(usable, t)
	}
	for _, label := range cpuSensorLabels {
		for _, t := range usable {
			key := strings.ReplaceAll(strings.ToLower(t.SensorKey), "_", " ")
			if strings.Contains(key, label) {
				return t.Temperature
			}
		}
	}
	if len(usable) > 0 {
		return usable[0].Temperature
	}
	return 0
}

// isIndexed reports whether name is prefix followed by one or more digits.
func isIndexed(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

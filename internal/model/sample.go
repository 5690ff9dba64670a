package model

import "time"

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	Total   float64   `json:"total"`    // percent 0-100
	PerCore []float64 `json:"per_core"` // per-core percent
}

// Memory captures RAM and swap usage in bytes.
type Memory struct {
	Used      uint64 `json:"used"`
	Total     uint64 `json:"total"`
	SwapUsed  uint64 `json:"swap_used"`
	SwapTotal uint64 `json:"swap_total"`
}

// Disk is one mounted filesystem.
type Disk struct {
	Mount    string  `json:"mount"`
	Used     uint64  `json:"used"`
	Total    uint64  `json:"total"`
	Fraction float64 `json:"fraction"`
}

// Network holds cumulative counters and the rate over the last window.
type Network struct {
	Name    string  `json:"name"`
	RxBytes uint64  `json:"rx_bytes"`
	TxBytes uint64  `json:"tx_bytes"`
	RxRate  float64 `json:"rx_rate"` // bytes/s
	TxRate  float64 `json:"tx_rate"` // bytes/s
}

// Host is the CPU/memory/disk/network snapshot.
type Host struct {
	SampledAt     time.Time `json:"sampled_at"`
	CPU           CPU       `json:"cpu"`
	Memory        Memory    `json:"memory"`
	Disks         []Disk    `json:"disks"`
	Networks      []Network `json:"networks"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
	CPUTempC      float64   `json:"cpu_temp_c"`
	CPUTempMaxC   float64   `json:"cpu_temp_max_c"`
}

// MemoryFraction is used/total RAM, 0 when the total is unknown.
func (h Host) MemoryFraction() float64 { return fraction(h.Memory.Used, h.Memory.Total) }

// SwapFraction is used/total swap, 0 when there is no swap.
func (h Host) SwapFraction() float64 { return fraction(h.Memory.SwapUsed, h.Memory.SwapTotal) }

// Clone returns a copy that shares no slices with h.
func (h Host) Clone() Host {
	out := h
	out.CPU.PerCore = append([]float64(nil), h.CPU.PerCore...)
	out.Disks = append([]Disk(nil), h.Disks...)
	out.Networks = append([]Network(nil), h.Networks...)
	return out
}

// CPUInfo holds properties that do not change while the process runs.
type CPUInfo struct {
	MaxFreqGHz     float64 `json:"max_freq_ghz"`
	PhysicalCores  int     `json:"physical_cores"`
	LogicalCores   int     `json:"logical_cores"`
	Sockets        int     `json:"sockets"`
	Virtualization string  `json:"virtualization"`
	Architecture   string  `json:"architecture"`
}

func fraction(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total)
}

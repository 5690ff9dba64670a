package model

// Unknown is the placeholder for identifiers the kernel does not expose.
const Unknown = "Unknown"

// BatteryStatus mirrors the power_supply "status" attribute. Values the
// kernel reports outside the constants below are kept verbatim.
type BatteryStatus string

const (
	StatusCharging    BatteryStatus = "Charging"
	StatusDischarging BatteryStatus = "Discharging"
	StatusFull        BatteryStatus = "Full"
	StatusNotCharging BatteryStatus = "Not charging"
	StatusUnknown     BatteryStatus = "Unknown"
)

// Battery is the power-supply snapshot. Consumers must check Available
// before trusting the other fields: when the battery disappears they keep
// their last known values.
type Battery struct {
	Available          bool          `json:"available"`
	Device             string        `json:"device"`
	Capacity           uint32        `json:"capacity"` // percent
	Status             BatteryStatus `json:"status"`
	Health             float64       `json:"health"` // percent of design capacity
	EnergyFullWh       float64       `json:"energy_full_wh"`
	EnergyFullDesignWh float64       `json:"energy_full_design_wh"`
	PowerW             float64       `json:"power_w"`
	CycleCount         uint32        `json:"cycle_count"`
	Technology         string        `json:"technology"`
	Manufacturer       string        `json:"manufacturer"`
	Model              string        `json:"model"`
}

// NoBattery is the initial battery state.
func NoBattery() Battery {
	return Battery{
		Status:       StatusUnknown,
		Technology:   Unknown,
		Manufacturer: Unknown,
		Model:        Unknown,
	}
}

// GPU is the primary display adapter snapshot. Clock and power-cap readings
// are nil when the driver does not expose them.
type GPU struct {
	Available    bool     `json:"available"`
	Card         string   `json:"card"`
	UsagePercent uint32   `json:"usage_percent"`
	VRAMUsed     uint64   `json:"vram_used"`
	VRAMTotal    uint64   `json:"vram_total"`
	CoreClockMHz *uint32  `json:"core_clock_mhz"`
	MemClockMHz  *uint32  `json:"mem_clock_mhz"`
	PowerW       float64  `json:"power_w"`
	PowerCapW    *float64 `json:"power_cap_w"`
	TempC        float64  `json:"temp_c"`
	TempMaxC     float64  `json:"temp_max_c"`
	Manufacturer string   `json:"manufacturer"`
	Product      string   `json:"product,omitempty"`
	PCISlot      string   `json:"pci_slot"`
	Driver       string   `json:"driver"`
	PCIeLink     string   `json:"pcie_link"`
}

// NoGPU is the initial GPU state.
func NoGPU() GPU {
	return GPU{
		Manufacturer: Unknown,
		PCISlot:      "N/A",
		Driver:       Unknown,
		PCIeLink:     "N/A",
	}
}

// Clone returns a copy that shares no pointers with g.
func (g GPU) Clone() GPU {
	out := g
	if g.CoreClockMHz != nil {
		v := *g.CoreClockMHz
		out.CoreClockMHz = &v
	}
	if g.MemClockMHz != nil {
		v := *g.MemClockMHz
		out.MemClockMHz = &v
	}
	if g.PowerCapW != nil {
		v := *g.PowerCapW
		out.PowerCapW = &v
	}
	return out
}

// VRAMFraction is used/total VRAM, 0 when the total is unknown.
func (g GPU) VRAMFraction() float64 { return fraction(g.VRAMUsed, g.VRAMTotal) }

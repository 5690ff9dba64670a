package sampler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
)

// DefaultGPUInterval matches the host poller; usage and temperature move fast.
const DefaultGPUInterval = 1500 * time.Millisecond

const drmRoot = "/sys/class/drm"

// pciVendors maps PCI vendor ids to display names.
var pciVendors = map[string]string{
	"0x1002": "Advanced Micro Devices, Inc. [AMD/ATI]",
	"0x10de": "NVIDIA Corporation",
	"0x8086": "Intel Corporation",
}

// pcieGenerations maps per-lane transfer rates in GT/s to PCIe generations.
var pcieGenerations = map[float64]string{
	2.5:  "1.0",
	5.0:  "2.0",
	8.0:  "3.0",
	16.0: "4.0",
	32.0: "5.0",
}

// PCINamer resolves a PCI slot such as "0000:03:00.0" to a product name.
type PCINamer interface {
	ProductName(slot string) string
}

// GPUPoller reads the lowest-numbered DRM card. Multi-GPU hosts only show
// that card.
type GPUPoller struct {
	fs    *sysfs.Reader
	log   *slog.Logger
	now   func() time.Time
	namer PCINamer
	gate  gate
	snap  model.GPU
}

// NewGPUPoller takes the first sample immediately.
func NewGPUPoller(fs *sysfs.Reader, opts ...Option) *GPUPoller {
	st := newSettings(DefaultGPUInterval, opts)
	p := &GPUPoller{
		fs:    fs,
		log:   st.log,
		now:   st.now,
		namer: st.namer,
		gate:  gate{interval: st.interval},
		snap:  model.NoGPU(),
	}
	now := p.now()
	p.refresh()
	p.gate.mark(now)
	return p
}

// RefreshIfNeeded resamples when the interval has elapsed.
func (p *GPUPoller) RefreshIfNeeded() bool {
	now := p.now()
	if !p.gate.due(now) {
		return false
	}
	p.refresh()
	p.gate.mark(now)
	return true
}

// Snapshot returns a copy of the latest GPU state.
func (p *GPUPoller) Snapshot() model.GPU { return p.snap.Clone() }

func (p *GPUPoller) findDevice() (string, string, bool) {
	for _, e := range p.fs.ReadDir(drmRoot) {
		if !isIndexed(e.Name(), "card") {
			continue
		}
		dev := drmRoot + "/" + e.Name() + "/device"
		if p.fs.Exists(dev) {
			return dev, e.Name(), true
		}
	}
	return "", "", false
}

// findHwmon returns the first monitor chip under the device.
func (p *GPUPoller) findHwmon(dev string) (string, bool) {
	entries := p.fs.ReadDir(dev + "/hwmon")
	if len(entries) == 0 {
		return "", false
	}
	return dev + "/hwmon/" + entries[0].Name(), true
}

func (p *GPUPoller) refresh() {
	dev, card, ok := p.findDevice()
	if !ok {
		p.snap.Available = false
		return
	}

	s := p.snap.Clone()
	s.Available = true
	s.Card = card

	if v, ok := p.fs.Uint(dev + "/gpu_busy_percent"); ok {
		s.UsagePercent = uint32(v)
	} else {
		s.UsagePercent = 0
	}
	s.VRAMUsed, _ = p.fs.Uint(dev + "/mem_info_vram_used")
	s.VRAMTotal, _ = p.fs.Uint(dev + "/mem_info_vram_total")

	s.CoreClockMHz = nil
	if content, ok := p.fs.String(dev + "/pp_dpm_sclk"); ok {
		s.CoreClockMHz = ParseActiveClockMHz(content)
	}
	s.MemClockMHz = nil
	if content, ok := p.fs.String(dev + "/pp_dpm_mclk"); ok {
		s.MemClockMHz = ParseActiveClockMHz(content)
	}

	if hw, ok := p.findHwmon(dev); ok {
		milli, _ := p.fs.Int(hw + "/temp1_input")
		s.TempC = float64(milli) / 1000
		if s.TempC > s.TempMaxC {
			s.TempMaxC = s.TempC
		}
		micro, _ := p.fs.Uint(hw + "/power1_average")
		s.PowerW = float64(micro) / 1_000_000
		s.PowerCapW = nil
		if c, ok := p.fs.Uint(hw + "/power1_cap"); ok {
			w := float64(c) / 1_000_000
			s.PowerCapW = &w
		}
	} else {
		p.log.Debug("gpu has no hwmon sensors", "device", dev)
	}

	speed, _ := p.fs.String(dev + "/current_link_speed")
	width, _ := p.fs.String(dev + "/current_link_width")
	s.PCIeLink = FormatPCIeLink(speed, width)

	if v, ok := p.fs.String(dev + "/vendor"); ok {
		s.Manufacturer = VendorName(v)
	} else {
		s.Manufacturer = model.Unknown
	}

	s.Driver, s.PCISlot = parseUevent(p.fs, dev+"/uevent")
	if p.namer != nil && s.PCISlot != "N/A" {
		s.Product = p.namer.ProductName(s.PCISlot)
	}

	p.snap = s
}

// ParseActiveClockMHz finds the level marked with "*" in a pp_dpm_* clock
// table ("0: 500Mhz\n1: 800Mhz *\n") and returns its frequency. It returns
// nil when no level is marked or the value cannot be parsed.
func ParseActiveClockMHz(content string) *uint32 {
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "*") {
			continue
		}
		lower := strings.ToLower(line)
		pos := strings.Index(lower, "mhz")
		if pos < 0 {
			return nil
		}
		fields := strings.Fields(lower[:pos])
		if len(fields) == 0 {
			return nil
		}
		v, err := strconv.ParseUint(fields[len(fields)-1], 10, 32)
		if err != nil {
			return nil
		}
		mhz := uint32(v)
		return &mhz
	}
	return nil
}

// FormatPCIeLink renders "PCIe <gen> x<width>" from current_link_speed
// ("8.0 GT/s PCIe") and current_link_width ("16"). Either value missing
// yields "N/A"; an unrecognised speed yields generation "?".
func FormatPCIeLink(speed, width string) string {
	speed, width = strings.TrimSpace(speed), strings.TrimSpace(width)
	if speed == "" || width == "" {
		return "N/A"
	}
	return fmt.Sprintf("PCIe %s x%s", pcieGeneration(speed), width)
}

func pcieGeneration(speed string) string {
	fields := strings.Fields(speed)
	if len(fields) == 0 {
		return "?"
	}
	gts, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "?"
	}
	if gen, ok := pcieGenerations[gts]; ok {
		return gen
	}
	return "?"
}

// VendorName resolves a PCI vendor id. Unknown ids are returned lower-cased.
func VendorName(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if name, ok := pciVendors[id]; ok {
		return name
	}
	return id
}

func parseUevent(fs *sysfs.Reader, path string) (driver, slot string) {
	driver, slot = model.Unknown, "N/A"
	content, ok := fs.String(path)
	if !ok {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		if v, ok := strings.CutPrefix(line, "DRIVER="); ok {
			driver = v
		} else if v, ok := strings.CutPrefix(line, "PCI_SLOT_NAME="); ok {
			slot = v
		}
	}
	return
}

package sampler

import (
	"log/slog"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/pci"
)

// PCIDatabase names PCI devices through ghw and the pci.ids database. The
// database is loaded once by NewPCIDatabase, before the first frame.
type PCIDatabase struct {
	info  *pci.Info
	cache map[string]string
}

// NewPCIDatabase loads the PCI database. It returns nil when the database is
// unavailable; the GPU poller then leaves the product name empty.
func NewPCIDatabase(log *slog.Logger) *PCIDatabase {
	info, err := ghw.PCI()
	if err != nil || info == nil {
		if log != nil {
			log.Warn("pci database unavailable", "error", err)
		}
		return nil
	}
	return &PCIDatabase{info: info, cache: make(map[string]string)}
}

// ProductName returns the vendor-qualified product name for slot, or "".
func (d *PCIDatabase) ProductName(slot string) string {
	if d == nil {
		return ""
	}
	if name, ok := d.cache[slot]; ok {
		return name
	}
	var name string
	if dev := d.info.GetDevice(slot); dev != nil && dev.Product != nil {
		name = strings.TrimSpace(dev.Product.Name)
	}
	d.cache[slot] = name
	return name
}

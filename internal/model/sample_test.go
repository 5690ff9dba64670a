package model

import "testing"

func TestHostFractionsGuardZeroTotals(t *testing.T) {
	var h Host
	if h.MemoryFraction() != 0 || h.SwapFraction() != 0 {
		t.Fatal("expected zero fractions for an empty snapshot")
	}
	h.Memory = Memory{Used: 2, Total: 8, SwapUsed: 1, SwapTotal: 4}
	if h.MemoryFraction() != 0.25 || h.SwapFraction() != 0.25 {
		t.Fatalf("unexpected fractions %v %v", h.MemoryFraction(), h.SwapFraction())
	}
}

func TestHostCloneIsDeep(t *testing.T) {
	h := Host{
		CPU:      CPU{PerCore: []float64{1, 2}},
		Disks:    []Disk{{Mount: "/"}},
		Networks: []Network{{Name: "eth0"}},
	}
	c := h.Clone()
	c.CPU.PerCore[0] = 99
	c.Disks[0].Mount = "/home"
	c.Networks[0].Name = "wlan0"
	if h.CPU.PerCore[0] != 1 || h.Disks[0].Mount != "/" || h.Networks[0].Name != "eth0" {
		t.Fatal("clone shares backing arrays with the original")
	}
}

func TestGPUCloneIsDeep(t *testing.T) {
	clk := uint32(800)
	capW := 150.0
	g := GPU{CoreClockMHz: &clk, PowerCapW: &capW}
	c := g.Clone()
	*c.CoreClockMHz = 1
	*c.PowerCapW = 1
	if *g.CoreClockMHz != 800 || *g.PowerCapW != 150 {
		t.Fatal("clone shares pointers with the original")
	}
	if c.MemClockMHz != nil {
		t.Fatal("absent clock must stay absent")
	}
}

func TestDefaults(t *testing.T) {
	b := NoBattery()
	if b.Available || b.Status != StatusUnknown || b.Model != Unknown {
		t.Fatalf("unexpected battery defaults %+v", b)
	}
	g := NoGPU()
	if g.Available || g.PCIeLink != "N/A" || g.Driver != Unknown {
		t.Fatalf("unexpected gpu defaults %+v", g)
	}
}

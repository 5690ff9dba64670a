package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
	"github.com/Dicklesworthstone/lcarsmon/internal/units"
)

const gaugeWidth = 28

func (m *Model) View() string {
	var body string
	switch m.screen {
	case ScreenProcesses:
		body = m.processesView()
	case ScreenBattery:
		body = batteryView(m.tel.Battery())
	case ScreenGPU:
		body = gpuView(m.tel.GPU())
	default:
		body = dashboardView(m.tel.Host(), m.tel.CPUInfo())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.tabs(), body, m.footer())
}

func (m *Model) header() string {
	title := "LCARS-OPS   SYSTEM MONITOR   SD:" + stardate(m.now())
	return lipgloss.JoinHorizontal(lipgloss.Top, headerStyle.Render(title), capStyle.Render(" "))
}

func (m *Model) footer() string {
	help := "1-4 views  q quit"
	if m.screen == ScreenProcesses {
		help += "  p/n/u/c/m sort  j/k move  enter expand"
	}
	return footerStyle.Render("UNITED FEDERATION OF PLANETS") + "  " + subtleStyle.Render(help)
}

func (m *Model) tabs() string {
	colors := []lipgloss.Color{peach, lavender, periwinkle, magenta}
	out := make([]string, len(screenNames))
	for i, name := range screenNames {
		bg := colors[i]
		if Screen(i) == m.screen {
			bg = orange
		}
		out[i] = tabStyle.Background(bg).Render(fmt.Sprintf("%d %s", i+1, name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func dashboardView(h model.Host, info model.CPUInfo) string {
	cpuLines := []string{gaugeBar("Total", h.CPU.Total/100, gaugeWidth, orange)}
	for i, pct := range h.CPU.PerCore {
		cpuLines = append(cpuLines, gaugeBar(fmt.Sprintf("Core %d", i), pct/100, gaugeWidth, coreColors[i%len(coreColors)]))
	}
	cpuCard := card("Processor", orange, strings.Join(cpuLines, "\n"))

	tc := tempColor(h.CPUTempC)
	sensors := card("Sensors", orange,
		gaugeBar("TEMP", h.CPUTempC/100, gaugeWidth, tc)+"\n"+
			lipgloss.NewStyle().Foreground(tc).Render(fmt.Sprintf("%.0f°C  •  Highest: %.0f°C", h.CPUTempC, h.CPUTempMaxC)))

	freq := "N/A"
	if info.MaxFreqGHz > 0 {
		freq = fmt.Sprintf("%.2f GHz", info.MaxFreqGHz)
	}
	properties := card("Properties", peach, props(peach, [][2]string{
		{"MAX FREQUENCY", freq},
		{"LOGICAL CORES", fmt.Sprint(info.LogicalCores)},
		{"PHYSICAL CORES", fmt.Sprint(info.PhysicalCores)},
		{"SOCKETS", fmt.Sprint(info.Sockets)},
		{"UPTIME", units.FormatUptime(h.UptimeSeconds)},
		{"VIRTUALIZATION", info.Virtualization},
		{"ARCHITECTURE", info.Architecture},
	}))

	memory := card("Memory", peach, strings.Join([]string{
		gaugeBar("RAM", h.MemoryFraction(), gaugeWidth, peach),
		subtleStyle.Render(fmt.Sprintf("%s / %s", units.FormatBytes(h.Memory.Used), units.FormatBytes(h.Memory.Total))),
		gaugeBar("Swap", h.SwapFraction(), gaugeWidth, lavender),
		subtleStyle.Render(fmt.Sprintf("%s / %s", units.FormatBytes(h.Memory.SwapUsed), units.FormatBytes(h.Memory.SwapTotal))),
	}, "\n"))

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, lipgloss.JoinVertical(lipgloss.Left, sensors, properties)),
		memory,
	}

	if len(h.Disks) > 0 {
		lines := make([]string, 0, 2*len(h.Disks))
		for _, d := range h.Disks {
			lines = append(lines,
				gaugeBar(mountLabel(d.Mount), d.Fraction, gaugeWidth, diskColor(d.Fraction)),
				subtleStyle.Render(fmt.Sprintf("%s / %s", units.FormatBytes(d.Used), units.FormatBytes(d.Total))))
		}
		rows = append(rows, card("Storage", periwinkle, strings.Join(lines, "\n")))
	}

	if len(h.Networks) > 0 {
		lines := make([]string, 0, 3*len(h.Networks))
		for _, n := range h.Networks {
			lines = append(lines,
				lipgloss.NewStyle().Foreground(blue).Render(strings.ToUpper(n.Name)),
				gaugeBar("RX", units.RateFraction(n.RxRate), gaugeWidth, blue)+"  "+
					subtleStyle.Render(fmt.Sprintf("%s (%s)", units.FormatRate(n.RxRate), units.FormatBytes(n.RxBytes))),
				gaugeBar("TX", units.RateFraction(n.TxRate), gaugeWidth, peach)+"  "+
					subtleStyle.Render(fmt.Sprintf("%s (%s)", units.FormatRate(n.TxRate), units.FormatBytes(n.TxBytes))))
		}
		rows = append(rows, card("Network", blue, strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// mountLabel keeps the tail of long mount points.
func mountLabel(mount string) string {
	r := []rune(mount)
	if len(r) > 10 {
		return ".." + string(r[len(r)-8:])
	}
	return mount
}

// maxBatteryPowerW is the full-scale reading of the battery power gauge.
const maxBatteryPowerW = 60.0

func batteryView(b model.Battery) string {
	if !b.Available {
		return lipgloss.NewStyle().Foreground(orange).Bold(true).Padding(1, 2).Render("NO BATTERY DETECTED")
	}
	cc := batteryColor(b.Capacity)
	usage := card("Usage", green, strings.Join([]string{
		gaugeBar("CHARGE", float64(b.Capacity)/100, gaugeWidth, cc),
		lipgloss.NewStyle().Foreground(cc).Render(strings.ToUpper(string(b.Status))),
		gaugeBar("POWER", b.PowerW/maxBatteryPowerW, gaugeWidth, peach),
		lipgloss.NewStyle().Foreground(peach).Render(fmt.Sprintf("%.1f W", b.PowerW)),
	}, "\n"))
	properties := card("Properties", lavender, props(lavender, [][2]string{
		{"BATTERY HEALTH", fmt.Sprintf("%.0f%%", b.Health)},
		{"FULL CAPACITY", fmt.Sprintf("%.1f Wh", b.EnergyFullWh)},
		{"DESIGN CAPACITY", fmt.Sprintf("%.1f Wh", b.EnergyFullDesignWh)},
		{"CHARGE CYCLES", fmt.Sprint(b.CycleCount)},
		{"TECHNOLOGY", b.Technology},
		{"MANUFACTURER", b.Manufacturer},
		{"MODEL NAME", b.Model},
		{"DEVICE", b.Device},
	}))
	return lipgloss.JoinVertical(lipgloss.Left, usage, properties)
}

func gpuView(g model.GPU) string {
	if !g.Available {
		return lipgloss.NewStyle().Foreground(orange).Bold(true).Padding(1, 2).Render("NO GPU DETECTED")
	}
	usage := card("Usage", magenta, strings.Join([]string{
		gaugeBar("TOTAL", float64(g.UsagePercent)/100, gaugeWidth, magenta),
		gaugeBar("VRAM", g.VRAMFraction(), gaugeWidth, peach),
		subtleStyle.Render(fmt.Sprintf("%s / %s", units.FormatBytes(g.VRAMUsed), units.FormatBytes(g.VRAMTotal))),
	}, "\n"))

	capW := "N/A"
	if g.PowerCapW != nil {
		capW = fmt.Sprintf("%.1f W", *g.PowerCapW)
	}
	stats := card("Clocks & Power", magenta, props(magenta, [][2]string{
		{"CORE CLOCK", clockString(g.CoreClockMHz)},
		{"MEMORY CLOCK", clockString(g.MemClockMHz)},
		{"POWER USAGE", fmt.Sprintf("%.1f W", g.PowerW)},
		{"POWER CAP", capW},
	}))
	temp := card("Thermal", red,
		gaugeBar("TEMP", g.TempC/100, gaugeWidth, tempColor(g.TempC))+"\n"+
			subtleStyle.Render(fmt.Sprintf("%.0f°C  •  Highest: %.0f°C", g.TempC, g.TempMaxC)))

	product := g.Product
	if product == "" {
		product = model.Unknown
	}
	properties := card("Properties", lavender, props(lavender, [][2]string{
		{"MANUFACTURER", g.Manufacturer},
		{"PRODUCT", product},
		{"CARD", g.Card},
		{"PCI SLOT", g.PCISlot},
		{"DRIVER", g.Driver},
		{"PCIE LINK", g.PCIeLink},
	}))
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, usage, stats),
		lipgloss.JoinHorizontal(lipgloss.Top, temp, properties))
}

func clockString(mhz *uint32) string {
	if mhz == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d MHz", *mhz)
}

func (m *Model) processesView() string {
	view := m.tel.View()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(orange).Bold(true).Render(tableHeader(view)))
	for i, p := range m.rows {
		expanded := view.IsExpanded(p.PID)
		line := processRow(p, expanded)
		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(black).Background(peach).Render(line)
		} else {
			line = lipgloss.NewStyle().Foreground(peach).Render(line)
		}
		b.WriteString("\n" + line)
		if !expanded {
			continue
		}
		children := m.tel.Children(p.PID)
		if len(children) == 0 {
			b.WriteString("\n" + subtleStyle.Render("      (no child processes)"))
		}
		for _, c := range children {
			b.WriteString("\n" + subtleStyle.Render("    └ "+childRow(c)))
		}
	}
	return card("Processes", orange, b.String())
}

var tableColumns = []struct {
	col   sampler.SortColumn
	title string
	width int
}{
	{sampler.SortPID, "PID", 8},
	{sampler.SortName, "NAME", 20},
	{sampler.SortUser, "USER", 12},
	{sampler.SortCPU, "CPU%", 8},
	{sampler.SortMemory, "MEMORY", 10},
}

func tableHeader(view sampler.ProcessView) string {
	var b strings.Builder
	b.WriteString("  ")
	for _, c := range tableColumns {
		title := c.title
		if c.col == view.Column {
			if view.Order == sampler.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		fmt.Fprintf(&b, "%-*s", c.width, title)
	}
	return strings.TrimRight(b.String(), " ")
}

func processRow(p model.Process, expanded bool) string {
	marker := "▸"
	if expanded {
		marker = "▾"
	}
	return fmt.Sprintf("%s %-8d%-20s%-12s%-8s%-10s", marker, p.PID,
		truncate(p.Name, 19), truncate(p.User, 11), fmt.Sprintf("%.1f%%", p.CPU), units.FormatBytes(p.Memory))
}

func childRow(p model.Process) string {
	return fmt.Sprintf("%-7d %-16s %6.1f%% %10s", p.PID, truncate(p.Name, 16), p.CPU, units.FormatBytes(p.Memory))
}

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LCARS palette.
var (
	orange     = lipgloss.Color("#FF9900")
	peach      = lipgloss.Color("#FFCC99")
	lavender   = lipgloss.Color("#CC99CC")
	periwinkle = lipgloss.Color("#9999FF")
	magenta    = lipgloss.Color("#CC6699")
	blue       = lipgloss.Color("#99CCFF")
	black      = lipgloss.Color("#000000")
	green      = lipgloss.Color("#33CC66")
	yellow     = lipgloss.Color("#FFCC00")
	red        = lipgloss.Color("#FF3333")
	dim        = lipgloss.Color("244")
)

var coreColors = []lipgloss.Color{peach, blue, periwinkle, lavender}

// Styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(black).Background(orange).Padding(0, 2)
	footerStyle = lipgloss.NewStyle().Foreground(black).Background(lavender).Padding(0, 2)
	capStyle    = lipgloss.NewStyle().Background(blue).Padding(0, 1)
	subtleStyle = lipgloss.NewStyle().Foreground(dim)
	tabStyle    = lipgloss.NewStyle().Foreground(black).Padding(0, 1).MarginRight(1)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1)
)

func gaugeBar(label string, frac float64, width int, color lipgloss.Color) string {
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(gaugeFill, filled)) +
		subtleStyle.Render(strings.Repeat(gaugeEmpty, width-filled))
	return fmt.Sprintf("%-8s %s %5.1f%%", truncate(label, 8), bar, frac*100)
}

func card(title string, color lipgloss.Color, body string) string {
	titleStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(title))
	return cardStyle.BorderForeground(color).Render(titleStr + "\n" + body)
}

// props renders aligned LABEL value rows.
func props(color lipgloss.Color, rows [][2]string) string {
	labelStyle := lipgloss.NewStyle().Foreground(dim).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(r[0]) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// diskColor grades a usage fraction green, yellow, then red above 80%.
func diskColor(frac float64) lipgloss.Color {
	switch {
	case frac <= 0.49:
		return green
	case frac <= 0.80:
		return yellow
	}
	return red
}

func tempColor(c float64) lipgloss.Color {
	switch {
	case c >= 80:
		return red
	case c >= 60:
		return yellow
	}
	return green
}

func batteryColor(capacity uint32) lipgloss.Color {
	switch {
	case capacity > 50:
		return green
	case capacity > 20:
		return yellow
	}
	return red
}

// stardate renders t as two-digit year, day of year and the elapsed tenth
// of the day from the hour, e.g. "24172.5".
func stardate(t time.Time) string {
	return fmt.Sprintf("%s%03d.%d", t.Format("06"), t.YearDay(), t.Hour()*10/24)
}

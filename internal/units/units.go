package units

import (
	"fmt"
	"math"
)

// LinkRate is the reference for RateFraction: 1 Gbit/s in bytes per second.
const LinkRate = 125_000_000.0

const (
	kb = 1_000
	mb = kb * 1_000
	gb = mb * 1_000
	tb = gb * 1_000
)

// FormatBytes renders b in decimal SI units with one decimal place.
func FormatBytes(b uint64) string {
	switch {
	case b >= tb:
		return fmt.Sprintf("%.1f TB", float64(b)/tb)
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/gb)
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/mb)
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/kb)
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// FormatRate renders a byte rate as FormatBytes plus "/s".
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return FormatBytes(uint64(bytesPerSec)) + "/s"
}

// FormatUptime renders seconds as HH:MM:SS. Hours are not wrapped at 24 and
// grow past two digits on long-running hosts.
func FormatUptime(seconds uint64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RateFraction maps a byte rate onto a 0..1 gauge against LinkRate.
func RateFraction(bytesPerSec float64) float64 {
	f := bytesPerSec / LinkRate
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Fraction returns used/total, or 0 when total is 0.
func Fraction(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total)
}

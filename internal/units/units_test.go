package units

import (
	"fmt"
	"math"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1_000, "1.0 KB"},
		{1_500_000, "1.5 MB"},
		{2_300_000_000, "2.3 GB"},
		{3_000_000_000_000, "3.0 TB"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.in); got != c.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBytesMonotonicAcrossUnits(t *testing.T) {
	scale := map[string]float64{"B": 1, "KB": kb, "MB": mb, "GB": gb, "TB": tb}
	value := func(s string) float64 {
		var n float64
		var unit string
		if _, err := fmt.Sscan(s, &n, &unit); err != nil {
			t.Fatalf("unparsable %q: %v", s, err)
		}
		return n * scale[unit]
	}
	prev := -1.0
	for _, b := range []uint64{0, 1, 999, 1_000, 999_999, 1_000_000, 999_999_999, 1_000_000_000, 1_000_000_000_000, math.MaxUint64 / 2} {
		v := value(FormatBytes(b))
		if v < prev {
			t.Fatalf("FormatBytes not monotonic at %d: %v < %v", b, v, prev)
		}
		prev = v
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3_661, "01:01:01"},
		{86_400, "24:00:00"},
		{360_000 + 62, "100:01:02"},
	}
	for _, c := range cases {
		if got := FormatUptime(c.in); got != c.want {
			t.Errorf("FormatUptime(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRateFraction(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{62_500_000, 0.5},
		{125_000_000, 1},
		{250_000_000, 1},
		{-5, 0},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := RateFraction(c.in); got != c.want {
			t.Errorf("RateFraction(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFraction(t *testing.T) {
	if got := Fraction(5, 0); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
	if got := Fraction(1, 4); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(1_500_000); got != "1.5 MB/s" {
		t.Fatalf("expected 1.5 MB/s, got %q", got)
	}
	if got := FormatRate(-1); got != "0 B/s" {
		t.Fatalf("expected 0 B/s, got %q", got)
	}
}

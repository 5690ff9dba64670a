package sampler

import (
	"testing"
	"time"
)

func TestGate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := gate{interval: time.Second}

	if !g.due(base) {
		t.Fatal("a fresh gate must be due")
	}
	g.mark(base)
	if g.due(base.Add(999 * time.Millisecond)) {
		t.Fatal("gate due before the interval elapsed")
	}
	if !g.due(base.Add(time.Second)) {
		t.Fatal("gate not due once the interval elapsed")
	}
	if g.due(base.Add(-time.Hour)) {
		t.Fatal("gate due for a time before the last refresh")
	}

	g.mark(base.Add(-time.Minute))
	if !g.last.Equal(base) {
		t.Fatalf("last moved backwards to %v", g.last)
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	st := newSettings(time.Second, []Option{WithInterval(0), WithClock(nil), WithLogger(nil)})
	if st.interval != time.Second || st.now == nil || st.log == nil {
		t.Fatalf("invalid options replaced defaults: %+v", st)
	}
	st = newSettings(time.Second, []Option{WithInterval(3 * time.Second)})
	if st.interval != 3*time.Second {
		t.Fatalf("expected 3s interval, got %v", st.interval)
	}
}

package sampler

import (
	"io"
	"log/slog"
	"time"
)

// gate decides when a poller may resample. last only ever moves forward.
type gate struct {
	interval time.Duration
	last     time.Time
}

func (g *gate) due(now time.Time) bool {
	if g.last.IsZero() {
		return true
	}
	if now.Before(g.last) {
		return false
	}
	return now.Sub(g.last) >= g.interval
}

func (g *gate) mark(now time.Time) {
	if now.After(g.last) {
		g.last = now
	}
}

type settings struct {
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
	namer    PCINamer
}

// Option tunes a poller.
type Option func(*settings)

// WithInterval overrides the poller's refresh interval.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for best-effort read failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPCINamer lets the GPU poller resolve a product name for its PCI slot.
func WithPCINamer(n PCINamer) Option {
	return func(s *settings) { s.namer = n }
}

func newSettings(interval time.Duration, opts []Option) settings {
	s := settings{
		interval: interval,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

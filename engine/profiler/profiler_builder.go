package profiler

import (
	"log"
	"time"
)

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values keep the 1 second default.
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger statistics are written to.
func WithLogger(l *log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval of frame and memory statistics.
type Stats struct {
	Frames      int
	FPS         float64
	FrameTimeMs float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now    func() time.Time
	logger *log.Logger
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         log.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs FPS, frame time, heap usage, allocation rate, GC count and pause times when the
// update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Frames:      p.frameCount,
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameTimeMs: float64(elapsed.Milliseconds()) / float64(p.frameCount),
		// Alloc is live heap, Sys is the process footprint obtained from the OS
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.FrameTimeMs, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the statistics of the most recently logged interval.
func (p *Profiler) Last() Stats {
	return p.last
}

package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	var buf bytes.Buffer
	p := NewProfiler(WithClock(clock.now), WithLogger(log.New(&buf, "", 0)), WithInterval(time.Second))

	for range 59 {
		clock.t = clock.t.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock.t = time.Unix(102, 0)
	require.True(t, p.Tick())
	s := p.Last()
	assert.Equal(t, 60, s.Frames)
	assert.InDelta(t, 30.0, s.FPS, 0.001)
	assert.Contains(t, buf.String(), "[Profiler] FPS: 30.00")

	// the counters restart after each report
	clock.t = clock.t.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}

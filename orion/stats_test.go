package orion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimes(t *testing.T) {
	var frames FrameTimes

	start := time.Unix(1000, 0)

	assert.False(t, frames.tickAt(start))
	assert.Zero(t, frames.Delta)
	assert.Zero(t, frames.FPS())

	var logged int
	for idx := 1; idx < 120; idx++ {
		if frames.tickAt(start.Add(time.Duration(idx) * 10 * time.Millisecond)) {
			logged++
		}
	}

	assert.Equal(t, uint64(120), frames.FrameCount)
	assert.Equal(t, 2, logged)
	assert.Equal(t, 10*time.Millisecond, frames.Delta)
	assert.Equal(t, 10*time.Millisecond, frames.MaxDuration)
	assert.InDelta(t, 100.0, frames.FPS(), 0.01)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "closing", Closing.String())
}

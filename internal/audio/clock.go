package audio

import (
	"sync/atomic"

	"github.com/faiface/beep"
)

// clock counts every sample handed to the speaker, pause silence
// included. The counter is atomic because the speaker pulls from its
// own goroutine while the game loop polls the total.
type clock struct {
	wrapped beep.Streamer
	samples *atomic.Int64
}

func (c *clock) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.wrapped.Stream(samples)
	c.samples.Add(int64(n))
	return n, ok
}

func (c *clock) Err() error {
	return c.wrapped.Err()
}

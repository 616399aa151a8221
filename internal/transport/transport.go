package transport

import "time"

// Transport converts the audio engine's hardware time into song time.
type Transport interface {
	// Play schedules playback to begin preDelay of hardware time from
	// now at the given song offset. On failure the transport stays
	// paused.
	Play(offset, preDelay time.Duration) error
	// Pause freezes song time and returns the offset it froze at.
	Pause() time.Duration
	// Resume continues from the frozen offset with no time jump.
	Resume()
	// Seek rewrites the frozen offset. Paused only.
	Seek(offset time.Duration) error
	// SetRate changes the playback rate, re-basing so song time stays
	// continuous.
	SetRate(rate float64) error
	// Now is the current song time, clamped non-negative. Read it once
	// per tick and reuse the value, so every judgement in a tick sees
	// the same time.
	Now() time.Duration
	Playing() bool
	Rate() float64
}

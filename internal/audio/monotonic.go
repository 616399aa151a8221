package audio

import "time"

// Monotonic is the silent engine used when no audio device is
// available. Its hardware clock is the wall clock and every playback
// operation is a no-op, so a session can still run without sound.
type Monotonic struct {
	epoch time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

func (e *Monotonic) Load(string) error { return nil }

func (e *Monotonic) Start(_, _ time.Duration, _ float64) error { return nil }

func (e *Monotonic) Pause() {}

func (e *Monotonic) Resume() {}

func (e *Monotonic) Seek(time.Duration) error { return nil }

func (e *Monotonic) SetRate(float64) error { return nil }

func (e *Monotonic) Now() time.Duration { return time.Since(e.epoch) }

func (e *Monotonic) Ended() bool { return false }

func (e *Monotonic) Duration() time.Duration { return 0 }

func (e *Monotonic) Stop() {}

func (e *Monotonic) Close() error { return nil }

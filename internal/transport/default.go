package transport

import (
	"errors"
	"fmt"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/audio"
)

// ErrPlaying is returned for operations that need a paused transport.
var ErrPlaying = errors.New("transport is playing")

// DefaultTransport keeps song time as
//
//	offset + (hardware now - hardware start) * rate
//
// while playing, frozen at offset while paused. Every state change
// re-bases the pair so time stays continuous across pause, resume and
// rate changes. The internal offset may run negative during a lead-in;
// Now clamps it for callers.
type DefaultTransport struct {
	engine  audio.Engine
	offset  time.Duration
	hwStart time.Duration
	rate    float64
	playing bool
}

func NewDefaultTransport(engine audio.Engine, rate float64) *DefaultTransport {
	if rate <= 0 {
		rate = 1
	}
	return &DefaultTransport{engine: engine, rate: rate}
}

func (t *DefaultTransport) Play(offset, preDelay time.Duration) error {
	if err := t.engine.Start(offset, preDelay, t.rate); nil != err {
		t.playing = false
		t.offset = offset
		return fmt.Errorf("unable to start playback: %w", err)
	}
	t.offset = offset
	t.hwStart = t.engine.Now() + preDelay
	t.playing = true
	return nil
}

func (t *DefaultTransport) Pause() time.Duration {
	if t.playing {
		t.offset = t.songTime()
		t.playing = false
		t.engine.Pause()
	}
	return clamp(t.offset)
}

func (t *DefaultTransport) Resume() {
	if t.playing {
		return
	}
	t.hwStart = t.engine.Now()
	t.playing = true
	t.engine.Resume()
}

func (t *DefaultTransport) Seek(offset time.Duration) error {
	if t.playing {
		return ErrPlaying
	}
	if offset < 0 {
		offset = 0
	}
	t.offset = offset
	if err := t.engine.Seek(offset); nil != err {
		return fmt.Errorf("unable to seek: %w", err)
	}
	return nil
}

func (t *DefaultTransport) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("unable to set rate %v: not positive", rate)
	}
	if t.playing {
		t.offset = t.songTime()
		t.hwStart = t.engine.Now()
	}
	t.rate = rate
	if t.playing {
		if err := t.engine.SetRate(rate); nil != err {
			return fmt.Errorf("unable to set rate: %w", err)
		}
	}
	return nil
}

func (t *DefaultTransport) Now() time.Duration {
	return clamp(t.songTime())
}

func (t *DefaultTransport) Playing() bool {
	return t.playing
}

func (t *DefaultTransport) Rate() float64 {
	return t.rate
}

func (t *DefaultTransport) songTime() time.Duration {
	if !t.playing {
		return t.offset
	}
	hw := t.engine.Now() - t.hwStart
	return t.offset + time.Duration(float64(hw)*t.rate)
}

func clamp(t time.Duration) time.Duration {
	if t < 0 {
		return 0
	}
	return t
}

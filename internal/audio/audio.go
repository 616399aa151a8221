package audio

import (
	"errors"
	"time"
)

// Errors surfaced when a song cannot be played.
var (
	// ErrUnavailable means no audio device could be opened. Play is
	// disabled but a session may continue on a silent clock.
	ErrUnavailable = errors.New("audio unavailable")
	// ErrFormat means the song file extension has no decoder.
	ErrFormat = errors.New("unsupported audio format")
)

// Engine plays the song and owns the hardware clock that playback time
// derives from. It is only ever polled; the single event it raises is
// the ended flag after the final sample plays.
type Engine interface {
	// Load decodes the song file and opens the speaker.
	Load(file string) error
	// Start schedules playback of the song from offset, beginning
	// preDelay of hardware time from now, consuming the source at rate.
	Start(offset, preDelay time.Duration, rate float64) error
	Pause()
	Resume()
	// Seek repositions the song source. Call while paused.
	Seek(offset time.Duration) error
	// SetRate changes the source consumption rate of a started song.
	SetRate(rate float64) error
	// Now is the hardware clock: time played through the speaker since
	// the engine opened. It never runs backward.
	Now() time.Duration
	// Ended reports whether the final sample has been played.
	Ended() bool
	// Duration is the length of the loaded song.
	Duration() time.Duration
	// Stop silences playback without releasing the song.
	Stop()
	Close() error
}

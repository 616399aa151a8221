package input

import (
	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// Kind classifies a session input event.
type Kind uint8

const (
	Note Kind = iota
	Quit
	Restart
	TogglePause
	SeekBack
	SeekForward
)

type Event struct {
	Kind  Kind
	Class game.PitchClass // set when Kind is Note
}

// Source emits session input events. A source never blocks its
// producer: when the buffer is full events are dropped.
type Source interface {
	Events() <-chan Event
	Close() error
}

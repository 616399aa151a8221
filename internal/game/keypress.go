package game

import (
	"time"
)

// KeyPress is a pitch-class input stamped with the song time the session
// observed it at. Octave is deliberately absent: judgement is keyed on
// pitch class alone.
type KeyPress struct {
	Class PitchClass
	Time  time.Duration
}

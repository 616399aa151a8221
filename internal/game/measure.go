package game

import (
	"time"
)

// Measure is a beat guide on the staff. Bar marks the first beat of a
// measure; the rest are intermediate beats.
type Measure struct {
	Time time.Duration // The time the beat crosses the judgment line
	Bar  bool
}

package game

import (
	"fmt"
	"time"
)

// PitchClass is one of the 12 note names independent of octave.
// Accidentals are normalized to flats: C Db D Eb E F Gb G Ab A Bb B.
type PitchClass uint8

var pitchClassNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func (p PitchClass) String() string {
	return pitchClassNames[p%12]
}

// PitchClassOf maps a MIDI note number to its pitch class.
func PitchClassOf(midi uint8) PitchClass {
	return PitchClass(midi % 12)
}

// NoteName is the flat-normalized name with octave, e.g. 61 -> "Db4".
func NoteName(midi uint8) string {
	return fmt.Sprintf("%v%v", pitchClassNames[midi%12], int(midi)/12-1)
}

// Note is one scheduled pitch event on the timeline.
type Note struct {
	Time     time.Duration // The time the note should be hit
	Duration time.Duration // Hold length, >= 0
	Midi     uint8         // MIDI note number, 0-127
	Name     string        // Display name, e.g. "Db4"

	// This is state
	Judgement Judgement     // One-way: Pending -> Perfect/Good/Miss
	HitTime   time.Duration // Song time the judgement landed at
}

func (n *Note) PitchClass() PitchClass {
	return PitchClassOf(n.Midi)
}

// Judge transitions the note exactly once; a judged note never changes.
func (n *Note) Judge(j Judgement, at time.Duration) bool {
	if Pending != n.Judgement || Pending == j {
		return false
	}
	n.Judgement = j
	n.HitTime = at
	return true
}

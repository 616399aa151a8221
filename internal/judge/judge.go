package judge

import (
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// Result of applying a key press to the chart.
type Result uint8

const (
	// NoMatch means the press judged nothing and changed no state.
	NoMatch Result = iota
	// Hit means a pending note was judged Perfect or Good.
	Hit
	// Resume means the press released a wait hold. Never scored.
	Resume
)

type Judge interface {
	Apply(chart *game.Chart, press game.KeyPress) (Result, *game.Note)
}

// DefaultJudge matches key presses to pending notes by pitch class.
// Octaves are not distinguished; a C releases or hits any C.
type DefaultJudge struct {
	Windows game.Windows
	Wait    *WaitMode
}

// Apply judges one key press. While a wait hold is active only the
// held note's pitch class releases it. In normal play the pending note
// of the pressed class closest to the press time within the good
// window is judged, ties going to the earlier note. A nil Wait means
// the judge never holds, which is what a replay wants.
func (j *DefaultJudge) Apply(chart *game.Chart, press game.KeyPress) (Result, *game.Note) {
	if nil != j.Wait && j.Wait.Active() {
		n := j.Wait.Note()
		if n.PitchClass() == press.Class {
			j.Wait.Exit()
			return Resume, n
		}
		return NoMatch, nil
	}

	var closest *game.Note
	best := time.Duration(1<<63 - 1)
	for _, n := range chart.Notes {
		if n.Judgement != game.Pending || n.PitchClass() != press.Class {
			continue
		}
		d := n.Time - press.Time
		if d < 0 {
			d = -d
		}
		if d > j.Windows.Good {
			if n.Time > press.Time {
				// sorted, so every later note is further away
				break
			}
			continue
		}
		if d < best {
			best = d
			closest = n
		}
	}
	if nil == closest {
		return NoMatch, nil
	}

	judgement := game.Good
	if best <= j.Windows.Perfect {
		judgement = game.Perfect
	}
	closest.Judge(judgement, press.Time)
	return Hit, closest
}

package judge

import (
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// Sweeper walks the timeline once per tick and turns overdue pending
// notes into misses. The cursor keeps each tick linear in new misses:
// notes behind it are already judged or were skipped by a seek, so a
// seek never causes retroactive misses.
type Sweeper struct {
	Windows    game.Windows
	Wait       *WaitMode
	WaitOnMiss bool
	cursor     int
}

// Sweep judges every pending note older than the good window at now
// and returns the new misses. It does nothing while a wait hold is
// active. With wait-on-miss enabled the first miss of the sweep
// freezes the song; the rest of the sweep still judges, so one tick
// never triggers two holds.
func (s *Sweeper) Sweep(chart *game.Chart, now time.Duration) []*game.Note {
	if nil != s.Wait && s.Wait.Active() {
		return nil
	}

	var missed []*game.Note
	for ; s.cursor < len(chart.Notes); s.cursor++ {
		n := chart.Notes[s.cursor]
		if n.Time >= now-s.Windows.Good {
			break
		}
		if n.Judgement != game.Pending {
			continue
		}
		n.Judge(game.Miss, now)
		missed = append(missed, n)
	}

	if s.WaitOnMiss && nil != s.Wait && len(missed) > 0 {
		s.Wait.Enter(missed[0])
	}
	return missed
}

// Rewind repositions the cursor for playback from song time t. Notes
// whose miss boundary lies before t are left untouched; scrubbing
// never judges.
func (s *Sweeper) Rewind(chart *game.Chart, t time.Duration) {
	s.cursor = 0
	for s.cursor < len(chart.Notes) && chart.Notes[s.cursor].Time < t-s.Windows.Good {
		s.cursor++
	}
}

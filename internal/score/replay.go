package score

import (
	"sort"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/judge"
)

// Replay re-derives the judgements of a stored performance against a
// fresh copy of the chart. The presses run through the same judge and
// sweeper as live play, so an identical input sequence always lands on
// identical outcomes.
func Replay(chart *game.Chart, h *History, windows game.Windows) *game.Chart {
	replay := chart.Clone()
	j := &judge.DefaultJudge{Windows: windows}
	sw := &judge.Sweeper{Windows: windows}

	presses := append([]game.KeyPress(nil), h.Inputs...)
	sort.SliceStable(presses, func(a, b int) bool {
		return presses[a].Time < presses[b].Time
	})

	for _, p := range presses {
		sw.Sweep(replay, p.Time)
		j.Apply(replay, p)
	}

	// Anything still pending after the last press is a miss.
	sw.Sweep(replay, replay.EndTime()+windows.Good+time.Millisecond)
	return replay
}

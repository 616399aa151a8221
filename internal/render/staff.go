package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/score"
	"github.com/JotaGreen/keytap-sub001/internal/theme"
)

// Staff plots the chart horizontally: notes scroll right to left toward
// a fixed judgement line, pitch picks the row. The previous cell of
// every moving glyph is remembered and cleared, so a frame only writes
// what changed plus the fixed chrome.
type Staff struct {
	Theme       theme.Theme
	Scroll      float64 // columns per second of song time
	JudgeColumn uint16

	cols, rows  uint16
	top, bottom uint16
	minMidi     uint8
	rowsPer     float64 // staff rows per semitone

	prevNotes    map[*game.Note]int
	prevMeasures map[*game.Measure]int
}

func NewStaff(th theme.Theme, chart *game.Chart, scroll float64, cols, rows uint16) *Staff {
	minMidi, maxMidi := uint8(127), uint8(0)
	for _, n := range chart.Notes {
		if n.Midi < minMidi {
			minMidi = n.Midi
		}
		if n.Midi > maxMidi {
			maxMidi = n.Midi
		}
	}

	top, bottom := uint16(3), rows
	if rows > 4 {
		bottom = rows - 3
	}
	rowsPer := 0.0
	if maxMidi > minMidi {
		rowsPer = float64(bottom-top) / float64(maxMidi-minMidi)
	}

	return &Staff{
		Theme:        th,
		Scroll:       scroll,
		JudgeColumn:  12,
		cols:         cols,
		rows:         rows,
		top:          top,
		bottom:       bottom,
		minMidi:      minMidi,
		rowsPer:      rowsPer,
		prevNotes:    map[*game.Note]int{},
		prevMeasures: map[*game.Measure]int{},
	}
}

// Row is the staff row for a pitch; the chart's lowest note sits on the
// bottom row and its highest on the top.
func (v *Staff) Row(midi uint8) uint16 {
	if midi < v.minMidi {
		midi = v.minMidi
	}
	return v.bottom - uint16(math.Round(float64(midi-v.minMidi)*v.rowsPer))
}

func (v *Staff) column(dt time.Duration) int {
	return int(v.JudgeColumn) + int(math.Round(dt.Seconds()*v.Scroll))
}

func (v *Staff) sideColumn() uint16 {
	sc := int(v.cols) - 22
	if sc < 2 {
		sc = 2
	}
	return uint16(sc)
}

// fieldEnd is the first column the staff must not paint.
func (v *Staff) fieldEnd() int {
	return int(v.sideColumn()) - 2
}

func (v *Staff) Draw(r Renderer, chart *game.Chart, now time.Duration, st score.State) {
	r.Fill(1, 2, fmt.Sprintf("%v  %9v", chart.Name, now.Truncate(10*time.Millisecond)))
	for row := v.top; row <= v.bottom; row++ {
		r.Fill(row, v.JudgeColumn, "│")
	}
	v.drawMeasures(r, chart, now)
	v.drawNotes(r, chart, now)
	v.drawStats(r, st)
}

func (v *Staff) drawNotes(r Renderer, chart *game.Chart, now time.Duration) {
	for _, n := range chart.Notes {
		width := len(n.Name)
		row := v.Row(n.Midi)
		col := v.column(n.Time - now)

		if p, ok := v.prevNotes[n]; ok && p != col {
			r.Fill(row, uint16(p), strings.Repeat(" ", width))
			delete(v.prevNotes, n)
		}

		hit := game.Perfect == n.Judgement || game.Good == n.Judgement
		if hit || col < 1 || col+width > v.fieldEnd() {
			if p, ok := v.prevNotes[n]; ok {
				r.Fill(row, uint16(p), strings.Repeat(" ", width))
				delete(v.prevNotes, n)
			}
			continue
		}

		if game.Miss == n.Judgement {
			r.FillColor(row, uint16(col), theme.JudgementColor(game.Miss), n.Name)
		} else {
			r.Fill(row, uint16(col), v.Theme.RenderNote(n))
		}
		v.prevNotes[n] = col
	}
}

func (v *Staff) drawMeasures(r Renderer, chart *game.Chart, now time.Duration) {
	guide := v.bottom + 1
	if guide >= v.rows {
		guide = v.rows
	}
	for _, m := range chart.Measures {
		col := v.column(m.Time - now)

		if p, ok := v.prevMeasures[m]; ok && p != col {
			r.Fill(guide, uint16(p), " ")
			delete(v.prevMeasures, m)
		}
		if col <= int(v.JudgeColumn) || col >= v.fieldEnd() {
			if p, ok := v.prevMeasures[m]; ok {
				r.Fill(guide, uint16(p), " ")
				delete(v.prevMeasures, m)
			}
			continue
		}

		mark := "·"
		if m.Bar {
			mark = "┃"
		}
		r.Fill(guide, uint16(col), mark)
		v.prevMeasures[m] = col
	}
}

func (v *Staff) drawStats(r Renderer, st score.State) {
	sc := v.sideColumn()
	r.Fill(v.top, sc, fmt.Sprintf("  Health:  %3v", st.Health))
	r.Fill(v.top+1, sc, fmt.Sprintf("   Score:  %6v", st.Score))
	r.Fill(v.top+2, sc, fmt.Sprintf("   Combo:  %4v", st.Combo))
	r.Fill(v.top+3, sc, fmt.Sprintf("     Max:  %4v", st.MaxCombo))
	r.Fill(v.top+5, sc, fmt.Sprintf("    Mean:  %9v", st.Mean.Truncate(time.Microsecond)))
	r.Fill(v.top+6, sc, fmt.Sprintf("   Stdev:  %9v", st.Stdev.Truncate(time.Microsecond)))

	for i, j := range []game.Judgement{game.Perfect, game.Good, game.Miss} {
		count := st.PerfectCount
		switch j {
		case game.Good:
			count = st.GoodCount
		case game.Miss:
			count = st.MissCount
		}
		r.FillColor(v.top+8+uint16(i), sc, theme.JudgementColor(j),
			fmt.Sprintf("%8v:  %5v", j, count))
	}
}

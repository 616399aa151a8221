package game

import (
	"errors"
	"sort"
	"time"
)

var ErrNoNotes = errors.New("note map contains no notes")

// Chart is the note timeline of one song. Notes are sorted ascending by
// Time when the chart is built and the order never changes afterwards;
// only per-note judgement state mutates, and a restart resets that state
// without rebuilding the notes.
type Chart struct {
	Notes    []*Note
	Measures []*Measure
	Name     string
}

// NewChart sorts the notes and freezes the timeline order.
func NewChart(name string, notes []*Note) (*Chart, error) {
	if 0 == len(notes) {
		return nil, ErrNoNotes
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})
	return &Chart{Name: name, Notes: notes}, nil
}

// Reset clears judgement state for a restart. Notes are kept.
func (c *Chart) Reset() {
	for _, n := range c.Notes {
		n.Judgement = Pending
		n.HitTime = 0
	}
}

// Clone copies the chart with every note back in the Pending state, so
// a history can be replayed without touching the live chart.
func (c *Chart) Clone() *Chart {
	notes := make([]*Note, len(c.Notes))
	for i, n := range c.Notes {
		nn := *n
		nn.Judgement = Pending
		nn.HitTime = 0
		notes[i] = &nn
	}
	return &Chart{Notes: notes, Measures: c.Measures, Name: c.Name}
}

// EndTime is the onset of the final note.
func (c *Chart) EndTime() time.Duration {
	return c.Notes[len(c.Notes)-1].Time
}

// Counts tallies judged notes by outcome.
func (c *Chart) Counts() (perfect, good, miss, pending int) {
	for _, n := range c.Notes {
		switch n.Judgement {
		case Perfect:
			perfect++
		case Good:
			good++
		case Miss:
			miss++
		default:
			pending++
		}
	}
	return
}

package judge

import (
	"testing"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

func newSweeper(waitOnMiss bool) (*Sweeper, *stubTransport) {
	tr := &stubTransport{}
	return &Sweeper{
		Windows:    windows,
		Wait:       NewWaitMode(tr),
		WaitOnMiss: waitOnMiss,
	}, tr
}

// A note counts as missed only once the late edge of its window has
// passed, not while a press could still land on it.
func TestSweepBoundary(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t, &game.Note{Time: time.Second, Midi: 60, Name: "C4"})

	if missed := s.Sweep(chart, 1139*time.Millisecond); 0 != len(missed) {
		t.Fatal("swept a note still inside its window:", missed)
	}
	if missed := s.Sweep(chart, 1140*time.Millisecond); 0 != len(missed) {
		t.Fatal("swept a note on the window edge:", missed)
	}

	missed := s.Sweep(chart, 1141*time.Millisecond)
	if 1 != len(missed) || missed[0].Judgement != game.Miss {
		t.Log("expected one miss, got", missed)
		t.Fail()
	}
	if missed[0].HitTime != 1141*time.Millisecond {
		t.Log("expected the sweep time recorded, got", missed[0].HitTime)
		t.Fail()
	}
}

func TestSweepHoldsFirstOverdue(t *testing.T) {
	s, tr := newSweeper(true)
	chart := testChart(t,
		&game.Note{Time: 500 * time.Millisecond, Midi: 60, Name: "C4"},
		&game.Note{Time: 600 * time.Millisecond, Midi: 61, Name: "Db4"},
	)

	missed := s.Sweep(chart, 800*time.Millisecond)
	if 2 != len(missed) {
		t.Fatal("expected both notes overdue, got", missed)
	}
	for _, n := range missed {
		if n.Judgement != game.Miss {
			t.Log(n.Name, "expected a miss, got", n.Judgement)
			t.Fail()
		}
	}
	if !s.Wait.Active() || s.Wait.Note().Midi != 60 {
		t.Log("expected a hold on the first overdue note, got", s.Wait.Note())
		t.Fail()
	}
	if tr.pauses != 1 {
		t.Log("expected one transport pause, got", tr.pauses)
		t.Fail()
	}
}

func TestSweepSkipsWhileHolding(t *testing.T) {
	s, _ := newSweeper(true)
	chart := testChart(t)
	s.Wait.Enter(chart.Notes[0])

	if missed := s.Sweep(chart, 10*time.Second); nil != missed {
		t.Log("expected no sweep during a hold, got", missed)
		t.Fail()
	}
	if _, _, m, _ := chart.Counts(); 0 != m {
		t.Log("expected no misses during a hold, got", m)
		t.Fail()
	}
}

func TestSweepSkipsJudged(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t)
	chart.Notes[0].Judge(game.Perfect, 505*time.Millisecond)

	missed := s.Sweep(chart, 10*time.Second)
	if 3 != len(missed) {
		t.Fatal("expected the three pending notes, got", missed)
	}
	if chart.Notes[0].Judgement != game.Perfect {
		t.Log("expected the hit untouched, got", chart.Notes[0].Judgement)
		t.Fail()
	}
}

func TestSweepCursorAdvances(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t)

	if missed := s.Sweep(chart, 700*time.Millisecond); 1 != len(missed) {
		t.Fatal("expected the first note missed, got", missed)
	}
	if missed := s.Sweep(chart, 700*time.Millisecond); 0 != len(missed) {
		t.Fatal("expected a repeat sweep to find nothing, got", missed)
	}
	if missed := s.Sweep(chart, 10*time.Second); 3 != len(missed) {
		t.Fatal("expected the remaining notes, got", missed)
	}
}

// Notes scrubbed past by a seek are skipped, not missed.
func TestRewindSkipsScrubbedNotes(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t)

	s.Rewind(chart, 1800*time.Millisecond)
	missed := s.Sweep(chart, 10*time.Second)
	if 1 != len(missed) || missed[0].Midi != 73 {
		t.Fatal("expected only the note past the seek point, got", missed)
	}
	for _, n := range chart.Notes[:3] {
		if n.Judgement != game.Pending {
			t.Log(n.Name, "expected to stay pending, got", n.Judgement)
			t.Fail()
		}
	}
}

// A note still inside its window at the seek point stays sweepable.
func TestRewindKeepsWindowedNote(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t, &game.Note{Time: time.Second, Midi: 60, Name: "C4"})

	s.Rewind(chart, 1100*time.Millisecond)
	if missed := s.Sweep(chart, 2*time.Second); 1 != len(missed) {
		t.Log("expected the windowed note swept, got", missed)
		t.Fail()
	}
}

func TestRewindToStart(t *testing.T) {
	s, _ := newSweeper(false)
	chart := testChart(t)

	s.Sweep(chart, 10*time.Second)
	chart.Reset()

	s.Rewind(chart, 0)
	if missed := s.Sweep(chart, 10*time.Second); 4 != len(missed) {
		t.Log("expected every note swept after a rewind, got", missed)
		t.Fail()
	}
}

package score

import (
	"testing"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// score after n consecutive perfects, streak bonus included
var comboScoreTests = map[int]int{
	1:  2,
	9:  18,
	10: 20,
	11: 23,
	21: 54,
}

func TestComboBonus(t *testing.T) {
	for presses, expected := range comboScoreTests {
		s := NewDefaultScorer(DefaultRules(), "")
		for i := 0; i < presses; i++ {
			s.ApplyJudgement(game.Perfect)
		}
		st := s.State()
		if st.Score != expected || st.Combo != presses {
			t.Log(presses, "perfects: expected score", expected, "got", st.Score, "combo", st.Combo)
			t.Fail()
		}
	}
}

func TestHealthClampsScoreDoesNot(t *testing.T) {
	s := NewDefaultScorer(DefaultRules(), "")
	for i := 0; i < 40; i++ {
		s.ApplyJudgement(game.Perfect)
	}
	st := s.State()
	if st.Health != 100 {
		t.Log("expected health capped at 100, got", st.Health)
		t.Fail()
	}
	if st.Score != 140 || st.MaxCombo != 40 {
		t.Log("expected score 140 max combo 40, got", st.Score, st.MaxCombo)
		t.Fail()
	}
}

// The streak bonus never pays out on the call that breaks the streak.
func TestMissResetsCombo(t *testing.T) {
	s := NewDefaultScorer(DefaultRules(), "")
	for i := 0; i < 15; i++ {
		s.ApplyJudgement(game.Perfect)
	}
	if st := s.State(); st.Score != 35 || st.Combo != 15 {
		t.Fatal("expected score 35 combo 15, got", st.Score, st.Combo)
	}

	s.ApplyJudgement(game.Miss)
	st := s.State()
	if st.Combo != 0 || st.MaxCombo != 15 {
		t.Log("expected combo reset with max 15, got", st.Combo, st.MaxCombo)
		t.Fail()
	}
	if st.Score != 30 || st.Health != 80 {
		t.Log("expected a plain -5, got score", st.Score, "health", st.Health)
		t.Fail()
	}
	if st.MissCount != 1 {
		t.Log("expected one miss, got", st.MissCount)
		t.Fail()
	}
}

func TestGameOverFiresOnce(t *testing.T) {
	overs := 0
	s := NewDefaultScorer(DefaultRules(), "")
	s.OnGameOver = func() { overs++ }

	for i := 0; i < 12; i++ {
		s.ApplyJudgement(game.Miss)
	}
	st := s.State()
	if !st.Over || overs != 1 {
		t.Log("expected one game over, got", overs)
		t.Fail()
	}
	if st.MissCount != 10 || st.Health != 0 || st.Score != -50 {
		t.Log("expected the floor to freeze the state, got", st.MissCount, st.Health, st.Score)
		t.Fail()
	}

	s.CompleteSong()
	if s.State().Completed {
		t.Log("expected no completion after a game over")
		t.Fail()
	}
}

func TestNoDeath(t *testing.T) {
	rules := DefaultRules()
	rules.NoDeath = true
	overs := 0
	s := NewDefaultScorer(rules, "")
	s.OnGameOver = func() { overs++ }

	for i := 0; i < 20; i++ {
		s.ApplyJudgement(game.Miss)
	}
	st := s.State()
	if st.Over || overs != 0 {
		t.Log("expected no game over in no-death mode")
		t.Fail()
	}
	if st.MissCount != 20 || st.Health != 0 || st.Score != -100 {
		t.Log("expected play to continue at the floor, got", st.MissCount, st.Health, st.Score)
		t.Fail()
	}
}

func TestCompleteSongIdempotent(t *testing.T) {
	dones := 0
	s := NewDefaultScorer(DefaultRules(), "")
	s.OnSongComplete = func() { dones++ }

	s.CompleteSong()
	s.CompleteSong()
	if dones != 1 || !s.State().Completed {
		t.Log("expected exactly one completion, got", dones)
		t.Fail()
	}

	s.ApplyJudgement(game.Perfect)
	if s.State().PerfectCount != 0 {
		t.Log("expected judgements frozen after completion")
		t.Fail()
	}
}

func TestApplyHitStats(t *testing.T) {
	s := NewDefaultScorer(DefaultRules(), "")

	early := &game.Note{Time: 510 * time.Millisecond, Midi: 60}
	early.Judge(game.Perfect, 500*time.Millisecond)
	s.ApplyHit(early)
	st := s.State()
	if st.Mean != 10*time.Millisecond || st.Stdev != 0 {
		t.Log("expected mean 10ms stdev 0, got", st.Mean, st.Stdev)
		t.Fail()
	}

	late := &game.Note{Time: time.Second, Midi: 62}
	late.Judge(game.Good, 1010*time.Millisecond)
	s.ApplyHit(late)
	st = s.State()
	if st.Mean != 0 || st.TotalAbsError != 20*time.Millisecond {
		t.Log("expected mean 0 total 20ms, got", st.Mean, st.TotalAbsError)
		t.Fail()
	}
	if st.Stdev != 14142136*time.Nanosecond {
		t.Log("expected stdev 10ms*sqrt(2), got", st.Stdev)
		t.Fail()
	}
	if st.PerfectCount != 1 || st.GoodCount != 1 || st.Combo != 2 {
		t.Log("expected both hits scored, got", st.PerfectCount, st.GoodCount, st.Combo)
		t.Fail()
	}
}

func TestReset(t *testing.T) {
	s := NewDefaultScorer(DefaultRules(), "")
	n := &game.Note{Time: 510 * time.Millisecond, Midi: 60}
	n.Judge(game.Perfect, 500*time.Millisecond)
	s.ApplyHit(n)
	s.ApplyJudgement(game.Miss)

	s.Reset()
	if st := s.State(); st != (State{Health: 50}) {
		t.Log("expected a fresh state, got", st)
		t.Fail()
	}
}

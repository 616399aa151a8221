package score

import (
	"database/sql"
	"math"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// DefaultScorer keeps the live performance state and persists finished
// runs to sqlite. It is only ever touched from the session tick loop,
// so it carries no locks.
type DefaultScorer struct {
	Rules Rules

	// Terminal hooks, fired exactly once each. Either may be nil.
	OnGameOver     func()
	OnSongComplete func()

	state State
	db    *sql.DB
	path  string

	// signed error accumulators, nanoseconds
	hits  float64
	sum   float64
	sumSq float64
}

func NewDefaultScorer(rules Rules, path string) *DefaultScorer {
	return &DefaultScorer{
		Rules: rules,
		path:  path,
		state: State{Health: rules.StartHealth},
	}
}

func (s *DefaultScorer) State() State {
	return s.state
}

// Reset rewinds the performance to its starting state for a restart.
func (s *DefaultScorer) Reset() {
	s.state = State{Health: s.Rules.StartHealth}
	s.hits = 0
	s.sum = 0
	s.sumSq = 0
}

// ApplyJudgement folds one judgement into the state. Misses record the
// combo high-water mark before resetting; the streak bonus only pays
// out on calls that keep the combo alive.
func (s *DefaultScorer) ApplyJudgement(j game.Judgement) {
	if s.state.Terminal() {
		return
	}

	energy := 0
	reset := false
	switch j {
	case game.Perfect:
		s.state.PerfectCount++
		s.state.Combo++
		energy = s.Rules.PerfectEnergy
	case game.Good:
		s.state.GoodCount++
		s.state.Combo++
		energy = s.Rules.GoodEnergy
	case game.Miss:
		s.state.MissCount++
		energy = s.Rules.MissEnergy
		if s.state.Combo > s.state.MaxCombo {
			s.state.MaxCombo = s.state.Combo
		}
		s.state.Combo = 0
		reset = true
	default:
		return
	}

	bonus := 0
	if !reset && s.state.Combo >= 10 {
		bonus = (s.state.Combo - 1) / 10
	}

	s.state.Score += energy + bonus
	s.state.Health += energy + bonus
	if s.state.Health > s.Rules.MaxHealth {
		s.state.Health = s.Rules.MaxHealth
	}
	if s.state.Health < s.Rules.MinHealth {
		s.state.Health = s.Rules.MinHealth
	}
	if s.state.Combo > s.state.MaxCombo {
		s.state.MaxCombo = s.state.Combo
	}

	if s.state.Health <= s.Rules.MinHealth && !s.Rules.NoDeath {
		s.state.Over = true
		if nil != s.OnGameOver {
			s.OnGameOver()
		}
	}
}

// ApplyHit records the timing error of a judged hit, then scores it.
func (s *DefaultScorer) ApplyHit(n *game.Note) {
	if s.state.Terminal() {
		return
	}

	d := n.Time - n.HitTime // positive means the press was early
	ad := d
	if ad < 0 {
		ad = -ad
	}
	s.state.TotalAbsError += ad
	s.hits++
	s.sum += float64(d)
	s.sumSq += float64(d) * float64(d)

	mean := s.sum / s.hits
	s.state.Mean = time.Duration(math.Round(mean))
	if s.hits > 1 {
		variance := (s.sumSq - s.hits*mean*mean) / (s.hits - 1)
		if variance < 0 {
			variance = 0
		}
		s.state.Stdev = time.Duration(math.Round(math.Sqrt(variance)))
	}

	s.ApplyJudgement(n.Judgement)
}

// CompleteSong fires the song-finished terminal event. It never fires
// after a game over; the first terminal state wins.
func (s *DefaultScorer) CompleteSong() {
	if s.state.Terminal() {
		return
	}
	s.state.Completed = true
	if nil != s.OnSongComplete {
		s.OnSongComplete()
	}
}

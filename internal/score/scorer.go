package score

import (
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

type Scorer interface {
	Init() error
	Deinit()

	// ApplyHit scores a note just judged Perfect or Good and folds its
	// timing error into the session statistics.
	ApplyHit(n *game.Note)

	// ApplyJudgement applies one judgement's energy, combo and counts.
	// A no-op once either terminal state is reached.
	ApplyJudgement(j game.Judgement)

	// CompleteSong marks the performance finished because playback
	// ended naturally. Idempotent, and never fires after a game over.
	CompleteSong()

	State() State
	Reset()

	// Save the state of this performance
	Save(chart *game.Chart, inputs []game.KeyPress, rate float64)

	// Load up previous performances of the chart
	Load(chart *game.Chart) []History
}

// Rules are the energy and health constants for one session.
type Rules struct {
	PerfectEnergy int
	GoodEnergy    int
	MissEnergy    int
	MinHealth     int
	MaxHealth     int
	StartHealth   int
	NoDeath       bool
}

func DefaultRules() Rules {
	return Rules{
		PerfectEnergy: 2,
		GoodEnergy:    0,
		MissEnergy:    -5,
		MinHealth:     0,
		MaxHealth:     100,
		StartHealth:   50,
	}
}

// State is a snapshot of one performance. Score is unclamped and may go
// negative; Health never leaves [MinHealth, MaxHealth].
type State struct {
	Health   int
	Combo    int
	MaxCombo int
	Score    int

	PerfectCount int
	GoodCount    int
	MissCount    int

	// Timing statistics over hits. Errors are signed, positive early.
	TotalAbsError time.Duration
	Mean          time.Duration
	Stdev         time.Duration

	Over      bool // health hit the floor
	Completed bool // playback ended naturally
}

// Terminal reports whether the performance has reached a final state.
func (s State) Terminal() bool {
	return s.Over || s.Completed
}

// History is one stored performance of a chart.
type History struct {
	Sum       string
	Rate      float64
	Score     int
	MaxCombo  int
	Perfect   int
	Good      int
	Miss      int
	Health    int
	Completed bool
	Inputs    []game.KeyPress
}

package game

// Judgement is the outcome recorded on a note. The zero value is Pending.
type Judgement uint8

const (
	Pending Judgement = iota
	Perfect
	Good
	Miss
)

func (j Judgement) String() string {
	switch j {
	case Perfect:
		return "Perfect"
	case Good:
		return "Good"
	case Miss:
		return "Miss"
	}
	return "Pending"
}

// Judged reports whether the note has left the Pending state.
func (j Judgement) Judged() bool {
	return Pending != j
}

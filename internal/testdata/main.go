package testdata

import (
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// NoteMap is a small note map in the JSON export format, for tests
// that load a chart from disk.
var NoteMap = []byte(`{
	"header": {
		"name": "Practice Chart",
		"ppq": 480,
		"tempos": [{"bpm": 120, "ticks": 0}],
		"timeSignatures": [{"ticks": 0, "timeSignature": [4, 4]}]
	},
	"tracks": [
		{
			"name": "lead",
			"notes": [
				{"time": 0.5, "duration": 0.25, "midi": 60, "name": "C4"},
				{"time": 1.0, "duration": 0.25, "midi": 61, "name": "Db4"},
				{"time": 1.5, "duration": 0.25, "midi": 62, "name": "D4"},
				{"time": 2.0, "duration": 0.25, "midi": 73, "name": "Db5"},
				{"time": 2.5, "duration": 0.25, "midi": 64, "name": "E4"},
				{"time": 3.0, "duration": 0.25, "midi": 60, "name": "C4"}
			]
		}
	]
}`)

// GetChart returns the chart described by NoteMap, ready to play.
func GetChart() (*game.Chart, error) {
	notes := []*game.Note{
		{Time: 500 * time.Millisecond, Duration: 250 * time.Millisecond, Midi: 60, Name: "C4"},
		{Time: time.Second, Duration: 250 * time.Millisecond, Midi: 61, Name: "Db4"},
		{Time: 1500 * time.Millisecond, Duration: 250 * time.Millisecond, Midi: 62, Name: "D4"},
		{Time: 2 * time.Second, Duration: 250 * time.Millisecond, Midi: 73, Name: "Db5"},
		{Time: 2500 * time.Millisecond, Duration: 250 * time.Millisecond, Midi: 64, Name: "E4"},
		{Time: 3 * time.Second, Duration: 250 * time.Millisecond, Midi: 60, Name: "C4"},
	}
	return game.NewChart("Practice Chart", notes)
}

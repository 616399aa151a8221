package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

var (
	ErrNoTracks = errors.New("note map has no tracks")
	ErrBadNote  = errors.New("note outside the MIDI range")
)

// DefaultParser reads the JSON note-map format:
//
//	{ "header": {...}, "tracks": [ { "notes": [
//	    { "time": 1.5, "duration": 0.5, "midi": 61, "name": "C#4" } ] } ] }
//
// Only tracks[0] is played. Times are seconds relative to song start.
type DefaultParser struct{}

type noteMap struct {
	Header mapHeader  `json:"header"`
	Tracks []mapTrack `json:"tracks"`
}

type mapHeader struct {
	Name           string             `json:"name"`
	PPQ            int                `json:"ppq"`
	Tempos         []mapTempo         `json:"tempos"`
	TimeSignatures []mapTimeSignature `json:"timeSignatures"`
}

type mapTempo struct {
	BPM   float64 `json:"bpm"`
	Ticks int64   `json:"ticks"`
}

type mapTimeSignature struct {
	Ticks         int64 `json:"ticks"`
	TimeSignature []int `json:"timeSignature"`
}

type mapTrack struct {
	Name  string    `json:"name"`
	Notes []mapNote `json:"notes"`
}

type mapNote struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	Midi     int     `json:"midi"`
	Name     string  `json:"name"`
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read note map: %w", err)
	}
	chart, err := parse(data)
	if nil != err {
		return nil, fmt.Errorf("unable to parse note map %v: %w", file, err)
	}
	if "" == chart.Name {
		chart.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return chart, nil
}

func parse(data []byte) (*game.Chart, error) {
	var m noteMap
	if err := json.Unmarshal(data, &m); nil != err {
		return nil, err
	}
	if 0 == len(m.Tracks) {
		return nil, ErrNoTracks
	}

	track := m.Tracks[0]
	notes := make([]*game.Note, 0, len(track.Notes))
	for i, mn := range track.Notes {
		n, err := toNote(mn)
		if nil != err {
			return nil, fmt.Errorf("note %v: %w", i, err)
		}
		notes = append(notes, n)
	}

	name := m.Header.Name
	if "" == name {
		name = track.Name
	}
	chart, err := game.NewChart(name, notes)
	if nil != err {
		return nil, err
	}
	chart.Measures = beatGuides(m.Header, chart.EndTime())
	return chart, nil
}

func toNote(mn mapNote) (*game.Note, error) {
	if mn.Midi < 0 || mn.Midi > 127 {
		return nil, fmt.Errorf("%w: midi %v", ErrBadNote, mn.Midi)
	}
	if mn.Time < 0 {
		return nil, fmt.Errorf("%w: negative time %v", ErrBadNote, mn.Time)
	}
	if mn.Duration < 0 {
		return nil, fmt.Errorf("%w: negative duration %v", ErrBadNote, mn.Duration)
	}
	name := mn.Name
	if "" == name {
		name = game.NoteName(uint8(mn.Midi))
	}
	return &game.Note{
		Time:     seconds(mn.Time),
		Duration: seconds(mn.Duration),
		Midi:     uint8(mn.Midi),
		Name:     name,
	}, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// beatGuides lays a beat grid over the song from the header's tempo map
// and first time signature, for the staff's measure lines. A malformed
// header degrades to no guides rather than a load error.
func beatGuides(h mapHeader, end time.Duration) []*game.Measure {
	num, den := 4, 4
	if len(h.TimeSignatures) > 0 && len(h.TimeSignatures[0].TimeSignature) >= 2 {
		ts := h.TimeSignatures[0].TimeSignature
		if ts[0] > 0 && ts[1] > 0 {
			num, den = ts[0], ts[1]
		}
	}
	return beatGrid(h.PPQ, h.Tempos, num, den, end)
}

func beatGrid(ppq int, tempos []mapTempo, num, den int, end time.Duration) []*game.Measure {
	if ppq <= 0 {
		ppq = 480
	}
	if 0 == len(tempos) {
		tempos = []mapTempo{{BPM: 120, Ticks: 0}}
	}

	// One beat is 4/den quarter notes.
	ticksPerBeat := int64(ppq) * 4 / int64(den)
	if ticksPerBeat <= 0 {
		return nil
	}

	guides := []*game.Measure{}
	beat := 0
	for tick := int64(0); ; tick += ticksPerBeat {
		at := tickTime(tempos, ppq, tick)
		if at > end+time.Second {
			break
		}
		guides = append(guides, &game.Measure{
			Time: at,
			Bar:  0 == beat%num,
		})
		beat++
		if len(guides) > 4096 {
			break
		}
	}
	return guides
}

// tickTime converts an absolute tick to song time across tempo changes.
func tickTime(tempos []mapTempo, ppq int, tick int64) time.Duration {
	elapsed := 0.0
	prevTick := int64(0)
	bpm := tempos[0].BPM
	if bpm <= 0 {
		bpm = 120
	}
	for _, t := range tempos {
		if t.Ticks >= tick {
			break
		}
		if t.Ticks > prevTick {
			elapsed += float64(t.Ticks-prevTick) * 60.0 / (bpm * float64(ppq))
			prevTick = t.Ticks
		}
		if t.BPM > 0 {
			bpm = t.BPM
		}
	}
	elapsed += float64(tick-prevTick) * 60.0 / (bpm * float64(ppq))
	return seconds(elapsed)
}

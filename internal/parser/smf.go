package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// ErrTimeFormat is returned for midi files without metric timing.
var ErrTimeFormat = errors.New("midi file does not use metric time")

// SMFParser reads a standard midi file directly, for songs that were
// never exported to the JSON note map format. The first track holding
// note events becomes the chart; later tracks are backing parts.
type SMFParser struct{}

func (p *SMFParser) Parse(file string) (*game.Chart, error) {
	s, err := smf.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read midi file: %w", err)
	}

	chart, err := fromSMF(s)
	if nil != err {
		return nil, fmt.Errorf("unable to parse midi file %v: %w", file, err)
	}

	if "" == chart.Name {
		chart.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return chart, nil
}

func fromSMF(s *smf.SMF) (*game.Chart, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrTimeFormat
	}
	ppq := int(mt.Resolution())

	tempos, num, den := metaMaps(s)
	for _, track := range s.Tracks {
		name, notes := trackNotes(track, tempos, ppq)
		if 0 == len(notes) {
			continue
		}
		chart, err := game.NewChart(name, notes)
		if nil != err {
			return nil, err
		}
		chart.Measures = beatGrid(ppq, tempos, num, den, chart.EndTime())
		return chart, nil
	}
	return nil, game.ErrNoNotes
}

// metaMaps collects the tempo map and the first time signature across
// every track. Format 1 files keep these on track 0, away from the
// notes. Without a tick 0 tempo the midi default of 120 applies.
func metaMaps(s *smf.SMF) (tempos []mapTempo, num, den int) {
	num, den = 4, 4
	sigSeen := false
	for _, track := range s.Tracks {
		tick := int64(0)
		for _, ev := range track {
			tick += int64(ev.Delta)

			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				tempos = append(tempos, mapTempo{BPM: bpm, Ticks: tick})
				continue
			}

			var n, d uint8
			if !sigSeen && ev.Message.GetMetaMeter(&n, &d) {
				if n > 0 && d > 0 {
					num, den = int(n), int(d)
				}
				sigSeen = true
			}
		}
	}

	sort.SliceStable(tempos, func(i, j int) bool { return tempos[i].Ticks < tempos[j].Ticks })
	if 0 == len(tempos) || tempos[0].Ticks > 0 {
		tempos = append([]mapTempo{{BPM: 120, Ticks: 0}}, tempos...)
	}
	return tempos, num, den
}

// trackNotes pairs note on and off events into timed notes. Offs close
// the oldest open note of the same key, and a missing off leaves a
// zero duration rather than dropping the note.
func trackNotes(track smf.Track, tempos []mapTempo, ppq int) (string, []*game.Note) {
	var name string
	var notes []*game.Note
	open := map[uint8][]*game.Note{}

	tick := int64(0)
	for _, ev := range track {
		tick += int64(ev.Delta)

		var text string
		if ev.Message.GetMetaTrackName(&text) {
			name = text
			continue
		}

		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteStart(&ch, &key, &vel):
			n := &game.Note{
				Time: tickTime(tempos, ppq, tick),
				Midi: key,
				Name: game.NoteName(key),
			}
			notes = append(notes, n)
			open[key] = append(open[key], n)
		case ev.Message.GetNoteEnd(&ch, &key):
			started := open[key]
			if 0 == len(started) {
				continue
			}
			n := started[0]
			open[key] = started[1:]
			if d := tickTime(tempos, ppq, tick) - n.Time; d > 0 {
				n.Duration = d
			}
		}
	}
	return name, notes
}

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/audio"
	"github.com/JotaGreen/keytap-sub001/internal/config"
	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/input"
	"github.com/JotaGreen/keytap-sub001/internal/judge"
	"github.com/JotaGreen/keytap-sub001/internal/parser"
	"github.com/JotaGreen/keytap-sub001/internal/render"
	"github.com/JotaGreen/keytap-sub001/internal/score"
	"github.com/JotaGreen/keytap-sub001/internal/session"
	"github.com/JotaGreen/keytap-sub001/internal/theme"
	"github.com/JotaGreen/keytap-sub001/internal/transport"
)

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func findSong(dir string) (audioFile, mapFile string, err error) {
	var mp3File, oggFile string
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3":
			mp3File = p
		case ".ogg":
			oggFile = p
		case ".json", ".mid", ".midi":
			mapFile = p
		}
		return nil
	}); nil != err {
		return "", "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if "" == mapFile {
		return "", "", errors.New("unable to find a note map in given directory")
	}
	audioFile = mp3File
	if "" != oggFile {
		audioFile = oggFile
	}
	return audioFile, mapFile, nil
}

// shift applies the global calibration offset to the whole map.
func shift(chart *game.Chart, by time.Duration) {
	if 0 == by {
		return
	}
	for _, n := range chart.Notes {
		n.Time += by
	}
	for _, m := range chart.Measures {
		m.Time += by
	}
}

func run() error {
	windows, err := config.Windows()
	if nil != err {
		return err
	}

	audioFile, mapFile, err := findSong(*config.Directory)
	if nil != err {
		return err
	}

	psr, ok := parser.ForFile(mapFile)
	if !ok {
		return fmt.Errorf("unsupported note map format: %v", path.Ext(mapFile))
	}
	chart, err := psr.Parse(mapFile)
	if nil != err {
		return err
	}
	shift(chart, *config.Offset)

	var engine audio.Engine = &audio.DefaultEngine{}
	if "" == audioFile {
		log.Println("no song audio found, playing silent")
		engine = audio.NewMonotonic()
	} else if err := engine.Load(audioFile); nil != err {
		if !errors.Is(err, audio.ErrUnavailable) {
			return err
		}
		log.Println("audio unavailable, playing silent:", err)
		engine = audio.NewMonotonic()
	}
	defer func() {
		if err := engine.Close(); nil != err {
			log.Println("unable to close audio:", err)
		}
	}()

	scorer := score.NewDefaultScorer(config.Rules(), *config.DB)
	if err := scorer.Init(); nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}
	defer scorer.Deinit()
	history := scorer.Load(chart)

	inputs, err := play(chart, engine, scorer, windows)
	if nil != err {
		return err
	}

	st := scorer.State()
	if 0 != len(inputs) || st.Terminal() {
		scorer.Save(chart, inputs, *config.Rate)
	}
	summarize(chart, st, history)
	return nil
}

// play owns the raw-terminal phase. By the time it returns the
// terminal, keyboard and audio are back in the caller's hands.
func play(chart *game.Chart, engine audio.Engine, scorer score.Scorer, windows game.Windows) ([]game.KeyPress, error) {
	keys, err := input.NewKeyboardSource(*config.Keys)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	sources := []input.Source{keys}
	if *config.MIDI {
		m, err := input.NewMIDISource(*config.MIDIPort)
		if nil != err {
			log.Println("unable to open MIDI input:", err)
		} else {
			sources = append(sources, m)
		}
	}
	defer func() {
		for _, src := range sources {
			if err := src.Close(); nil != err {
				log.Println("unable to close input:", err)
			}
		}
	}()

	var r render.Renderer = &render.DefaultRenderer{}
	if err := r.Init(); nil != err {
		return nil, fmt.Errorf("unable to take over terminal: %w", err)
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal:", err)
		}
	}()

	cols, rows, err := r.Size()
	if nil != err {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}

	tr := transport.NewDefaultTransport(engine, *config.Rate)
	wait := judge.NewWaitMode(tr)

	s := &session.Session{
		Chart:       chart,
		Engine:      engine,
		Transport:   tr,
		Judge:       &judge.DefaultJudge{Windows: windows, Wait: wait},
		Sweeper:     &judge.Sweeper{Windows: windows, Wait: wait, WaitOnMiss: *config.Wait},
		Wait:        wait,
		Scorer:      scorer,
		Renderer:    r,
		Staff:       render.NewStaff(theme.NewDefaultTheme(), chart, *config.ScrollSpeed, cols, rows),
		Sources:     sources,
		Delay:       *config.Delay,
		FramePeriod: *config.FramePeriod,
		SeekStep:    *config.SeekStep,
	}
	if err := s.Run(); nil != err {
		return nil, err
	}
	return s.Inputs(), nil
}

func summarize(chart *game.Chart, st score.State, history []score.History) {
	outcome := "unfinished"
	switch {
	case st.Over:
		outcome = "game over"
	case st.Completed:
		outcome = "complete"
	}

	fmt.Printf("\n%v\n", chart.Name)
	fmt.Printf("%12v:  %v\n", "Result", outcome)
	fmt.Printf("%12v:  %6v\n", "Score", st.Score)
	fmt.Printf("%12v:  %6v\n", "Max Combo", st.MaxCombo)
	fmt.Printf("%12v:  %6v\n", "Perfect", st.PerfectCount)
	fmt.Printf("%12v:  %6v\n", "Good", st.GoodCount)
	fmt.Printf("%12v:  %6v\n", "Miss", st.MissCount)
	if st.PerfectCount+st.GoodCount > 0 {
		fmt.Printf("%12v:  %9v\n", "Mean", st.Mean.Truncate(time.Microsecond))
		fmt.Printf("%12v:  %9v\n", "Stdev", st.Stdev.Truncate(time.Microsecond))
	}

	var best *score.History
	for i, h := range history {
		if nil == best || h.Score > best.Score {
			best = &history[i]
		}
	}
	if nil != best {
		fmt.Printf("%12v:  %6v (combo %v)\n", "Best", best.Score, best.MaxCombo)
	}
}

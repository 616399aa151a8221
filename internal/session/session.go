package session

import (
	"fmt"
	"log"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/audio"
	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/input"
	"github.com/JotaGreen/keytap-sub001/internal/judge"
	"github.com/JotaGreen/keytap-sub001/internal/render"
	"github.com/JotaGreen/keytap-sub001/internal/score"
	"github.com/JotaGreen/keytap-sub001/internal/transport"
)

const decorationFrames = 90

// Session owns every piece of mutable play state and drives it from a
// single cooperative tick loop. Nothing here is locked: sources hand
// events over buffered channels and the loop drains them on its own
// schedule, so all mutation happens on one logical thread.
type Session struct {
	Chart     *game.Chart
	Engine    audio.Engine
	Transport transport.Transport
	Judge     judge.Judge
	Sweeper   *judge.Sweeper
	Wait      *judge.WaitMode
	Scorer    score.Scorer
	Renderer  render.Renderer
	Staff     *render.Staff
	Sources   []input.Source

	Offset      time.Duration // song time playback starts from
	Delay       time.Duration // lead-in before the song reaches Offset
	FramePeriod time.Duration
	SeekStep    time.Duration
	EndGrace    time.Duration // silence after the last note before completion

	rows   uint16
	quit   bool
	inputs []game.KeyPress
}

// Inputs returns every press of the current performance, the material
// a replay is rebuilt from. Presses made during a wait hold are not
// part of the performance and are not recorded.
func (s *Session) Inputs() []game.KeyPress {
	return s.inputs
}

// Run plays the chart until the player quits or a terminal state is
// reached and declined a restart. The audio engine is silent by the
// time it returns.
func (s *Session) Run() error {
	if 0 == s.FramePeriod {
		s.FramePeriod = 16 * time.Millisecond
	}
	if 0 == s.SeekStep {
		s.SeekStep = time.Second
	}
	if 0 == s.EndGrace {
		s.EndGrace = 5 * time.Second
	}
	if _, rows, err := s.Renderer.Size(); nil == err {
		s.rows = rows
	}

	s.Sweeper.Rewind(s.Chart, s.Offset)
	if err := s.Transport.Play(s.Offset, s.Delay); nil != err {
		return fmt.Errorf("unable to start playback: %w", err)
	}

	for {
		now := time.Now()
		deadline := now.Add(s.FramePeriod)

		cont := s.Tick()
		s.Renderer.Flush()

		if !cont {
			if s.quit {
				break
			}
			if !s.awaitRestart() {
				break
			}
			s.reset()
		}
		time.Sleep(time.Until(deadline))
	}

	s.Engine.Stop()
	return nil
}

// Tick advances the session one frame. It reads song time exactly once
// so every judgement and the redraw see the same now; a wait hold keeps
// the transport paused, which freezes that value by itself. It reports
// false when no further ticks should be scheduled.
func (s *Session) Tick() bool {
	if s.Scorer.State().Terminal() {
		return false
	}

	now := s.Transport.Now()

	seeked := false
	for _, ev := range s.drain() {
		switch ev.Kind {
		case input.Quit:
			s.quit = true
			return false
		case input.Restart:
			s.reset()
			return true
		case input.TogglePause:
			s.togglePause()
		case input.SeekBack:
			if s.seek(-s.SeekStep) {
				seeked = true
				now = s.Transport.Now()
			}
		case input.SeekForward:
			if s.seek(s.SeekStep) {
				seeked = true
				now = s.Transport.Now()
			}
		case input.Note:
			s.applyPress(game.KeyPress{Class: ev.Class, Time: now})
		}
	}

	// a seek redraws immediately and never sweeps, so scrubbing past
	// notes can not miss them
	if !seeked {
		for _, n := range s.Sweeper.Sweep(s.Chart, now) {
			s.Scorer.ApplyJudgement(game.Miss)
			s.decorate(n)
		}
	}

	if !s.Wait.Active() && (s.Engine.Ended() || now-s.Chart.EndTime() > s.EndGrace) {
		s.Scorer.CompleteSong()
	}

	s.Staff.Draw(s.Renderer, s.Chart, now, s.Scorer.State())
	s.drawStatus()
	return true
}

// drain empties every source's buffer without blocking.
func (s *Session) drain() []input.Event {
	var events []input.Event
	for _, src := range s.Sources {
		for i := 0; i < len(src.Events()); i++ {
			events = append(events, <-src.Events())
		}
	}
	return events
}

func (s *Session) applyPress(press game.KeyPress) {
	if !s.Wait.Active() {
		s.inputs = append(s.inputs, press)
	}
	result, note := s.Judge.Apply(s.Chart, press)
	switch result {
	case judge.Hit:
		s.Scorer.ApplyHit(note)
		s.decorate(note)
	case judge.Resume:
		// the release never scores
	}
}

// togglePause flips user pause. A wait hold already owns the paused
// transport, so the key does nothing until the hold is released.
func (s *Session) togglePause() {
	if s.Wait.Active() {
		return
	}
	if s.Transport.Playing() {
		s.Transport.Pause()
	} else {
		s.Transport.Resume()
	}
}

// seek scrubs the frozen offset. Only permitted while paused with the
// wait hold idle; the sweeper cursor follows so skipped notes are
// skipped, not missed.
func (s *Session) seek(delta time.Duration) bool {
	if s.Transport.Playing() || s.Wait.Active() {
		return false
	}
	target := s.Transport.Now() + delta
	if target < 0 {
		target = 0
	}
	if err := s.Transport.Seek(target); nil != err {
		return false
	}
	s.Sweeper.Rewind(s.Chart, target)
	return true
}

func (s *Session) decorate(n *game.Note) {
	s.Renderer.AddDecoration(s.Staff.JudgeColumn+2, s.Staff.Row(n.Midi),
		s.Staff.Theme.RenderJudgement(n.Judgement), decorationFrames)
}

func (s *Session) drawStatus() {
	status := ""
	switch {
	case s.Wait.Active():
		status = fmt.Sprintf("waiting for %v", s.Wait.Note().PitchClass())
	case !s.Transport.Playing():
		status = "paused - space resumes, arrows seek"
	}
	s.Renderer.Fill(s.statusRow(), 2, fmt.Sprintf("%-50v", status))
}

func (s *Session) statusRow() uint16 {
	if s.rows < 2 {
		return 1
	}
	return s.rows - 1
}

// awaitRestart holds the final frame of a finished run until the
// player picks restart or quit. The engine is silenced immediately.
func (s *Session) awaitRestart() bool {
	message := "song complete"
	if s.Scorer.State().Over {
		message = "game over"
	}
	s.Renderer.Fill(s.statusRow(), 2, fmt.Sprintf("%-50v", message+" - r restarts, esc quits"))
	s.Renderer.Flush()
	s.Engine.Stop()

	for {
		for _, src := range s.Sources {
			for i := 0; i < len(src.Events()); i++ {
				ev := <-src.Events()
				switch ev.Kind {
				case input.Restart:
					return true
				case input.Quit:
					s.quit = true
					return false
				}
			}
		}
		time.Sleep(s.FramePeriod)
	}
}

// reset rewinds everything for another run of the same chart.
func (s *Session) reset() {
	if s.Wait.Active() {
		s.Wait.Exit()
	}
	s.Chart.Reset()
	s.Scorer.Reset()
	s.inputs = nil
	s.Sweeper.Rewind(s.Chart, s.Offset)
	if err := s.Transport.Play(s.Offset, s.Delay); nil != err {
		log.Println("unable to restart playback", err)
	}
}

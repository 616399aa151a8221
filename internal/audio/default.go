package audio

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

// DefaultEngine plays mp3 and ogg songs through the system speaker.
// The pipeline is lead-in silence, then the seeked song source behind a
// resampler, all wrapped in a pause control and a sample counter.
type DefaultEngine struct {
	streamer  beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	samples   atomic.Int64
	ended     atomic.Bool
}

func (e *DefaultEngine) Load(file string) error {
	f, err := os.Open(file)
	if nil != err {
		return fmt.Errorf("unable to open song: %w", err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(path.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("%w: %v", ErrFormat, path.Ext(file))
	}
	if nil != err {
		f.Close()
		return fmt.Errorf("unable to decode song: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	e.streamer = streamer
	e.format = format
	return nil
}

func (e *DefaultEngine) Start(offset, preDelay time.Duration, rate float64) error {
	if nil == e.streamer {
		return ErrUnavailable
	}

	speaker.Clear()
	if err := e.seek(offset); nil != err {
		return err
	}

	e.ended.Store(false)
	e.resampler = beep.ResampleRatio(4, rate, e.streamer)
	e.ctrl = &beep.Ctrl{Streamer: beep.Seq(
		beep.Silence(e.format.SampleRate.N(preDelay)),
		e.resampler,
		beep.Callback(func() { e.ended.Store(true) }),
	)}
	speaker.Play(&clock{wrapped: e.ctrl, samples: &e.samples})
	return nil
}

func (e *DefaultEngine) Pause() {
	if nil == e.ctrl {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

func (e *DefaultEngine) Resume() {
	if nil == e.ctrl {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
}

func (e *DefaultEngine) Seek(offset time.Duration) error {
	if nil == e.streamer {
		return ErrUnavailable
	}
	speaker.Lock()
	err := e.seek(offset)
	speaker.Unlock()
	return err
}

func (e *DefaultEngine) seek(offset time.Duration) error {
	pos := e.format.SampleRate.N(offset)
	if max := e.streamer.Len() - 1; pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	if err := e.streamer.Seek(pos); nil != err {
		return fmt.Errorf("unable to seek song: %w", err)
	}
	return nil
}

func (e *DefaultEngine) SetRate(rate float64) error {
	if nil == e.resampler {
		return ErrUnavailable
	}
	speaker.Lock()
	e.resampler.SetRatio(rate)
	speaker.Unlock()
	return nil
}

func (e *DefaultEngine) Now() time.Duration {
	if 0 == e.format.SampleRate {
		return 0
	}
	return e.format.SampleRate.D(int(e.samples.Load()))
}

func (e *DefaultEngine) Ended() bool {
	return e.ended.Load()
}

func (e *DefaultEngine) Duration() time.Duration {
	if nil == e.streamer {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

func (e *DefaultEngine) Stop() {
	speaker.Clear()
	e.ctrl = nil
	e.resampler = nil
}

func (e *DefaultEngine) Close() error {
	speaker.Clear()
	if nil == e.streamer {
		return nil
	}
	return e.streamer.Close()
}

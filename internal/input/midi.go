package input

import (
	"fmt"
	"log"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// MIDISource turns note-on messages from a hardware MIDI input into
// pitch-class events, so a real keyboard can drive the trainer.
type MIDISource struct {
	events chan Event
	drv    *rtmididrv.Driver
	in     drivers.In
	stop   func()
}

// NewMIDISource opens the first input whose name contains port,
// case-insensitively. An empty port picks the first real device,
// skipping the ALSA through ports.
func NewMIDISource(port string) (*MIDISource, error) {
	drv, err := rtmididrv.New()
	if nil != err {
		return nil, fmt.Errorf("unable to start midi driver: %w", err)
	}

	ins, err := drv.Ins()
	if nil != err {
		drv.Close()
		return nil, fmt.Errorf("unable to list midi inputs: %w", err)
	}
	in := pickInput(ins, port)
	if nil == in {
		drv.Close()
		return nil, fmt.Errorf("unable to find midi input %q", port)
	}
	if err := in.Open(); nil != err {
		drv.Close()
		return nil, fmt.Errorf("unable to open midi input %q: %w", in.String(), err)
	}

	s := &MIDISource{
		events: make(chan Event, 128),
		drv:    drv,
		in:     in,
	}
	stop, err := midi.ListenTo(in, s.onMessage, midi.HandleError(func(listenErr error) {
		log.Println("midi listener error", listenErr)
	}))
	if nil != err {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("unable to listen to midi input: %w", err)
	}
	s.stop = stop
	return s, nil
}

func pickInput(ins []drivers.In, port string) drivers.In {
	for _, in := range ins {
		name := strings.ToLower(in.String())
		if "" == port {
			if strings.Contains(name, "through") {
				continue
			}
			return in
		}
		if strings.Contains(name, strings.ToLower(port)) {
			return in
		}
	}
	return nil
}

func (s *MIDISource) onMessage(msg midi.Message, _ int32) {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return
	}
	select {
	case s.events <- Event{Kind: Note, Class: game.PitchClassOf(key)}:
	default:
	}
}

func (s *MIDISource) Events() <-chan Event {
	return s.events
}

func (s *MIDISource) Close() error {
	if nil != s.stop {
		s.stop()
	}
	if nil != s.in {
		s.in.Close()
	}
	return s.drv.Close()
}

package input

import (
	"fmt"
	"log"

	"github.com/eiannone/keyboard"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// KeyboardSource maps terminal keys to session events. The layout is
// twelve runes, one per pitch class from C up to B.
type KeyboardSource struct {
	events chan Event
	keys   []rune
}

func NewKeyboardSource(layout string) (*KeyboardSource, error) {
	keyEvents, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}

	s := &KeyboardSource{
		events: make(chan Event, 128),
		keys:   []rune(layout),
	}
	go s.pump(keyEvents)
	return s, nil
}

func (s *KeyboardSource) Events() <-chan Event {
	return s.events
}

func (s *KeyboardSource) Close() error {
	return keyboard.Close()
}

func (s *KeyboardSource) pump(keys <-chan keyboard.KeyEvent) {
	for key := range keys {
		if nil != key.Err {
			log.Println("unable to read keyboard input", key.Err)
			select {
			case s.events <- Event{Kind: Quit}:
			default:
			}
			return
		}
		ev, ok := s.translate(key)
		if !ok {
			continue
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// translate decodes one key event. Layout runes win over control
// runes, so a layout may shadow the restart key.
func (s *KeyboardSource) translate(key keyboard.KeyEvent) (Event, bool) {
	switch key.Key {
	case keyboard.KeyEsc:
		return Event{Kind: Quit}, true
	case keyboard.KeySpace:
		return Event{Kind: TogglePause}, true
	case keyboard.KeyArrowLeft:
		return Event{Kind: SeekBack}, true
	case keyboard.KeyArrowRight:
		return Event{Kind: SeekForward}, true
	}

	for i, r := range s.keys {
		if r == key.Rune {
			return Event{Kind: Note, Class: game.PitchClass(i)}, true
		}
	}
	if 'r' == key.Rune {
		return Event{Kind: Restart}, true
	}
	return Event{}, false
}

package input

import (
	"testing"

	"github.com/eiannone/keyboard"
)

var translateTests = map[keyboard.KeyEvent]Event{
	{Key: keyboard.KeyEsc}:        {Kind: Quit},
	{Key: keyboard.KeySpace}:      {Kind: TogglePause},
	{Key: keyboard.KeyArrowLeft}:  {Kind: SeekBack},
	{Key: keyboard.KeyArrowRight}: {Kind: SeekForward},
	{Rune: 'r'}:                   {Kind: Restart},
	{Rune: 'a'}:                   {Kind: Note, Class: 0},
	{Rune: 'w'}:                   {Kind: Note, Class: 1},
	{Rune: 'd'}:                   {Kind: Note, Class: 4},
	{Rune: 'j'}:                   {Kind: Note, Class: 11},
}

func TestTranslate(t *testing.T) {
	s := &KeyboardSource{keys: []rune("awsedftgyhuj")}
	for key, expected := range translateTests {
		ev, ok := s.translate(key)
		if !ok || ev != expected {
			t.Log(key, "expected", expected, "got", ev, ok)
			t.Fail()
		}
	}
}

func TestTranslateIgnoresUnmapped(t *testing.T) {
	s := &KeyboardSource{keys: []rune("awsedftgyhuj")}
	for _, key := range []keyboard.KeyEvent{{Rune: 'z'}, {Key: keyboard.KeyEnter}} {
		if ev, ok := s.translate(key); ok {
			t.Log(key, "expected no event, got", ev)
			t.Fail()
		}
	}
}

// A layout that claims r keeps it as a note key.
func TestTranslateLayoutShadowsRestart(t *testing.T) {
	s := &KeyboardSource{keys: []rune("qrstuvwxyzab")}
	ev, ok := s.translate(keyboard.KeyEvent{Rune: 'r'})
	if !ok || (Event{Kind: Note, Class: 1}) != ev {
		t.Log("expected a note event, got", ev, ok)
		t.Fail()
	}
}

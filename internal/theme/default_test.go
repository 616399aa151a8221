package theme

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

var noteColorTests = map[uint8]color.RGBA{
	0:   {R: 124, G: 5, B: 0, A: 255},
	24:  {R: 124, G: 5, B: 0, A: 255},
	48:  {R: 188, G: 12, B: 0, A: 255},
	60:  {R: 222, G: 17, B: 0, A: 255},
	61:  {R: 177, G: 98, B: 0, A: 255},
	62:  {R: 149, G: 118, B: 0, A: 255},
	64:  {R: 0, G: 151, B: 68, A: 255},
	67:  {R: 0, G: 139, B: 204, A: 255},
	72:  {R: 255, G: 26, B: 5, A: 255},
	73:  {R: 204, G: 114, B: 0, A: 255},
	108: {R: 255, G: 175, B: 162, A: 255},
	120: {R: 255, G: 175, B: 162, A: 255},
	127: {R: 140, G: 207, B: 255, A: 255},
}

func TestNoteColor(t *testing.T) {
	th := NewDefaultTheme()
	for midi, expected := range noteColorTests {
		c, err := th.NoteColor(midi)
		if nil != err {
			t.Fatal(err)
		}
		if c != expected {
			t.Log("midi", midi, "expected", expected, "got", c)
			t.Fail()
		}
	}
}

func TestNoteColorInvalid(t *testing.T) {
	th := NewDefaultTheme()
	c, err := th.NoteColor(200)
	if !errors.Is(err, ErrInvalidNote) {
		t.Log("expected", ErrInvalidNote, "got", err)
		t.Fail()
	}
	if c != (color.RGBA{A: 255}) {
		t.Log("expected black, got", c)
		t.Fail()
	}
}

// Lightness clamps to the anchors, so notes past either end share the
// anchor color of their pitch class.
func TestNoteColorClamps(t *testing.T) {
	th := NewDefaultTheme()
	low, _ := th.NoteColor(0)
	lowAnchor, _ := th.NoteColor(24)
	if low != lowAnchor {
		t.Log("expected", lowAnchor, "got", low)
		t.Fail()
	}

	high, _ := th.NoteColor(120)
	highAnchor, _ := th.NoteColor(108)
	if high != highAnchor {
		t.Log("expected", highAnchor, "got", high)
		t.Fail()
	}
}

// The hue comes from the pitch class alone. With the lightness ramp
// flattened, two octaves of the same class collapse to one color.
func TestNoteColorOctaveHue(t *testing.T) {
	th := &DefaultTheme{Options: Options{
		MinMidi:      24,
		MaxMidi:      108,
		MinLightness: 0.5,
		MaxLightness: 0.5,
		Saturation:   1.0,
	}}
	c4, err := th.NoteColor(60)
	if nil != err {
		t.Fatal(err)
	}
	c5, err := th.NoteColor(72)
	if nil != err {
		t.Fatal(err)
	}
	if c4 != c5 {
		t.Log("expected one color per pitch class, got", c4, "and", c5)
		t.Fail()
	}
}

func TestRenderNote(t *testing.T) {
	th := NewDefaultTheme()
	out := th.RenderNote(&game.Note{Midi: 60, Name: "C4"})
	if !strings.Contains(out, "\033[38;2;222;17;0m") || !strings.Contains(out, "C4") {
		t.Log("unexpected render:", out)
		t.Fail()
	}
}

func TestRenderJudgement(t *testing.T) {
	th := NewDefaultTheme()
	out := th.RenderJudgement(game.Perfect)
	if !strings.Contains(out, "Perfect") {
		t.Log("unexpected render:", out)
		t.Fail()
	}
}

func BenchmarkNoteColor(b *testing.B) {
	th := NewDefaultTheme()
	var c color.RGBA
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		c, _ = th.NoteColor(uint8(n % 128))
	}

	result = [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

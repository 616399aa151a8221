package theme

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

// ErrInvalidNote is returned for values outside the midi note range.
var ErrInvalidNote = errors.New("not a midi note")

// Options pin the pitch to color mapping. Lightness rises linearly
// with the midi note between the two anchors and clamps outside them.
type Options struct {
	MinMidi      uint8
	MaxMidi      uint8
	MinLightness float64
	MaxLightness float64
	Saturation   float64
}

func DefaultOptions() Options {
	return Options{
		MinMidi:      24,
		MaxMidi:      108,
		MinLightness: 0.275,
		MaxLightness: 0.80,
		Saturation:   1.0,
	}
}

type DefaultTheme struct {
	Options
}

func NewDefaultTheme() *DefaultTheme {
	return &DefaultTheme{Options: DefaultOptions()}
}

// hue in degrees for the twelve pitch classes, C first.
var hues = [12]float64{30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330, 0}

var judgementColors = map[game.Judgement]color.RGBA{
	game.Pending: {R: 106, G: 106, B: 106, A: 255},
	game.Perfect: {R: 236, G: 195, B: 0, A: 255},
	game.Good:    {R: 0, G: 236, B: 128, A: 255},
	game.Miss:    {R: 236, G: 30, B: 0, A: 255},
}

// JudgementColor is the accent color for a judgement flash.
func JudgementColor(j game.Judgement) color.RGBA {
	c, ok := judgementColors[j]
	if !ok {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

// NoteColor maps a midi note to its display color: hue from the pitch
// class, lightness from the octave, converted through okhsl so equal
// pitch classes keep one hue at every brightness. Out of range values
// get black and an error.
func (t *DefaultTheme) NoteColor(midi uint8) (color.RGBA, error) {
	if midi > 127 {
		return color.RGBA{A: 255}, fmt.Errorf("%w: %v", ErrInvalidNote, midi)
	}

	h := hues[midi%12] / 360.0
	r, g, b := okhslToSRGB(h, t.Saturation, t.lightness(midi))
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}, nil
}

func (t *DefaultTheme) lightness(midi uint8) float64 {
	if midi <= t.MinMidi {
		return t.MinLightness
	}
	if midi >= t.MaxMidi {
		return t.MaxLightness
	}
	span := float64(t.MaxMidi - t.MinMidi)
	return t.MinLightness + (t.MaxLightness-t.MinLightness)*float64(midi-t.MinMidi)/span
}

// RenderNote is the note's name in its pitch color.
func (t *DefaultTheme) RenderNote(n *game.Note) string {
	c, _ := t.NoteColor(n.Midi)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, n.Name)
}

// RenderJudgement is the judgement's name in its accent color.
func (t *DefaultTheme) RenderJudgement(j game.Judgement) string {
	c := JudgementColor(j)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, j)
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * math.Min(1, math.Max(0, v))))
}

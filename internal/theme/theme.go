package theme

import (
	"image/color"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

type Theme interface {
	NoteColor(midi uint8) (color.RGBA, error)
	RenderNote(n *game.Note) string
	RenderJudgement(j game.Judgement) string
}

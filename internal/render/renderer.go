package render

import (
	"image/color"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (cols, rows uint16, err error)
	Fill(row, column uint16, message string)
	FillColor(row, column uint16, color color.RGBA, message string)
	AddDecoration(col, row uint16, content string, frames int)

	// Flush ages decorations one frame and writes the buffered frame
	// in a single syscall.
	Flush()
}

package parser

import (
	"path"
	"strings"

	"github.com/JotaGreen/keytap-sub001/internal/game"
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
}

// ForFile picks the parser for a note-map file by extension.
// JSON note maps and standard MIDI files are supported.
func ForFile(file string) (Parser, bool) {
	switch strings.ToLower(path.Ext(file)) {
	case ".json":
		return &DefaultParser{}, true
	case ".mid", ".midi":
		return &SMFParser{}, true
	}
	return nil, false
}

package judge

import (
	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/transport"
)

// WaitMode holds the song on a missed note until its key is played.
// The held note is non-nil exactly while the hold is active.
type WaitMode struct {
	transport transport.Transport
	note      *game.Note
}

func NewWaitMode(t transport.Transport) *WaitMode {
	return &WaitMode{transport: t}
}

func (w *WaitMode) Active() bool {
	return nil != w.note
}

// Note is the held note, nil while idle.
func (w *WaitMode) Note() *game.Note {
	return w.note
}

// Enter freezes the transport on a missed note. Score state is not
// touched. A second entry while holding is ignored.
func (w *WaitMode) Enter(n *game.Note) {
	if nil != w.note || nil == n {
		return
	}
	w.note = n
	w.transport.Pause()
}

// Exit releases the hold, resuming from the exact frozen offset.
func (w *WaitMode) Exit() {
	if nil == w.note {
		return
	}
	w.note = nil
	w.transport.Resume()
}

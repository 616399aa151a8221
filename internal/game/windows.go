package game

import (
	"errors"
	"time"
)

var ErrWindowOrder = errors.New("perfect window larger than good window")

// Windows is the symmetric hit tolerance around a note onset. The struct
// is read and replaced as one value, so the pair is never observed
// half-updated.
type Windows struct {
	Good    time.Duration
	Perfect time.Duration
}

// NewWindows derives the perfect window as half the good window when zero.
func NewWindows(good, perfect time.Duration) (Windows, error) {
	if 0 == perfect {
		perfect = good / 2
	}
	if perfect > good {
		return Windows{}, ErrWindowOrder
	}
	return Windows{Good: good, Perfect: perfect}, nil
}

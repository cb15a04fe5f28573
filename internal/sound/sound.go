// ABOUTME: Sound cues played at interval transitions.
// ABOUTME: Provides a system audio player, a terminal bell, a silent cue and a fallback chain.
package sound

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrNoPlayer is returned when no system audio player is installed.
var ErrNoPlayer = errors.New("no audio player found")

// PlaybackError reports a cue that could not be played.
type PlaybackError struct {
	Name string
	Err  error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("play %q: %v", e.Name, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// Cue plays a named sound without blocking.
type Cue interface {
	Play(name string) error
}

// Nop is a silent cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(string) error { return nil }

// Bell rings the terminal bell on W.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

// NewBell returns a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

// Play writes the BEL control character.
func (b *Bell) Play(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return &PlaybackError{Name: name, Err: err}
	}
	return nil
}

// Chain tries each cue in order and stops at the first that succeeds.
type Chain []Cue

// Play returns nil once any cue plays, otherwise every failure joined.
func (c Chain) Play(name string) error {
	var errs []error
	for _, cue := range c {
		err := cue.Play(name)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return &PlaybackError{Name: name, Err: errors.Join(errs...)}
}

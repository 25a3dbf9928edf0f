// Package tui is the tcell front end: a thin screen wrapper plus the
// windows (story view, menus, inputs) the controller drives. All story
// layout decisions live in internal/layout; this package only paints.
package tui

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// ErrCancelled signals the user backing out of a window or prompt.
var ErrCancelled = errors.New("tui: cancelled")

// KeyKind classifies a key event.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyResize // not a key: the terminal changed size
)

// KeyEvent is one decoded input event.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

// Screen wraps a tcell screen with the small surface the windows need.
type Screen struct {
	tc tcell.Screen
}

// NewScreen allocates and initializes the terminal screen.
func NewScreen() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	return &Screen{tc: tc}, nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.tc.Fini()
}

// Size returns the terminal dimensions. Re-query before every paint;
// the terminal can resize at any time.
func (s *Screen) Size() (width, height int) {
	return s.tc.Size()
}

// Clear erases the whole screen.
func (s *Screen) Clear() {
	s.tc.Clear()
}

// Show flushes pending drawing to the terminal.
func (s *Screen) Show() {
	s.tc.Show()
}

// PollKey blocks for the next key press or resize.
func (s *Screen) PollKey() KeyEvent {
	for {
		switch ev := s.tc.PollEvent().(type) {
		case *tcell.EventResize:
			s.tc.Sync()
			return KeyEvent{Kind: KeyResize}
		case *tcell.EventKey:
			return decodeKey(ev)
		}
	}
}

func decodeKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return KeyEvent{Kind: KeyEnter}
	case tcell.KeyEscape:
		return KeyEvent{Kind: KeyEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Kind: KeyBackspace}
	case tcell.KeyUp:
		return KeyEvent{Kind: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Kind: KeyDown}
	case tcell.KeyLeft:
		return KeyEvent{Kind: KeyLeft}
	case tcell.KeyRight:
		return KeyEvent{Kind: KeyRight}
	case tcell.KeyPgUp:
		return KeyEvent{Kind: KeyPageUp}
	case tcell.KeyPgDn:
		return KeyEvent{Kind: KeyPageDown}
	case tcell.KeyHome:
		return KeyEvent{Kind: KeyHome}
	case tcell.KeyEnd:
		return KeyEvent{Kind: KeyEnd}
	default:
		return KeyEvent{Kind: KeyRune, Rune: ev.Rune()}
	}
}

// setText paints a string starting at (x, y), clipping at the right
// edge, and returns the x position after the last cell written.
func (s *Screen) setText(x, y int, text string, style tcell.Style) int {
	width, _ := s.tc.Size()
	for _, r := range text {
		if x >= width {
			break
		}
		s.tc.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// fillLine paints one full-width line with the style's background.
func (s *Screen) fillLine(y int, style tcell.Style) {
	width, _ := s.tc.Size()
	for x := 0; x < width; x++ {
		s.tc.SetContent(x, y, ' ', nil, style)
	}
}

// Suspend hands the terminal back to another program (the user's
// editor) and blocks in fn until it is done.
func (s *Screen) Suspend(fn func() error) error {
	if err := s.tc.Suspend(); err != nil {
		return err
	}
	defer s.tc.Resume()
	return fn()
}

package tui

import (
	"fmt"

	"github.com/dshills/taleforge/internal/layout"
	"github.com/dshills/taleforge/internal/story"
)

// appTitle decorates every header bar.
const appTitle = "Taleforge"

// textWidth caps the story column so long lines stay readable on wide
// terminals.
const textWidth = 120

// Hint is one footer menu entry.
type Hint struct {
	Key   string
	Label string
}

// StoryView paints a story into the terminal: header bar, the wrapped
// story rows scrolled to keep the focused chunk visible, a status line,
// and the footer key menu.
type StoryView struct {
	screen *Screen
	hints  []Hint
	parser layout.Parser
}

// NewStoryView creates a view with the given footer hints. Diagnostics
// from the layout parser land in warnf.
func NewStoryView(screen *Screen, hints []Hint, warnf func(format string, args ...any)) *StoryView {
	return &StoryView{
		screen: screen,
		hints:  hints,
		parser: layout.Parser{Warnf: warnf},
	}
}

// Draw repaints the whole story window.
func (v *StoryView) Draw(st *story.Story, status string) error {
	width, height := v.screen.Size()
	v.screen.Clear()
	drawHeader(v.screen, st.Title)

	viewHeight := height - 3 // header, status, footer
	if viewHeight > 0 {
		if err := v.drawStory(st, min(width, textWidth), viewHeight); err != nil {
			return err
		}
	}

	drawStatus(v.screen, height-2, status)
	drawHints(v.screen, height-1, v.hints)
	v.screen.Show()
	return nil
}

func (v *StoryView) drawStory(st *story.Story, width, height int) error {
	if len(st.Chunks) == 0 {
		v.screen.setText(0, 1, "No content yet...", styleInstruction)
		return nil
	}

	sections := v.parser.Parse(st.Chunks, st.ResolvedFocus())
	rows, sel, err := layout.Render(sections, width)
	if err != nil {
		return fmt.Errorf("rendering story: %w", err)
	}
	top, err := layout.Locate(len(rows), height, sel, st.IsFirstFocused(), st.IsLastFocused())
	if err != nil {
		return fmt.Errorf("locating focus: %w", err)
	}

	for y := 0; y < height && top+y < len(rows); y++ {
		x := 0
		for _, span := range rows[top+y].Spans {
			x = v.screen.setText(x, 1+y, span.Text, spanStyle(span.Style))
		}
	}
	return nil
}

func drawHeader(s *Screen, title string) {
	s.fillLine(0, styleBar)
	if title != "" {
		title = title + " - " + appTitle
	} else {
		title = appTitle
	}
	s.setText(0, 0, title, styleBarBold)
}

func drawStatus(s *Screen, y int, status string) {
	if y < 1 {
		return
	}
	if status != "" {
		s.setText(1, y, status, styleStatus)
	}
}

func drawHints(s *Screen, y int, hints []Hint) {
	if y < 1 {
		return
	}
	s.fillLine(y, styleBar)
	x := 0
	for _, h := range hints {
		x = s.setText(x, y, "[", styleBar)
		x = s.setText(x, y, h.Key, styleBarBold)
		x = s.setText(x, y, "]", styleBar)
		x = s.setText(x, y, h.Label+" ", styleBar)
	}
}

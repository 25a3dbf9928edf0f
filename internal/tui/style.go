package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/taleforge/internal/layout"
)

// The palette, loosely the original's orange-on-black look.
var (
	styleStory       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleChapter     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Background(tcell.ColorBlack).Bold(true)
	styleInstruction = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleSelected    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleBar         = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorOrange)
	styleBarBold     = styleBar.Bold(true)
	styleStatus      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	styleFocusRow    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// spanStyle maps a layout span style onto the terminal palette.
func spanStyle(s layout.SpanStyle) tcell.Style {
	switch s {
	case layout.StyleChapter:
		return styleChapter
	case layout.StyleInstruction:
		return styleInstruction
	case layout.StyleSelected:
		return styleSelected
	default:
		return styleStory
	}
}

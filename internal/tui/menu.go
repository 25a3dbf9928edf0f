package tui

import "fmt"

// MenuItem is one selectable menu entry.
type MenuItem struct {
	Key   rune
	Label string
}

// Menu is a full-screen key-driven menu. The quit key (q) cancels.
type Menu struct {
	screen *Screen
	title  string
	items  []MenuItem
}

// NewMenu creates a menu under the given title.
func NewMenu(screen *Screen, title string, items []MenuItem) *Menu {
	return &Menu{screen: screen, title: title, items: items}
}

// Run paints the menu and blocks until the user picks an entry.
// Returns ErrCancelled on q or escape.
func (m *Menu) Run() (MenuItem, error) {
	status := ""
	for {
		m.draw(status)
		ev := m.screen.PollKey()
		switch ev.Kind {
		case KeyResize:
			continue
		case KeyEscape:
			return MenuItem{}, ErrCancelled
		case KeyRune:
			if ev.Rune == 'q' {
				return MenuItem{}, ErrCancelled
			}
			for _, item := range m.items {
				if item.Key == ev.Rune {
					return item, nil
				}
			}
			status = fmt.Sprintf("You chose badly: %q", ev.Rune)
		}
	}
}

func (m *Menu) draw(status string) {
	m.screen.Clear()
	drawHeader(m.screen, m.title)
	y := 2
	for _, item := range m.items {
		m.screen.setText(2, y, string(item.Key), styleStory.Bold(true))
		m.screen.setText(3, y, " - "+item.Label, styleStory)
		y++
	}
	m.screen.setText(2, y, "q - Quit", styleStory)
	if status != "" {
		m.screen.setText(2, y+2, status, styleStatus)
	}
	m.screen.Show()
}

// TableRow is one row of a picker table.
type TableRow struct {
	Cells []string
}

// Table is a focusable row picker (the load-story screen).
type Table struct {
	screen *Screen
	title  string
	rows   []TableRow
	focus  int
}

// NewTable creates a picker over the given rows.
func NewTable(screen *Screen, title string, rows []TableRow) *Table {
	return &Table{screen: screen, title: title, rows: rows}
}

// Run blocks until the user picks a row (enter) or cancels (q/escape).
// Returns the picked row index.
func (t *Table) Run() (int, error) {
	for {
		t.draw()
		ev := t.screen.PollKey()
		switch ev.Kind {
		case KeyEnter:
			if len(t.rows) == 0 {
				return 0, ErrCancelled
			}
			return t.focus, nil
		case KeyEscape:
			return 0, ErrCancelled
		case KeyUp:
			t.move(-1)
		case KeyDown:
			t.move(1)
		case KeyRune:
			switch ev.Rune {
			case 'q':
				return 0, ErrCancelled
			case 'k':
				t.move(-1)
			case 'j':
				t.move(1)
			}
		}
	}
}

func (t *Table) move(delta int) {
	t.focus += delta
	if t.focus < 0 {
		t.focus = 0
	}
	if t.focus > len(t.rows)-1 {
		t.focus = len(t.rows) - 1
	}
}

func (t *Table) draw() {
	t.screen.Clear()
	drawHeader(t.screen, t.title)
	for i, row := range t.rows {
		style := styleStory
		if i == t.focus {
			style = styleFocusRow
		}
		x := 2
		for _, cell := range row.Cells {
			x = t.screen.setText(x, 2+i, cell, style)
			x = t.screen.setText(x, 2+i, "  ", style)
		}
	}
	_, height := t.screen.Size()
	drawHints(t.screen, height-1, []Hint{
		{Key: "j/k", Label: "Move"},
		{Key: "Enter", Label: "Pick"},
		{Key: "q", Label: "Back"},
	})
	t.screen.Show()
}

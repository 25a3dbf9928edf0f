package layout

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrInvalidWidth reports a render call with a non-positive width.
var ErrInvalidWidth = errors.New("layout: width must be positive")

// SpanStyle tags a span with the palette entry it should be painted with.
type SpanStyle uint8

const (
	StyleStory SpanStyle = iota
	StyleChapter
	StyleInstruction
	StyleSelected
)

// Span is a run of text painted with a single style.
type Span struct {
	Text  string
	Style SpanStyle
}

// Row is one line of final, width-wrapped output. A blank separator row
// has no spans.
type Row struct {
	Spans []Span
}

// Text returns the row's text with style boundaries erased.
func (r Row) Text() string {
	var b strings.Builder
	for _, s := range r.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Blank reports whether the row is a separator row.
func (r Row) Blank() bool { return len(r.Spans) == 0 }

// selected reports whether any span in the row is highlighted.
func (r Row) selected() bool {
	for _, s := range r.Spans {
		if s.Style == StyleSelected {
			return true
		}
	}
	return false
}

// Selection is the contiguous block of wrapped rows that contain
// selected content. Found is false when nothing is selected; Start and
// End are inclusive row indexes otherwise.
type Selection struct {
	Start int
	End   int
	Found bool
}

// Height returns the number of rows the selected block spans.
func (s Selection) Height() int {
	if !s.Found {
		return 0
	}
	return s.End - s.Start + 1
}

// instructionPrefix is prepended to instruction rows when rendered.
const instructionPrefix = "I: "

// Render converts sections into wrapped display rows of the given width.
// A single blank row separates consecutive block sections, never leading
// and never doubled. The returned Selection brackets the wrapped rows
// that carry selected content.
//
// Render is deterministic: identical inputs produce identical output.
func Render(sections []Section, width int) ([]Row, Selection, error) {
	if width <= 0 {
		return nil, Selection{}, ErrInvalidWidth
	}

	var rows []Row
	var sel Selection

	separate := func() {
		if len(rows) > 0 && !rows[len(rows)-1].Blank() {
			rows = append(rows, Row{})
		}
	}
	emit := func(logical Row) {
		for _, wrapped := range wrapRow(logical, width) {
			if wrapped.selected() {
				if !sel.Found {
					sel.Start = len(rows)
					sel.Found = true
				}
				sel.End = len(rows)
			}
			rows = append(rows, wrapped)
		}
	}

	for _, section := range sections {
		switch s := section.(type) {
		case Heading:
			separate()
			emit(Row{Spans: []Span{{Text: s.Title, Style: pick(s.Select, StyleChapter)}}})
		case Instruction:
			separate()
			emit(Row{Spans: []Span{{Text: instructionPrefix + s.Text, Style: pick(s.Select, StyleInstruction)}}})
		case Paragraph:
			separate()
			emit(paragraphRow(s))
		case Line:
			emit(Row{Spans: []Span{{Text: s.Text, Style: pick(s.Select, StyleStory)}}})
		}
	}
	return rows, sel, nil
}

func pick(selected bool, normal SpanStyle) SpanStyle {
	if selected {
		return StyleSelected
	}
	return normal
}

// paragraphRow joins the paragraph's sub-units into one logical row.
// Each sub-unit contributes its own span; the joining space takes the
// style of the sub-unit it precedes, so a selected run highlights as one
// contiguous region.
func paragraphRow(p Paragraph) Row {
	var spans []Span
	for _, unit := range p.Units {
		style := pick(unit.Select, StyleStory)
		if len(spans) > 0 {
			spans = append(spans, Span{Text: " ", Style: style})
		}
		spans = append(spans, Span{Text: unit.Text, Style: style})
	}
	return Row{Spans: spans}
}

// word is a whitespace-delimited fragment carrying the style of the span
// it was cut from.
type word struct {
	text  string
	style SpanStyle
	width int
}

// wrapRow greedily wraps one logical row to the given display width.
// Breaks happen at whitespace only; a single word wider than the
// viewport is placed alone on its own row rather than split. Span styles
// survive the wrap.
func wrapRow(logical Row, width int) []Row {
	words := splitWords(logical)
	if len(words) == 0 {
		return []Row{logical}
	}

	var out []Row
	var cur []Span
	curWidth := 0

	flush := func() {
		out = append(out, Row{Spans: cur})
		cur = nil
		curWidth = 0
	}
	appendSpan := func(text string, style SpanStyle) {
		if n := len(cur); n > 0 && cur[n-1].Style == style {
			cur[n-1].Text += text
			return
		}
		cur = append(cur, Span{Text: text, Style: style})
	}

	for _, w := range words {
		sep := 0
		if curWidth > 0 {
			sep = 1
		}
		if curWidth+sep+w.width > width && curWidth > 0 {
			flush()
			sep = 0
		}
		if sep > 0 {
			appendSpan(" ", w.style)
			curWidth++
		}
		appendSpan(w.text, w.style)
		curWidth += w.width
	}
	if len(cur) > 0 {
		flush()
	}
	return out
}

// splitWords cuts a logical row into styled words, discarding the
// whitespace between them. Wrapping re-inserts single spaces.
func splitWords(logical Row) []word {
	var words []word
	for _, span := range logical.Spans {
		for _, frag := range strings.Fields(span.Text) {
			words = append(words, word{
				text:  frag,
				style: span.Style,
				width: uniseg.StringWidth(frag),
			})
		}
	}
	return words
}

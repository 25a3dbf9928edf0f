package layout

import (
	"regexp"
	"strings"
)

// SelectLast is the sentinel selected-chunk index meaning "the final
// chunk in the sequence".
const SelectLast = -1

var headingRE = regexp.MustCompile(`^(#+) (.*)$`)

// Parser converts raw story chunks into sections. The zero value is
// ready to use; set Warnf to receive diagnostics about rows that look
// like headings but do not split into a hash run and a title.
type Parser struct {
	Warnf func(format string, args ...any)
}

// Parse classifies the chunks into an ordered sequence of sections using
// the default parser (no diagnostic sink).
func Parse(chunks []string, selected int) []Section {
	var p Parser
	return p.Parse(chunks, selected)
}

// Parse splits every chunk into physical rows and classifies each row,
// in precedence order: blank rows close the open paragraph, '#'-prefixed
// rows become Headings, INSTRUCT:-prefixed rows become Instructions, and
// everything else accumulates into the open paragraph.
//
// Every physical row of the chunk at the selected index is marked
// selected. SelectLast and out-of-range indexes clamp per clampSelected.
func (p *Parser) Parse(chunks []string, selected int) []Section {
	selected = clampSelected(selected, len(chunks))

	var sections []Section
	var open []Line

	flush := func() {
		if len(open) > 0 {
			sections = append(sections, Paragraph{Units: open})
			open = nil
		}
	}

	for idx, chunk := range chunks {
		sel := idx == selected
		for _, row := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(row)
			switch {
			case trimmed == "":
				flush()
			case strings.HasPrefix(trimmed, "#"):
				flush()
				sections = append(sections, p.parseHeading(row, sel, idx))
			case strings.HasPrefix(trimmed, instructMarker):
				flush()
				text := strings.TrimPrefix(trimmed, instructMarker)
				text = strings.TrimPrefix(text, " ")
				sections = append(sections, Instruction{Text: text, Select: sel, ChunkIdx: idx})
			default:
				open = append(open, Line{Text: row, Select: sel, ChunkIdx: idx})
			}
		}
	}
	flush()
	return sections
}

// instructMarker introduces a user instruction row. The marker itself is
// stripped from the stored text.
const instructMarker = "INSTRUCT:"

func (p *Parser) parseHeading(row string, sel bool, idx int) Heading {
	m := headingRE.FindStringSubmatch(strings.TrimSpace(row))
	if m == nil {
		// Recoverable: keep the whole row as the title, no level.
		if p.Warnf != nil {
			p.Warnf("unhandled title: %q", row)
		}
		return Heading{Level: 0, Title: row, Select: sel, ChunkIdx: idx}
	}
	return Heading{Level: len(m[1]), Title: m[2], Select: sel, ChunkIdx: idx}
}

// clampSelected resolves the SelectLast sentinel and clamps out-of-range
// indexes to the nearest valid chunk. With no chunks it returns -1, which
// matches nothing.
func clampSelected(selected, n int) int {
	if n == 0 {
		return -1
	}
	switch {
	case selected == SelectLast || selected >= n:
		return n - 1
	case selected < 0:
		return 0
	}
	return selected
}

package layout

// Section is a classified structural unit of parsed story text.
// The variant set is closed: Line, Paragraph, Heading, Instruction.
type Section interface {
	// Selected reports whether the section originated from the
	// focused chunk. For Paragraph it is always false; selection
	// lives on its sub-units.
	Selected() bool

	section()
}

// Line is a single physical row of plain story text.
type Line struct {
	Text     string
	Select   bool
	ChunkIdx int // index of the originating chunk
}

func (l Line) Selected() bool { return l.Select }
func (l Line) section()       {}

// Paragraph is a run of consecutive non-blank, non-heading,
// non-instruction rows, possibly spanning multiple chunks. It renders as
// its sub-units joined by single spaces.
type Paragraph struct {
	Units []Line
}

// Selected is always false for the paragraph itself.
func (p Paragraph) Selected() bool { return false }
func (p Paragraph) section()       {}

// Heading is a markdown-style title row: one or more '#' characters, a
// space, then the title. Level is the hash-run length, or 0 when the row
// only looked like a heading and could not be split into level and title.
type Heading struct {
	Level    int
	Title    string
	Select   bool
	ChunkIdx int
}

func (h Heading) Selected() bool { return h.Select }
func (h Heading) section()       {}

// Instruction is a user annotation row that starts with the INSTRUCT:
// marker. Text holds the row with the marker stripped.
type Instruction struct {
	Text     string
	Select   bool
	ChunkIdx int
}

func (i Instruction) Selected() bool { return i.Select }
func (i Instruction) section()       {}

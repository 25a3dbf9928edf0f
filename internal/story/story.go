// Package story holds the in-memory story session: the ordered chunk
// sequence, its metadata, and the focus cursor the user moves around.
package story

import "regexp"

// FocusLast is the sentinel focus meaning "the final chunk". A freshly
// loaded story focuses its end, so new text lands where the user reads.
const FocusLast = -1

// Story is one interactive-fiction session. Chunks are ordered; a
// chunk's index is its identity for focus purposes.
type Story struct {
	ID           int64
	UUID         string
	Title        string
	Instructions string
	Details      string
	Chunks       []string
	Focus        int
}

// New returns an empty story focused at the end.
func New(title string) *Story {
	return &Story{Title: title, Focus: FocusLast}
}

var (
	newlineRunsRE = regexp.MustCompile(`\n{3,}`)
	spaceRunsRE   = regexp.MustCompile(`[ \t\r\f\v]+`)
	commentRE     = regexp.MustCompile(`(?m)^[ \t]*%.*$\n?`)
)

// CleanText collapses runs of three or more newlines down to two
// (keeping paragraph breaks) and runs of horizontal whitespace down to a
// single space.
func CleanText(text string) string {
	text = newlineRunsRE.ReplaceAllString(text, "\n\n")
	return spaceRunsRE.ReplaceAllString(text, " ")
}

// StripComments removes internal comment lines, the ones starting with
// '%'. They guide the user inside instructions and details but must not
// reach the model.
func StripComments(text string) string {
	return commentRE.ReplaceAllString(text, "")
}

// ResolvedFocus maps the focus onto a concrete chunk index, resolving
// the FocusLast sentinel and clamping overflow. Returns -1 when the
// story has no chunks.
func (s *Story) ResolvedFocus() int {
	n := len(s.Chunks)
	if n == 0 {
		return -1
	}
	switch {
	case s.Focus == FocusLast || s.Focus >= n:
		return n - 1
	case s.Focus < 0:
		return 0
	}
	return s.Focus
}

// IsFirstFocused reports whether the focus sits on the first chunk.
func (s *Story) IsFirstFocused() bool {
	return len(s.Chunks) > 0 && s.ResolvedFocus() == 0
}

// IsLastFocused reports whether the focus sits on the last chunk.
func (s *Story) IsLastFocused() bool {
	n := len(s.Chunks)
	return n > 0 && s.ResolvedFocus() == n-1
}

// ActiveChunk returns the focused chunk, or "" when the story is empty.
func (s *Story) ActiveChunk() string {
	i := s.ResolvedFocus()
	if i < 0 {
		return ""
	}
	return s.Chunks[i]
}

// AddChunk appends cleaned text to the story and moves the focus to it.
func (s *Story) AddChunk(text string) {
	s.Chunks = append(s.Chunks, CleanText(text))
	s.Focus = len(s.Chunks) - 1
}

// ReplaceActiveChunk swaps the focused chunk's text. No-op on an empty
// story.
func (s *Story) ReplaceActiveChunk(text string) {
	if i := s.ResolvedFocus(); i >= 0 {
		s.Chunks[i] = CleanText(text)
	}
}

// DeleteActiveChunk removes the focused chunk; the focus moves to the
// previous chunk.
func (s *Story) DeleteActiveChunk() {
	i := s.ResolvedFocus()
	if i < 0 {
		return
	}
	s.Chunks = append(s.Chunks[:i], s.Chunks[i+1:]...)
	s.FocusUp()
}

// SetTitle cleans and stores a new title.
func (s *Story) SetTitle(title string) {
	s.Title = CleanText(title)
}

// SetInstructions cleans and stores new model instructions.
func (s *Story) SetInstructions(text string) {
	s.Instructions = CleanText(text)
}

// SetDetails cleans and stores new story details.
func (s *Story) SetDetails(text string) {
	s.Details = CleanText(text)
}

// FocusUp moves the focus one chunk toward the beginning.
func (s *Story) FocusUp() { s.moveFocus(-1) }

// FocusDown moves the focus one chunk toward the end.
func (s *Story) FocusDown() { s.moveFocus(1) }

// FocusBy moves the focus by delta chunks, clamping at both ends.
func (s *Story) FocusBy(delta int) { s.moveFocus(delta) }

// FocusFirst jumps to the first chunk.
func (s *Story) FocusFirst() {
	if len(s.Chunks) > 0 {
		s.Focus = 0
	}
}

// FocusEnd jumps to the last chunk.
func (s *Story) FocusEnd() {
	s.Focus = FocusLast
}

func (s *Story) moveFocus(delta int) {
	n := len(s.Chunks)
	if n == 0 {
		s.Focus = FocusLast
		return
	}
	i := s.ResolvedFocus() + delta
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		// Sticking to the sentinel keeps the focus on fresh chunks as
		// they arrive.
		s.Focus = FocusLast
		return
	}
	s.Focus = i
}

// Package layout is the story layout engine: it classifies raw story
// chunks into structural sections, renders them into styled, word-wrapped
// rows for a fixed-width viewport, and computes the scroll offset that
// keeps the focused chunk visible.
//
// The package is pure: every call is a bounded computation over the inputs
// with no I/O and no state carried between calls. Front ends re-run
// Parse -> Render -> Locate on every change of content, focus, or
// terminal size.
package layout

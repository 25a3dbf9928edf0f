package layout

import "errors"

// ErrInvalidHeight reports a locate call with a non-positive viewport
// height.
var ErrInvalidHeight = errors.New("layout: viewport height must be positive")

// Locate computes the first visible row for a viewport of the given
// height over totalRows rendered rows, keeping the selected block
// visible. Anchor policies, in order:
//
//   - everything fits: 0
//   - last chunk focused: anchor to bottom
//   - first chunk focused: anchor to top
//   - no selection: anchor to top
//   - interior focus: center the selected block; if the block is taller
//     than the viewport, pin its start to the top edge instead
//
// Locate is a pure function and holds no state between calls.
func Locate(totalRows, height int, sel Selection, firstFocused, lastFocused bool) (int, error) {
	if height <= 0 {
		return 0, ErrInvalidHeight
	}
	if totalRows <= height {
		return 0, nil
	}
	if lastFocused {
		return totalRows - height, nil
	}
	if firstFocused || !sel.Found {
		return 0, nil
	}

	block := sel.Height()
	var top int
	if block >= height {
		top = sel.Start
	} else {
		top = sel.Start - (height-block)/2
	}
	return clamp(top, 0, totalRows-height), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

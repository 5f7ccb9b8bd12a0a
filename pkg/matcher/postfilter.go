package matcher

import (
	"cmp"
	"slices"
)

// isWordByte reports whether b is an ASCII word byte. Everything else,
// including all bytes >= 0x80, is a boundary.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// wholeWordOK applies the word-boundary gate to a match at [start, end) in
// absolute input coordinates. view holds the bytes [viewBase, viewBase+len)
// of the input; neighbors falling outside the view are treated as
// boundaries, as are the virtual positions before offset 0 and after
// inputLen. Scanners arrange for both neighbors to be inside the view
// whenever they can be word bytes.
func wholeWordOK(view []byte, viewBase, start, end, inputLen int64) bool {
	if start > 0 {
		if i := start - 1 - viewBase; i >= 0 && i < int64(len(view)) && isWordByte(view[i]) {
			return false
		}
	}
	if end < inputLen {
		if i := end - viewBase; i >= 0 && i < int64(len(view)) && isWordByte(view[i]) {
			return false
		}
	}
	return true
}

// sortMatches orders matches by start, then end, then pattern ordinal.
// This is the delivery order of every entry point.
func sortMatches(matches []Match) {
	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.End, b.End); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// nonOverlappingCover reduces a sorted match list to the left-to-right
// greedy cover: a match survives only if it starts at or after the end of
// the previously kept match. With the (start, end, ordinal) ordering this
// prefers the earliest-starting candidate; among candidates with the same
// start, the one ending first, then the first-declared pattern.
func nonOverlappingCover(matches []Match) []Match {
	kept := matches[:0]
	var watermark int64
	for _, m := range matches {
		if m.Start >= watermark {
			kept = append(kept, m)
			watermark = m.End
		}
	}
	return kept
}

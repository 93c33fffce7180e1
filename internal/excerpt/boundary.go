package excerpt

import "strings"

// Direction selects which way FindBoundary scans from its starting position.
type Direction int

const (
	// Backward scans left, moving an excerpt's start outward.
	Backward Direction = iota
	// Forward scans right, moving an excerpt's end outward.
	Forward
)

// BoundarySearchWindow bounds how far FindBoundary scans for a clean cut
// point. It is the only guard against unbounded work on pathological input
// (a document with no boundary characters at all).
const BoundarySearchWindow = 20

// boundaryChars is the set of bytes treated as safe places to cut text
// without splitting a word: whitespace plus common punctuation.
const boundaryChars = " \t\n\r.,;:!?()[]{}'\"/-"

func isBoundary(b byte) bool {
	return strings.IndexByte(boundaryChars, b) >= 0
}

// FindBoundary returns the nearest acceptable cut point at or near pos,
// scanning at most BoundarySearchWindow bytes in the given direction. When
// no boundary exists within the window the raw position is returned
// unchanged. The result is always within [0, len(doc)].
func FindBoundary(doc string, pos int, dir Direction) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(doc) {
		return len(doc)
	}

	step := 1
	if dir == Backward {
		step = -1
	}
	for i := 0; i < BoundarySearchWindow; i++ {
		p := pos + i*step
		if p < 0 || p >= len(doc) {
			break
		}
		if isBoundary(doc[p]) {
			return p
		}
	}
	return pos
}

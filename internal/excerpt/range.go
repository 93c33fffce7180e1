// Package excerpt extracts bounded, boundary-aware snippets from long
// transcript text. All operations are pure and total: every input, including
// degenerate ones, has a well-defined result, and no state is held between
// calls.
package excerpt

import "sort"

// Range is a half-open [Start, End) span over byte positions in a document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// clamp restricts a range to [0, n], keeping Start <= End.
func (r Range) clamp(n int) Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > n {
		r.End = n
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// DefaultGapTolerance is the distance (in bytes) under which two ranges are
// treated as contiguous when consolidating.
const DefaultGapTolerance = 10

// Consolidate sorts ranges by start and merges every chain of ranges that
// overlap or sit within gap bytes of each other. The result is sorted,
// pairwise non-overlapping, and covers at least the union of the inputs.
// Input order is irrelevant and the input slice is never aliased.
func Consolidate(ranges []Range, gap int) []Range {
	if len(ranges) == 0 {
		return nil
	}
	if gap < 0 {
		gap = 0
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Start <= last.End+gap {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

package excerpt

import "strings"

// Type identifies how a document was shortened, if at all.
type Type string

const (
	TruncationNone    Type = "none"
	TruncationSnippet Type = "snippet"
	TruncationLength  Type = "length"
	TruncationToken   Type = "token"
)

// Defaults for the knobs callers supply. Exposed as named constants so the
// contract stays auditable.
const (
	// DefaultRadius is the number of bytes of context kept on each side of
	// a match.
	DefaultRadius = 200
	// DefaultMaxLength is the hard display cap applied by Limit.
	DefaultMaxLength = 500
)

// Ellipsis marks omitted text at the edge of an excerpt.
const Ellipsis = "..."

// pieceSeparator joins non-adjacent pieces of a combined excerpt.
const pieceSeparator = " ... "

// Meta describes whether and how a document was shortened. SnippetStart and
// SnippetEnd are offsets into the original document; for multi-range
// excerpts they report the outer envelope of the retained spans, not the
// total retained length.
type Meta struct {
	ContentTruncated bool `json:"content_truncated"`
	OriginalLength   int  `json:"original_length"`
	SnippetStart     int  `json:"snippet_start"`
	SnippetEnd       int  `json:"snippet_end"`
	TruncationType   Type `json:"truncation_type"`
}

// Result is one bounded excerpt. MatchPositions are expressed in the
// coordinate space of Text, not of the original document.
type Result struct {
	Text           string  `json:"text"`
	Meta           Meta    `json:"metadata"`
	MatchPositions []Range `json:"match_positions,omitempty"`
}

// verbatim wraps an untruncated document.
func verbatim(doc string) Result {
	return Result{
		Text: doc,
		Meta: Meta{
			OriginalLength: len(doc),
			SnippetEnd:     len(doc),
			TruncationType: TruncationNone,
		},
	}
}

// Around produces one bounded excerpt around a single match, snapping both
// edges to clean boundaries. Documents that already fit within the excerpt
// size are returned verbatim so a "truncated" result is never actually the
// whole document.
func Around(doc string, match Range, radius int) Result {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if doc == "" {
		return verbatim(doc)
	}
	match = match.clamp(len(doc))
	if len(doc) <= radius*2+match.Len() {
		return verbatim(doc)
	}

	start := match.Start - radius
	if start < 0 {
		start = 0
	}
	end := match.End + radius
	if end > len(doc) {
		end = len(doc)
	}
	start = FindBoundary(doc, start, Backward)
	end = FindBoundary(doc, end, Forward)

	return Result{
		Text: doc[start:end],
		Meta: Meta{
			ContentTruncated: true,
			OriginalLength:   len(doc),
			SnippetStart:     start,
			SnippetEnd:       end,
			TruncationType:   TruncationSnippet,
		},
	}
}

// AroundAll produces one combined excerpt covering every match in the
// document. Context windows around nearby matches are merged, each merged
// window is snapped to clean boundaries, and the resulting pieces are
// concatenated with separators between non-adjacent pieces and ellipses at
// trimmed document edges. Every original match position is remapped into
// the coordinate space of the combined excerpt; output order follows input
// match order.
func AroundAll(doc string, matches []Range, radius int) Result {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if doc == "" || len(matches) == 0 {
		r := verbatim(doc)
		r.MatchPositions = clampAll(matches, len(doc))
		return r
	}
	// Multiple matches need more room, hence the looser verbatim threshold.
	if len(doc) <= radius*3 {
		r := verbatim(doc)
		r.MatchPositions = clampAll(matches, len(doc))
		return r
	}

	windows := make([]Range, len(matches))
	for i, m := range matches {
		m = m.clamp(len(doc))
		w := Range{Start: m.Start - radius, End: m.End + radius}
		windows[i] = w.clamp(len(doc))
	}
	merged := Consolidate(windows, DefaultGapTolerance)

	snapped := make([]Range, len(merged))
	for i, w := range merged {
		snapped[i] = Range{
			Start: FindBoundary(doc, w.Start, Backward),
			End:   FindBoundary(doc, w.End, Forward),
		}
	}

	// Concatenate pieces, recording the exact output offset of each piece
	// so match remapping never drifts on uneven window sizes.
	var b strings.Builder
	offsets := make([]int, len(snapped))
	for i, w := range snapped {
		if i == 0 {
			if w.Start > 0 {
				b.WriteString(Ellipsis)
			}
		} else if w.Start > snapped[i-1].End+DefaultGapTolerance {
			b.WriteString(pieceSeparator)
		}
		offsets[i] = b.Len()
		b.WriteString(doc[w.Start:w.End])
	}
	if snapped[len(snapped)-1].End < len(doc) {
		b.WriteString(Ellipsis)
	}

	positions := make([]Range, len(matches))
	for i, m := range matches {
		m = m.clamp(len(doc))
		w := containingWindow(merged, m)
		start := offsets[w] + (m.Start - snapped[w].Start)
		positions[i] = Range{Start: start, End: start + m.Len()}
	}

	return Result{
		Text: b.String(),
		Meta: Meta{
			ContentTruncated: true,
			OriginalLength:   len(doc),
			SnippetStart:     snapped[0].Start,
			SnippetEnd:       snapped[len(snapped)-1].End,
			TruncationType:   TruncationSnippet,
		},
		MatchPositions: positions,
	}
}

// containingWindow returns the index of the consolidated window holding m.
// Every match is inside one merged window by construction; the fallback
// picks the last window starting at or before the match.
func containingWindow(merged []Range, m Range) int {
	for i, w := range merged {
		if m.Start >= w.Start && m.End <= w.End {
			return i
		}
	}
	last := 0
	for i, w := range merged {
		if w.Start <= m.Start {
			last = i
		}
	}
	return last
}

func clampAll(ranges []Range, n int) []Range {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[i] = r.clamp(n)
	}
	return out
}

// Package match compiles search patterns and locates their occurrences in
// transcript text, producing ranges the excerpt package consumes.
package match

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/nextlevelbuilder/sessgrep/internal/excerpt"
)

// DefaultMaxPerDoc caps matches reported per document so one pathological
// message cannot dominate a result set.
const DefaultMaxPerDoc = 50

// Options controls pattern compilation.
type Options struct {
	Literal    bool // treat the pattern as a fixed string, not a regex
	IgnoreCase bool
	MaxPerDoc  int // <= 0 means DefaultMaxPerDoc
}

// Matcher is a compiled search pattern. Safe for concurrent use.
type Matcher struct {
	re  *regexp.Regexp
	max int
}

// Compile builds a matcher from a user-supplied pattern.
func Compile(pattern string, opts Options) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.New("empty search pattern")
	}

	expr := pattern
	if opts.Literal {
		expr = regexp.QuoteMeta(pattern)
	}
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	max := opts.MaxPerDoc
	if max <= 0 {
		max = DefaultMaxPerDoc
	}
	return &Matcher{re: re, max: max}, nil
}

// Find returns the positions of every match in doc, left to right and
// non-overlapping, capped at the per-document limit. Zero-width matches are
// dropped so downstream excerpting always has text to anchor on.
func (m *Matcher) Find(doc string) []excerpt.Range {
	if doc == "" {
		return nil
	}
	locs := m.re.FindAllStringIndex(doc, m.max)
	if len(locs) == 0 {
		return nil
	}
	out := make([]excerpt.Range, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		out = append(out, excerpt.Range{Start: loc[0], End: loc[1]})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

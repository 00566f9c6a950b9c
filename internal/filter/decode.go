// Package filter turns a free-form filter string into the coordinate of a
// single combination.
//
// Parsing is permissive and matching is strict: any tuple of the accepted
// shape parses, but only literal equality with a generated combination
// resolves. Everything else means "no filter" and the caller runs the full
// sweep.
package filter

import (
	"sobel-perf/internal/catalog"
)

// Coordinate points at one combination.
type Coordinate struct {
	Mode  catalog.Mode
	Index int
}

// Source is the per-mode combination set searched by Resolve.
type Source interface {
	Modes() []catalog.Mode
	Combinations(m catalog.Mode) []catalog.Combination
}

// Decode parses s and resolves it against src.
func Decode(s string, src Source) (Coordinate, bool) {
	q, ok := Parse(s)
	if !ok {
		return Coordinate{}, false
	}
	return Resolve(q, src)
}

// Resolve scans modes in order, then positions within each mode, and
// returns the first combination whose fields equal q. The border arity must
// match as well, so a compound query never selects a single-tag combination.
func Resolve(q Query, src Source) (Coordinate, bool) {
	for _, m := range src.Modes() {
		for i, c := range src.Combinations(m) {
			if matches(q, c) {
				return Coordinate{Mode: m, Index: i}, true
			}
		}
	}
	return Coordinate{}, false
}

func matches(q Query, c catalog.Combination) bool {
	if q.Size != c.Size || q.Depth != c.Depth || q.Order != c.Order {
		return false
	}
	if len(q.Border) != len(c.Border.Tags) {
		return false
	}
	for i, tag := range q.Border {
		if c.Border.Tags[i] != tag {
			return false
		}
	}
	return true
}

package filter

import (
	"fmt"
	"strconv"
	"strings"

	"sobel-perf/internal/catalog"
)

// Query holds the literal fields extracted from a filter string.
type Query struct {
	Size   catalog.Size
	Depth  catalog.Depth
	Order  catalog.Order
	Border []catalog.BorderTag
}

// QueryFor returns the query that selects c.
func QueryFor(c catalog.Combination) Query {
	return Query{
		Size:   c.Size,
		Depth:  c.Depth,
		Order:  c.Order,
		Border: c.Border.Tags,
	}
}

// Compound reports whether the border field carries two tags.
func (q Query) Compound() bool {
	return len(q.Border) > 1
}

// String renders the canonical filter form, e.g.
// "(640x480, CV_16SC1, (1,0), BORDER_CONSTANT)".
func (q Query) String() string {
	tags := make([]string, len(q.Border))
	for i, t := range q.Border {
		tags[i] = string(t)
	}
	return fmt.Sprintf("(%s, %s, %s, %s)", q.Size, q.Depth, q.Order, strings.Join(tags, catalog.BorderSeparator))
}

// Parse extracts the first well-formed tuple in s. Text before and after the
// tuple is ignored. It reports false when no position in s yields one.
func Parse(s string) (Query, bool) {
	for start := 0; start < len(s); {
		i := strings.IndexByte(s[start:], '(')
		if i < 0 {
			break
		}
		sc := &scanner{src: s, pos: start + i}
		if q, ok := sc.tuple(); ok {
			return q, true
		}
		start += i + 1
	}
	return Query{}, false
}

type scanner struct {
	src string
	pos int
}

// tuple reads "(WxH, DEPTH, (d1,d2), TAG[|TAG])".
func (sc *scanner) tuple() (Query, bool) {
	var q Query

	if !sc.expect('(') {
		return q, false
	}
	w, ok := sc.number()
	if !ok || !sc.expect('x') {
		return q, false
	}
	h, ok := sc.number()
	if !ok || !sc.expect(',') {
		return q, false
	}
	q.Size = catalog.Size{Width: w, Height: h}

	depth, ok := sc.word()
	if !ok || !sc.expect(',') {
		return q, false
	}
	q.Depth = catalog.Depth(depth)

	if !sc.expect('(') {
		return q, false
	}
	dx, ok := sc.digit()
	if !ok || !sc.expect(',') {
		return q, false
	}
	dy, ok := sc.digit()
	if !ok || !sc.expect(')') || !sc.expect(',') {
		return q, false
	}
	q.Order = catalog.Order{Dx: dx, Dy: dy}

	tag, ok := sc.word()
	if !ok {
		return q, false
	}
	q.Border = []catalog.BorderTag{catalog.BorderTag(tag)}
	if sc.peek() == '|' {
		sc.pos++
		tag, ok = sc.word()
		if !ok {
			return q, false
		}
		q.Border = append(q.Border, catalog.BorderTag(tag))
	}

	if !sc.expect(')') {
		return q, false
	}
	return q, true
}

func (sc *scanner) skipSpaces() {
	for sc.pos < len(sc.src) && sc.src[sc.pos] == ' ' {
		sc.pos++
	}
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) expect(b byte) bool {
	sc.skipSpaces()
	if sc.peek() != b {
		return false
	}
	sc.pos++
	return true
}

func (sc *scanner) number() (int, bool) {
	sc.skipSpaces()
	start := sc.pos
	for sc.pos < len(sc.src) && isDigit(sc.src[sc.pos]) {
		sc.pos++
	}
	if sc.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(sc.src[start:sc.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (sc *scanner) digit() (int, bool) {
	sc.skipSpaces()
	c := sc.peek()
	if !isDigit(c) {
		return 0, false
	}
	sc.pos++
	return int(c - '0'), true
}

func (sc *scanner) word() (string, bool) {
	sc.skipSpaces()
	start := sc.pos
	for sc.pos < len(sc.src) && isWord(sc.src[sc.pos]) {
		sc.pos++
	}
	if sc.pos == start {
		return "", false
	}
	return sc.src[start:sc.pos], true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWord(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

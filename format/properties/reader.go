package properties

import (
	"unicode/utf8"

	"github.com/yacchi/dedokoro"
)

const eof = rune(-1)

// reader walks the input one rune at a time, tracking the zero-based
// line and column of the next rune. Line breaks are normalized: \r
// and \r\n both read as a single \n.
type reader struct {
	data []byte
	off  int
	line int
	col  int
}

func (r *reader) peek() rune {
	if r.off >= len(r.data) {
		return eof
	}
	c, _ := utf8.DecodeRune(r.data[r.off:])
	if c == '\r' {
		return '\n'
	}
	return c
}

func (r *reader) next() rune {
	if r.off >= len(r.data) {
		return eof
	}
	c, size := utf8.DecodeRune(r.data[r.off:])
	r.off += size
	if c == '\r' {
		if r.off < len(r.data) && r.data[r.off] == '\n' {
			r.off++
		}
		c = '\n'
	}
	if c == '\n' {
		r.line++
		r.col = 0
		return '\n'
	}
	r.col++
	return c
}

func (r *reader) location() dedokoro.Location {
	return dedokoro.Location{Line: r.line, Column: r.col}
}

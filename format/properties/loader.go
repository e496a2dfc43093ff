// Package properties loads Java-style .properties files into
// properties that remember where every value came from.
//
// The usual rules apply: keys are separated from values by the first
// unescaped '=', ':' or run of whitespace, lines starting with '#'
// or '!' are comments, a trailing backslash continues the value on
// the next line, and \t, \n, \f, \r and \uXXXX escapes are decoded
// in keys and values alike. All values are strings.
//
// A comment of exactly "#---" or "!---" starting in the first column
// splits the file into documents, mirroring the multi-document YAML
// form. Every value is a dedokoro.TrackedValue whose origin points
// at the first character of the value.
package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yacchi/dedokoro"
	"github.com/yacchi/dedokoro/source"
)

// Loader loads .properties documents from a source.
type Loader struct {
	src source.Source
}

// NewLoader returns a Loader reading from src.
func NewLoader(src source.Source) *Loader {
	return &Loader{src: src}
}

// Load parses the source into one Properties per document. Files
// without a document separator yield a single document; empty
// documents are dropped.
func (l *Loader) Load(ctx context.Context) ([]*dedokoro.Properties, error) {
	data, err := l.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	desc := l.src.Describe()
	p := &parser{r: &reader{data: data}, source: desc}
	docs, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties from %s: %w", desc, err)
	}
	return docs, nil
}

// Load parses every properties document in src.
func Load(ctx context.Context, src source.Source) ([]*dedokoro.Properties, error) {
	return NewLoader(src).Load(ctx)
}

var _ dedokoro.LoadFunc = Load

type parser struct {
	r      *reader
	source string
}

func (p *parser) parse() ([]*dedokoro.Properties, error) {
	var docs []*dedokoro.Properties
	doc := dedokoro.NewProperties()
	for {
		p.skipBlank()
		c := p.r.peek()
		if c == eof {
			break
		}
		if c == '#' || c == '!' {
			if p.comment() && doc.Len() > 0 {
				docs = append(docs, doc)
				doc = dedokoro.NewProperties()
			}
			continue
		}
		key, err := p.readKey()
		if err != nil {
			return nil, err
		}
		p.skipSeparator()
		loc := p.r.location()
		value, err := p.readValue()
		if err != nil {
			return nil, err
		}
		doc.Put(key, dedokoro.Track(value, dedokoro.Origin{Source: p.source, Location: loc}))
	}
	if doc.Len() > 0 {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (p *parser) skipBlank() {
	for {
		switch p.r.peek() {
		case ' ', '\t', '\f', '\n':
			p.r.next()
		default:
			return
		}
	}
}

// comment consumes a comment line and reports whether it was a
// document separator: a '#' or '!' in the first column followed by
// exactly three hyphens and nothing but whitespace.
func (p *parser) comment() bool {
	atLineStart := p.r.location().Column == 0
	p.r.next()
	if !atLineStart {
		p.skipLine()
		return false
	}
	for i := 0; i < 3; i++ {
		if p.r.peek() != '-' {
			p.skipLine()
			return false
		}
		p.r.next()
	}
	for {
		switch c := p.r.peek(); c {
		case '\n':
			p.r.next()
			return true
		case eof:
			return true
		case ' ', '\t', '\f':
			p.r.next()
		default:
			p.skipLine()
			return false
		}
	}
}

func (p *parser) skipLine() {
	for {
		switch p.r.peek() {
		case '\n':
			p.r.next()
			return
		case eof:
			return
		default:
			p.r.next()
		}
	}
}

func (p *parser) readKey() (string, error) {
	var b strings.Builder
	for {
		switch c := p.r.peek(); c {
		case eof, '\n', '=', ':', ' ', '\t', '\f':
			return b.String(), nil
		case '\\':
			p.r.next()
			e, skip, err := p.readEscaped()
			if err != nil {
				return "", err
			}
			if !skip {
				b.WriteRune(e)
			}
		default:
			b.WriteRune(p.r.next())
		}
	}
}

// skipSeparator consumes the whitespace after a key, at most one '='
// or ':', and the whitespace after that. The next rune starts the
// value.
func (p *parser) skipSeparator() {
	for {
		switch p.r.peek() {
		case ' ', '\t', '\f':
			p.r.next()
		case '=', ':':
			p.r.next()
			for {
				switch p.r.peek() {
				case ' ', '\t', '\f':
					p.r.next()
				default:
					return
				}
			}
		default:
			return
		}
	}
}

func (p *parser) readValue() (string, error) {
	var b strings.Builder
	for {
		switch c := p.r.peek(); c {
		case eof:
			return b.String(), nil
		case '\n':
			p.r.next()
			return b.String(), nil
		case '\\':
			p.r.next()
			e, skip, err := p.readEscaped()
			if err != nil {
				return "", err
			}
			if !skip {
				b.WriteRune(e)
			}
		default:
			b.WriteRune(p.r.next())
		}
	}
}

// readEscaped decodes the rune after a backslash. skip is true when
// the backslash continued the logical line, which consumes the line
// break and the leading whitespace of the next line.
func (p *parser) readEscaped() (c rune, skip bool, err error) {
	switch c = p.r.next(); c {
	case '\n':
		p.skipLeadingSpace()
		return 0, true, nil
	case eof:
		return 0, true, nil
	case 't':
		return '\t', false, nil
	case 'n':
		return '\n', false, nil
	case 'f':
		return '\f', false, nil
	case 'r':
		return '\r', false, nil
	case 'u':
		c, err = p.unicodeEscape()
		return c, false, err
	}
	return c, false, nil
}

func (p *parser) skipLeadingSpace() {
	for {
		switch p.r.peek() {
		case ' ', '\t', '\f':
			p.r.next()
		default:
			return
		}
	}
}

func (p *parser) unicodeEscape() (rune, error) {
	var v rune
	for i := 0; i < 4; i++ {
		c := p.r.next()
		switch {
		case c >= '0' && c <= '9':
			v = v<<4 + (c - '0')
		case c >= 'a' && c <= 'f':
			v = v<<4 + 10 + (c - 'a')
		case c >= 'A' && c <= 'F':
			v = v<<4 + 10 + (c - 'A')
		default:
			return 0, errors.New("malformed \\uXXXX escape")
		}
	}
	return v, nil
}

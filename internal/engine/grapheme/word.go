package grapheme

import (
	"strings"
	"unicode"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// CharClass is the word-motion category of a scalar.
type CharClass uint8

const (
	ClassOther CharClass = iota
	ClassLineFeed
	ClassWhitespace
	ClassPunctuation
)

// punctuation holds the ASCII marks that form their own word runs.
// Underscore is absent so identifiers stay whole.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// Classify returns the class of ch.
func Classify(ch rune) CharClass {
	switch {
	case ch == '\n' || ch == '\r':
		return ClassLineFeed
	case unicode.IsSpace(ch):
		return ClassWhitespace
	case ch < 0x80 && strings.ContainsRune(punctuation, ch):
		return ClassPunctuation
	default:
		return ClassOther
	}
}

// NextWordBoundary returns the char index where forward word motion from
// charIdx stops. Leading whitespace is skipped. A run of two or more
// punctuation marks is a stop of its own, as is a single mark not followed
// by a word character; otherwise the mark joins the following word.
func NextWordBoundary(r rope.Rope, charIdx int) int {
	c := r.CursorAt(charIdx)

	for {
		ch, ok := c.Peek()
		if !ok || Classify(ch) != ClassWhitespace {
			break
		}
		c.Next()
	}

	if n := punctRun(c, (*rope.Cursor).Peek, (*rope.Cursor).Next); n > 0 {
		if n > 1 {
			return c.CharIndex()
		}
		ch, ok := c.Peek()
		if !ok || Classify(ch) != ClassOther {
			return c.CharIndex()
		}
	}

	ch, ok := c.Peek()
	if !ok {
		return c.CharIndex()
	}
	class := Classify(ch)
	for {
		ch, ok := c.Peek()
		if !ok || Classify(ch) != class {
			break
		}
		c.Next()
	}
	return c.CharIndex()
}

// PrevWordBoundary is the reverse of NextWordBoundary.
func PrevWordBoundary(r rope.Rope, charIdx int) int {
	c := r.CursorAt(charIdx)

	for {
		ch, ok := c.PeekPrev()
		if !ok || Classify(ch) != ClassWhitespace {
			break
		}
		c.Prev()
	}

	if n := punctRun(c, (*rope.Cursor).PeekPrev, (*rope.Cursor).Prev); n > 0 {
		if n > 1 {
			return c.CharIndex()
		}
		ch, ok := c.PeekPrev()
		if !ok || Classify(ch) != ClassOther {
			return c.CharIndex()
		}
	}

	ch, ok := c.PeekPrev()
	if !ok {
		return c.CharIndex()
	}
	class := Classify(ch)
	for {
		ch, ok := c.PeekPrev()
		if !ok || Classify(ch) != class {
			break
		}
		c.Prev()
	}
	return c.CharIndex()
}

// punctRun moves c over consecutive punctuation in one direction and
// returns how many marks it passed.
func punctRun(c *rope.Cursor, peek, step func(*rope.Cursor) (rune, bool)) int {
	n := 0
	for {
		ch, ok := peek(c)
		if !ok || Classify(ch) != ClassPunctuation {
			return n
		}
		step(c)
		n++
	}
}

// LineStartBoundary returns the number of leading whitespace chars on line.
func LineStartBoundary(r rope.Rope, line int) int {
	c := r.CursorAt(r.LineToChar(line))
	n := 0
	for {
		ch, ok := c.Next()
		if !ok || Classify(ch) != ClassWhitespace {
			return n
		}
		n++
	}
}

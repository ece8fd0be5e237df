package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/inkwell/internal/engine/rope"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassLineFeed, Classify('\n'))
	assert.Equal(t, ClassLineFeed, Classify('\r'))
	assert.Equal(t, ClassWhitespace, Classify(' '))
	assert.Equal(t, ClassWhitespace, Classify('\t'))
	assert.Equal(t, ClassPunctuation, Classify('.'))
	assert.Equal(t, ClassPunctuation, Classify('`'))
	assert.Equal(t, ClassOther, Classify('_'))
	assert.Equal(t, ClassOther, Classify('a'))
	assert.Equal(t, ClassOther, Classify('世'))
	assert.Len(t, punctuation, 31)
}

func TestNextWordBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   int
		want int
	}{
		{"word", "foo bar", 0, 3},
		{"skips leading space", "foo bar", 3, 7},
		{"identifier with underscore", "foo_bar baz", 0, 7},
		{"single dot joins next word", "foo.bar", 3, 7},
		{"operator run", "a += b", 1, 4},
		{"single mark before space", "a, b", 1, 2},
		{"single mark at end", "a.", 1, 2},
		{"linefeeds", "a\n\nb", 1, 3},
		{"at end", "abc", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextWordBoundary(rope.FromString(tt.text), tt.at))
		})
	}
}

func TestPrevWordBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   int
		want int
	}{
		{"word", "foo bar", 7, 4},
		{"skips trailing space", "foo bar", 4, 0},
		{"single dot joins previous word", "foo.bar", 4, 0},
		{"operator run", "a += b", 4, 2},
		{"single mark after space", "a .", 3, 2},
		{"at start", "abc", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrevWordBoundary(rope.FromString(tt.text), tt.at))
		})
	}
}

func TestLineStartBoundary(t *testing.T) {
	r := rope.FromString("    foo\n\tbar\nbaz\n  \n")
	assert.Equal(t, 4, LineStartBoundary(r, 0))
	assert.Equal(t, 1, LineStartBoundary(r, 1))
	assert.Equal(t, 0, LineStartBoundary(r, 2))
	assert.Equal(t, 2, LineStartBoundary(r, 3))
	assert.Equal(t, 0, LineStartBoundary(r, 4))
}

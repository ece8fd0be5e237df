package fileinfo

import (
	"fmt"
	"strings"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// IndentKind distinguishes tab from space indentation.
type IndentKind uint8

const (
	IndentSpaces IndentKind = iota
	IndentTabs
)

// DefaultIndentWidth is the width used when nothing else is known.
const DefaultIndentWidth = 4

// Indentation is the unit inserted by one indent step.
type Indentation struct {
	Kind  IndentKind
	Width int
}

// Tab returns tab indentation displayed width columns wide.
func Tab(width int) Indentation {
	return Indentation{Kind: IndentTabs, Width: width}
}

// Space returns indentation of width spaces.
func Space(width int) Indentation {
	return Indentation{Kind: IndentSpaces, Width: width}
}

// Unit returns the text of one indentation step.
func (in Indentation) Unit() string {
	if in.Kind == IndentTabs {
		return "\t"
	}
	return strings.Repeat(" ", in.width())
}

// IsTab reports whether indentation uses tabs.
func (in Indentation) IsTab() bool {
	return in.Kind == IndentTabs
}

func (in Indentation) width() int {
	if in.Width <= 0 {
		return DefaultIndentWidth
	}
	return in.Width
}

// String returns "Tab(n)" or "Space(n)".
func (in Indentation) String() string {
	if in.Kind == IndentTabs {
		return fmt.Sprintf("Tab(%d)", in.width())
	}
	return fmt.Sprintf("Space(%d)", in.width())
}

// DetectIndentation infers the indentation unit of r.
//
// Tabs win when more lines start with a tab than with a space. Otherwise
// the most frequent change in leading-space width between consecutive lines
// (ignoring changes of zero or one) gives the width; Space(4) when there is
// no such change. Equally frequent widths resolve to the smaller one.
func DetectIndentation(r rope.Rope) Indentation {
	tabs, spaces := 0, 0
	it := r.Lines()
	for it.Next() {
		line := it.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		}
	}
	if tabs > spaces {
		return Tab(DefaultIndentWidth)
	}

	histogram := make(map[int]int)
	prev := -1
	it = r.Lines()
	for it.Next() {
		width := leadingSpaces(it.Text())
		if prev < 0 {
			prev = width
			continue
		}
		delta := width - prev
		if delta < 0 {
			delta = -delta
		}
		if delta > 1 {
			histogram[delta]++
		}
		prev = width
	}

	best, bestCount := 0, 0
	for delta, count := range histogram {
		if count > bestCount || (count == bestCount && delta < best) {
			best, bestCount = delta, count
		}
	}
	if bestCount == 0 {
		return Space(DefaultIndentWidth)
	}
	return Space(best)
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

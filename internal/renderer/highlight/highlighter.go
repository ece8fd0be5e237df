package highlight

import (
	"slices"
	"strings"

	"github.com/dshills/inkwell/internal/syntax"
)

// SpanStyle styles the characters [Start, End) of a line.
type SpanStyle struct {
	Style Style
	Start int
	End   int
}

// StyledLine is an ordered list of spans covering a line without gaps.
type StyledLine []SpanStyle

// Clone returns an independent copy of the line.
func (l StyledLine) Clone() StyledLine {
	return slices.Clone(l)
}

// Len returns the number of characters the spans cover.
func (l StyledLine) Len() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].End
}

// Truncate returns the spans clipped to the first n characters. The
// receiver is not modified.
func (l StyledLine) Truncate(n int) StyledLine {
	if l.Len() <= n {
		return l
	}
	var out StyledLine
	for _, s := range l {
		if s.Start >= n {
			break
		}
		s.End = min(s.End, n)
		out = append(out, s)
	}
	return out
}

// StyleAt returns the style of character col.
func (l StyledLine) StyleAt(col int) (Style, bool) {
	i, found := slices.BinarySearchFunc(l, col, func(s SpanStyle, c int) int {
		switch {
		case s.End <= c:
			return -1
		case s.Start > c:
			return 1
		}
		return 0
	})
	if !found {
		return Style{}, false
	}
	return l[i].Style, true
}

// HighlightState is the scope stack between two lines.
type HighlightState struct {
	scopes []string
}

// NewHighlightState returns an empty scope stack.
func NewHighlightState() *HighlightState {
	return &HighlightState{}
}

// Clone returns an independent copy of the state.
func (s *HighlightState) Clone() *HighlightState {
	return &HighlightState{scopes: slices.Clone(s.scopes)}
}

// Scopes returns the stack, outermost first.
func (s *HighlightState) Scopes() []string {
	return slices.Clone(s.scopes)
}

func (s *HighlightState) apply(op syntax.ScopeOp) {
	switch op.Kind {
	case syntax.OpPush:
		s.scopes = append(s.scopes, op.Scope)
	case syntax.OpPop:
		if len(s.scopes) > 0 {
			s.scopes = s.scopes[:len(s.scopes)-1]
		}
	}
}

// Highlighter turns scope operations into styled spans for one theme.
// It is not safe for concurrent use.
type Highlighter struct {
	theme  *Theme
	styles map[string]Style
}

// NewHighlighter creates a highlighter for theme.
func NewHighlighter(theme *Theme) *Highlighter {
	return &Highlighter{theme: theme, styles: make(map[string]Style)}
}

// Theme returns the highlighter's theme.
func (h *Highlighter) Theme() *Theme {
	return h.theme
}

// Highlight applies ops to st and returns spans covering width characters.
// Offsets outside [0, width] are clamped.
func (h *Highlighter) Highlight(st *HighlightState, ops []syntax.ScopeOp, width int) StyledLine {
	var line StyledLine
	pos := 0
	emit := func(end int) {
		style := h.styleFor(st.scopes)
		if n := len(line); n > 0 && line[n-1].Style == style {
			line[n-1].End = end
		} else {
			line = append(line, SpanStyle{Style: style, Start: pos, End: end})
		}
		pos = end
	}

	for _, op := range ops {
		if off := min(op.Offset, width); off > pos {
			emit(off)
		}
		st.apply(op)
	}
	if width > pos {
		emit(width)
	}
	return line
}

func (h *Highlighter) styleFor(scopes []string) Style {
	key := strings.Join(scopes, " ")
	if s, ok := h.styles[key]; ok {
		return s
	}
	s := h.theme.StyleFor(scopes)
	h.styles[key] = s
	return s
}

package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/inkwell/internal/syntax"
)

func span(s Style, start, end int) SpanStyle {
	return SpanStyle{Style: s, Start: start, End: end}
}

func TestHighlight(t *testing.T) {
	th := testTheme()
	def := th.Default
	str := def.Merge(NewStyle(fgString))
	com := def.Merge(NewStyle(fgComment).Italic())
	kw := def.Merge(NewStyle(fgKeyword))

	tests := []struct {
		name  string
		ops   []syntax.ScopeOp
		width int
		want  StyledLine
	}{
		{
			name:  "plain",
			width: 3,
			want:  StyledLine{span(def, 0, 3)},
		},
		{
			name:  "empty line",
			ops:   []syntax.ScopeOp{syntax.Push(0, "source.x"), syntax.Pop(0)},
			width: 0,
			want:  nil,
		},
		{
			name: "keyword in the middle",
			ops: []syntax.ScopeOp{
				syntax.Push(0, "source.x"),
				syntax.Push(2, "keyword.operator"),
				syntax.Pop(5),
			},
			width: 8,
			want:  StyledLine{span(def, 0, 2), span(kw, 2, 5), span(def, 5, 8)},
		},
		{
			name: "equal neighbours merge",
			ops: []syntax.ScopeOp{
				syntax.Push(0, "comment"), syntax.Pop(2),
				syntax.Push(2, "comment.line"), syntax.Pop(4),
			},
			width: 4,
			want:  StyledLine{span(com, 0, 4)},
		},
		{
			name:  "offsets clamp to width",
			ops:   []syntax.ScopeOp{syntax.Push(0, "string"), syntax.Pop(10)},
			width: 3,
			want:  StyledLine{span(str, 0, 3)},
		},
		{
			name:  "pop on empty stack",
			ops:   []syntax.ScopeOp{syntax.Pop(1)},
			width: 2,
			want:  StyledLine{span(def, 0, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHighlighter(th)
			got := h.Highlight(NewHighlightState(), tt.ops, tt.width)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighlightCarriesState(t *testing.T) {
	th := testTheme()
	h := NewHighlighter(th)
	st := NewHighlightState()
	str := th.Default.Merge(NewStyle(fgString))

	got := h.Highlight(st, []syntax.ScopeOp{syntax.Push(1, "string")}, 3)
	assert.Equal(t, StyledLine{span(th.Default, 0, 1), span(str, 1, 3)}, got)
	assert.Equal(t, []string{"string"}, st.Scopes())

	saved := st.Clone()
	got = h.Highlight(st, []syntax.ScopeOp{syntax.Pop(1)}, 2)
	assert.Equal(t, StyledLine{span(str, 0, 1), span(th.Default, 1, 2)}, got)
	assert.Empty(t, st.Scopes())
	assert.Equal(t, []string{"string"}, saved.Scopes())
}

func TestHighlightCoversLineWithoutGaps(t *testing.T) {
	g, err := syntax.Default().Lookup("go")
	if !assert.NoError(t, err) {
		return
	}
	h := NewHighlighter(testTheme())
	ps, hs := g.NewState(), NewHighlightState()

	for _, line := range []string{`func main() {`, `	s := "a\n" // note`, `	/* open`, `close */ return`} {
		ops, err := g.ParseLine(ps, line)
		assert.NoError(t, err)
		width := len([]rune(line))
		got := h.Highlight(hs, ops, width)

		pos := 0
		for _, s := range got {
			assert.Equal(t, pos, s.Start, line)
			assert.Greater(t, s.End, s.Start, line)
			pos = s.End
		}
		assert.Equal(t, width, pos, line)
	}
}

func TestStyledLineTruncate(t *testing.T) {
	a, b := NewStyle(fgString), NewStyle(fgComment)
	line := StyledLine{span(a, 0, 3), span(b, 3, 6)}

	assert.Equal(t, StyledLine{span(a, 0, 3), span(b, 3, 4)}, line.Truncate(4))
	assert.Equal(t, StyledLine{span(a, 0, 3)}, line.Truncate(3))
	assert.Equal(t, line, line.Truncate(10))
	assert.Nil(t, line.Truncate(0))
	assert.Equal(t, 6, line.Len())
}

func TestStyledLineStyleAt(t *testing.T) {
	a, b := NewStyle(fgString), NewStyle(fgComment)
	line := StyledLine{span(a, 0, 3), span(b, 3, 6)}

	tests := []struct {
		col    int
		want   Style
		wantOK bool
	}{
		{0, a, true},
		{2, a, true},
		{3, b, true},
		{5, b, true},
		{6, Style{}, false},
		{-1, Style{}, false},
	}
	for _, tt := range tests {
		got, ok := line.StyleAt(tt.col)
		assert.Equal(t, tt.wantOK, ok, "col %d", tt.col)
		assert.Equal(t, tt.want, got, "col %d", tt.col)
	}
}

package grapheme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/rope"
)

func TestNextBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   int
		want int
	}{
		{"ascii", "abc", 0, 1},
		{"combining acute", "e\u0301x", 0, 2},
		{"crlf is one cluster", "a\r\nb", 1, 3},
		{"lone cr", "a\rb", 1, 2},
		{"flag", "\U0001F1E9\U0001F1EA!", 0, 2},
		{"zwj family", "\U0001F468\u200d\U0001F469\u200d\U0001F467.", 0, 5},
		{"at end", "abc", 3, 3},
		{"past end", "abc", 10, 3},
		{"empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBoundary(rope.FromString(tt.text), tt.at))
		})
	}
}

func TestPrevBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   int
		want int
	}{
		{"ascii", "abc", 2, 1},
		{"combining acute", "xe\u0301", 3, 1},
		{"crlf is one cluster", "a\r\nb", 3, 1},
		{"after newline", "a\nb", 2, 1},
		{"flag", "!\U0001F1E9\U0001F1EA", 3, 1},
		{"at start", "abc", 0, 0},
		{"negative", "abc", -4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrevBoundary(rope.FromString(tt.text), tt.at))
		})
	}
}

func TestBoundariesAcrossChunks(t *testing.T) {
	// Long runs of combining marks straddle several chunk seams.
	cluster := "e" + strings.Repeat("\u0301", 150)
	text := strings.Repeat("ab", 100) + cluster + "z"
	r := rope.FromString(text)
	require.Greater(t, r.ChunkCount(), 1)

	start := 200
	end := start + 151
	assert.Equal(t, end, NextBoundary(r, start))
	assert.Equal(t, start, PrevBoundary(r, end))
	assert.Equal(t, end+1, NextBoundary(r, end))
	assert.Equal(t, end, PrevBoundary(r, end+1))
}

func TestBoundaryRoundTrip(t *testing.T) {
	text := strings.Repeat("héllo e\u0301 \r\n\U0001F1E9\U0001F1EA 世界\t\n", 40)
	r := rope.FromString(text)

	var stops []int
	for i := 0; i < r.LenChars(); {
		stops = append(stops, i)
		next := NextBoundary(r, i)
		require.Greater(t, next, i)
		i = next
	}
	stops = append(stops, r.LenChars())

	for k := 1; k < len(stops); k++ {
		assert.Equal(t, stops[k-1], PrevBoundary(r, stops[k]), "stop %d", stops[k])
		assert.True(t, IsBoundary(r, stops[k]))
	}
	assert.Equal(t, Count(text), len(stops)-1)
}

func TestIsBoundary(t *testing.T) {
	r := rope.FromString("e\u0301\r\n")
	assert.True(t, IsBoundary(r, 0))
	assert.False(t, IsBoundary(r, 1))
	assert.True(t, IsBoundary(r, 2))
	assert.False(t, IsBoundary(r, 3))
	assert.True(t, IsBoundary(r, 4))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 3, Width("abc"))
	assert.Equal(t, 4, Width("世界"))
}

package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/rope"
)

func pos(line, col int) Position {
	return NewPosition(line, col)
}

func TestFromCharIdx(t *testing.T) {
	r := rope.FromString("ab\r\ncd\nwörld")

	tests := []struct {
		idx  int
		want Position
	}{
		{0, pos(0, 0)},
		{2, pos(0, 2)},
		{3, pos(0, 3)},
		{4, pos(1, 0)},
		{6, pos(1, 2)},
		{7, pos(2, 0)},
		{12, pos(2, 5)},
		{99, pos(2, 5)},
		{-1, pos(0, 0)},
	}
	for _, tt := range tests {
		got := FromCharIdx(r, tt.idx)
		assert.True(t, tt.want.Equals(got), "idx %d: got %s want %s", tt.idx, got, tt.want)
		assert.Equal(t, got.Column, got.VCol)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	r := rope.FromString("héllo\nwörld\r\n\rend")
	for i := 0; i <= r.LenChars()+3; i++ {
		p := FromCharIdx(r, i)
		assert.Equal(t, min(i, r.LenChars()), p.CharIdx(r), "idx %d", i)
	}
}

func TestPositionCompareIgnoresVCol(t *testing.T) {
	a := Position{Line: 1, Column: 2, VCol: 9}
	b := Position{Line: 1, Column: 2, VCol: 0}
	assert.True(t, a.Equals(b))
	assert.Equal(t, 0, a.Compare(b))

	assert.Equal(t, -1, pos(0, 5).Compare(pos(1, 0)))
	assert.Equal(t, 1, pos(2, 1).Compare(pos(2, 0)))
	assert.True(t, pos(0, 1).Before(pos(0, 2)))
	assert.True(t, pos(3, 0).After(pos(2, 8)))
	assert.Equal(t, pos(0, 1), MinPosition(pos(0, 1), pos(0, 2)))
	assert.Equal(t, pos(0, 2), MaxPosition(pos(0, 1), pos(0, 2)))
}

func TestSelectionBounds(t *testing.T) {
	fwd := NewSelection(pos(0, 1), pos(2, 0))
	back := fwd.Flip()

	assert.Equal(t, pos(0, 1), fwd.Start())
	assert.Equal(t, pos(2, 0), fwd.End())
	assert.Equal(t, fwd.Start(), back.Start())
	assert.Equal(t, fwd.End(), back.End())
	assert.True(t, fwd.IsForward())
	assert.False(t, back.IsForward())
	assert.True(t, fwd.IsMultiLine())
	assert.False(t, fwd.IsEmpty())
	assert.True(t, fwd.Collapse().IsEmpty())
	assert.Equal(t, pos(2, 0), fwd.Collapse().Head)
}

func TestCollidesWith(t *testing.T) {
	tests := []struct {
		name string
		a, b Selection
		want bool
	}{
		{"overlap", NewSelection(pos(0, 0), pos(0, 5)), NewSelection(pos(0, 3), pos(0, 8)), true},
		{"contained", NewSelection(pos(0, 0), pos(0, 9)), NewSelection(pos(0, 3), pos(0, 4)), true},
		{"disjoint", NewSelection(pos(0, 0), pos(0, 2)), NewSelection(pos(0, 4), pos(0, 6)), false},
		{"touching ranges", NewSelection(pos(0, 0), pos(0, 3)), NewSelection(pos(0, 3), pos(0, 6)), false},
		{"cursor at range end", NewSelection(pos(0, 0), pos(0, 3)), NewCursorSelection(pos(0, 3)), false},
		{"cursor at range start", NewCursorSelection(pos(0, 3)), NewSelection(pos(0, 3), pos(0, 6)), false},
		{"cursor inside range", NewSelection(pos(0, 0), pos(0, 3)), NewCursorSelection(pos(0, 2)), true},
		{"range over cursor", NewSelection(pos(0, 3), pos(0, 6)), NewCursorSelection(pos(0, 3)), true},
		{"same cursors", NewCursorSelection(pos(1, 1)), NewCursorSelection(pos(1, 1)), true},
		{"different cursors", NewCursorSelection(pos(1, 1)), NewCursorSelection(pos(1, 2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.CollidesWith(tt.b))
		})
	}
}

func TestMergeWithKeepsDirection(t *testing.T) {
	fwd := NewSelection(pos(0, 0), pos(0, 5))
	other := NewSelection(pos(0, 8), pos(0, 3))

	m := fwd.MergeWith(other)
	assert.Equal(t, pos(0, 0), m.Tail)
	assert.Equal(t, pos(0, 8), m.Head)

	back := fwd.Flip().MergeWith(other)
	assert.Equal(t, pos(0, 8), back.Tail)
	assert.Equal(t, pos(0, 0), back.Head)

	// A bare cursor adopts the direction of what it absorbs.
	c := NewCursorSelection(pos(0, 3)).MergeWith(NewSelection(pos(0, 6), pos(0, 3)))
	assert.Equal(t, pos(0, 3), c.Head)
	assert.Equal(t, pos(0, 6), c.Tail)
}

func TestSelectionSetMerge(t *testing.T) {
	ss := NewSelectionSetFromSlice([]Selection{
		NewCursorSelection(pos(2, 0)),
		NewCursorSelection(pos(0, 0)),
		NewCursorSelection(pos(0, 0)),
		NewSelection(pos(1, 0), pos(1, 4)),
		NewSelection(pos(1, 2), pos(1, 6)),
		NewSelection(pos(1, 6), pos(1, 8)),
	})

	want := []Selection{
		NewCursorSelection(pos(0, 0)),
		NewSelection(pos(1, 0), pos(1, 6)),
		NewSelection(pos(1, 6), pos(1, 8)),
		NewCursorSelection(pos(2, 0)),
	}
	require.Equal(t, len(want), ss.Len())
	for i, w := range want {
		assert.True(t, w.Equals(ss.Get(i)), "index %d: got %s want %s", i, ss.Get(i), w)
	}
	assert.True(t, ss.IsMerged())
}

func TestSelectionSetIdenticalCursors(t *testing.T) {
	ss := NewSelectionSet(NewCursorSelection(pos(0, 0)))
	ss.Push(NewCursorSelection(pos(0, 0)))
	assert.False(t, ss.IsMerged())

	ss.Merge()
	assert.Equal(t, 1, ss.Len())
	assert.Equal(t, pos(0, 0), ss.Main().Head)
}

func TestSelectionSetNeverEmpty(t *testing.T) {
	ss := NewSelectionSetFromSlice(nil)
	assert.Equal(t, 1, ss.Len())

	ss.Remove(0)
	assert.Equal(t, 1, ss.Len())

	ss.SetAll(nil)
	assert.Equal(t, 1, ss.Len())
}

func TestSelectionSetMinMax(t *testing.T) {
	ss := NewSelectionSet(NewCursorSelection(pos(3, 1)))
	ss.Push(NewSelection(pos(0, 2), pos(1, 0)))
	ss.Push(NewCursorSelection(pos(5, 0)))

	assert.Equal(t, pos(0, 2), ss.Min().Start())
	assert.Equal(t, pos(5, 0), ss.Max().End())
}

func TestSelectionSetCloneIsIndependent(t *testing.T) {
	ss := NewSelectionSet(NewCursorSelection(pos(0, 0)))
	clone := ss.Clone()
	clone.Set(0, NewCursorSelection(pos(4, 4)))

	assert.Equal(t, pos(0, 0), ss.Main().Head)
	assert.False(t, ss.Equals(clone))
	assert.True(t, ss.Equals(ss.Clone()))
}

func TestMapInPlace(t *testing.T) {
	ss := NewSelectionSet(NewSelection(pos(0, 0), pos(0, 2)))
	ss.Push(NewSelection(pos(0, 4), pos(0, 6)))
	ss.MapInPlace(Selection.Collapse)

	require.Equal(t, 2, ss.Len())
	assert.False(t, ss.HasSelection())
	assert.Equal(t, pos(0, 2), ss.Get(0).Head)
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name       string
		idx        int
		start, end int
		want       int
	}{
		{"before", 2, 5, 8, 2},
		{"at start", 5, 5, 8, 5},
		{"inside", 6, 5, 8, 5},
		{"at end", 8, 5, 8, 5},
		{"after", 10, 5, 8, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustForDeletion(tt.idx, tt.start, tt.end))
		})
	}

	assert.Equal(t, 4, AdjustForInsertion(4, 5, 3))
	assert.Equal(t, 8, AdjustForInsertion(5, 5, 3))
	assert.Equal(t, 9, AdjustForInsertion(6, 5, 3))
}

func TestSnapshot(t *testing.T) {
	r := rope.FromString("ab\ncd\n")
	ss := NewSelectionSet(NewCursorSelection(pos(0, 1)))
	ss.Push(NewSelection(pos(1, 0), pos(1, 2)))

	snap := ss.Snapshot(r)
	assert.Equal(t, []Endpoints{{Head: 1, Tail: 1}, {Head: 5, Tail: 3}}, snap)
}

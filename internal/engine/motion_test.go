package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/inkwell/internal/engine/cursor"
)

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Direction(9).String())
}

func TestMoveVerticalKeepsVCol(t *testing.T) {
	d := newDoc("abcdef\nab\nabcdef")
	d.SetSelections([]cursor.Selection{at(0, 5)})

	d.MoveSelections(Down, false)
	assert.Equal(t, []cursor.Position{pos(1, 2)}, heads(d))
	assert.Equal(t, 5, d.MainSelection().Head.VCol)

	d.MoveSelections(Down, false)
	assert.Equal(t, []cursor.Position{pos(2, 5)}, heads(d))

	d.MoveSelections(Down, false)
	assert.Equal(t, []cursor.Position{pos(2, 5)}, heads(d), "clamped to last line")

	d.MoveSelections(Up, false)
	d.MoveSelections(Up, false)
	assert.Equal(t, []cursor.Position{pos(0, 5)}, heads(d))
	checkInvariants(t, d)
}

func TestMoveHorizontal(t *testing.T) {
	d := newDoc("e\u0301x\r\ny")
	d.MoveSelections(Right, false)
	assert.Equal(t, []cursor.Position{pos(0, 2)}, heads(d))

	d.MoveSelections(Right, false)
	d.MoveSelections(Right, false)
	assert.Equal(t, []cursor.Position{pos(1, 0)}, heads(d), "crlf is one step")

	d.MoveSelections(Left, false)
	assert.Equal(t, []cursor.Position{pos(0, 3)}, heads(d))
	assert.Equal(t, 3, d.MainSelection().Head.VCol)

	d.MoveSelections(Left, false)
	d.MoveSelections(Left, false)
	d.MoveSelections(Left, false)
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	checkInvariants(t, d)
}

func TestMoveExpand(t *testing.T) {
	d := newDoc("abc\ndef")
	d.SetSelections([]cursor.Selection{at(0, 1)})

	d.MoveSelections(Right, true)
	d.MoveSelections(Down, true)
	main := d.MainSelection()
	assert.Equal(t, pos(0, 1), cursor.Position{Line: main.Tail.Line, Column: main.Tail.Column})
	assert.Equal(t, pos(1, 2), cursor.Position{Line: main.Head.Line, Column: main.Head.Column})

	d.MoveSelections(Left, false)
	assert.True(t, d.MainSelection().IsEmpty())
	checkInvariants(t, d)
}

func TestMoveMergesCursors(t *testing.T) {
	d := newDoc("abc")
	d.SetSelections([]cursor.Selection{at(0, 0), at(0, 1)})
	d.MoveSelections(Left, false)
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	checkInvariants(t, d)
}

func TestMoveSelectionsWord(t *testing.T) {
	d := newDoc("foo bar")
	d.MoveSelectionsWord(Right, false)
	assert.Equal(t, []cursor.Position{pos(0, 3)}, heads(d))

	d.MoveSelectionsWord(Right, false)
	assert.Equal(t, []cursor.Position{pos(0, 7)}, heads(d))

	d.MoveSelectionsWord(Up, false)
	assert.Equal(t, []cursor.Position{pos(0, 7)}, heads(d))

	d.MoveSelectionsWord(Left, true)
	main := d.MainSelection()
	assert.Equal(t, 7, main.Tail.Column)
	assert.Less(t, main.Head.Column, 7)
	checkInvariants(t, d)
}

func TestPaging(t *testing.T) {
	d := newDoc("line0 xx\n1\n2\n3\n4\n5\nline6 xx")
	d.SetSelections([]cursor.Selection{at(0, 6)})

	d.PageDown(3, false)
	assert.Equal(t, []cursor.Position{pos(3, 1)}, heads(d))

	d.PageDown(100, false)
	assert.Equal(t, []cursor.Position{pos(6, 6)}, heads(d))

	d.PageUp(2, true)
	main := d.MainSelection()
	assert.Equal(t, 6, main.Tail.Line)
	assert.Equal(t, pos(4, 1), cursor.Position{Line: main.Head.Line, Column: main.Head.Column})

	d.PageUp(-5, false)
	assert.Equal(t, []cursor.Position{pos(4, 1)}, heads(d))

	d.PageUp(100, false)
	assert.Equal(t, []cursor.Position{pos(0, 6)}, heads(d))
	checkInvariants(t, d)
}

func TestHomeToggles(t *testing.T) {
	d := newDoc("    foo")
	d.SetSelections([]cursor.Selection{at(0, 7)})

	for _, want := range []int{4, 0, 4} {
		d.Home(false)
		assert.Equal(t, []cursor.Position{pos(0, want)}, heads(d))
	}
	checkInvariants(t, d)
}

func TestHomeWithoutIndent(t *testing.T) {
	d := newDoc("foo")
	d.SetSelections([]cursor.Selection{at(0, 2)})
	d.Home(false)
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	d.Home(false)
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
}

func TestEnd(t *testing.T) {
	d := newDoc("ab\r\ncde\nf")
	d.SetSelections([]cursor.Selection{at(0, 0), at(1, 1)})
	d.End(false)
	assert.Equal(t, []cursor.Position{pos(0, 2), pos(1, 3)}, heads(d))

	d.SetSelections([]cursor.Selection{at(2, 0)})
	d.End(true)
	main := d.MainSelection()
	assert.Equal(t, 0, main.Tail.Column)
	assert.Equal(t, 1, main.Head.Column)
	checkInvariants(t, d)
}

func TestDuplicateSelection(t *testing.T) {
	d := newDoc("aaaa\nbb\ncccc")
	d.SetSelections([]cursor.Selection{at(0, 3)})

	d.DuplicateSelection(Down)
	assert.Equal(t, []cursor.Position{pos(0, 3), pos(1, 2)}, heads(d))

	d.DuplicateSelection(Down)
	assert.Equal(t, []cursor.Position{pos(0, 3), pos(1, 2), pos(2, 3)}, heads(d))

	d.DuplicateSelection(Down)
	assert.Len(t, heads(d), 3, "no line below")

	d.DuplicateSelection(Up)
	assert.Len(t, heads(d), 3, "no line above")

	d.DuplicateSelection(Left)
	assert.Len(t, heads(d), 3)
	checkInvariants(t, d)
}

func TestDuplicateSelectionUpRange(t *testing.T) {
	d := newDoc("abc\nabc\nabc")
	d.SetSelections([]cursor.Selection{span(2, 0, 2, 2)})

	d.DuplicateSelection(Up)
	sels := d.Selections().All()
	assert.Len(t, sels, 2)
	assert.Equal(t, 1, sels[0].Start().Line)
	assert.Equal(t, 2, sels[0].End().Column)

	d.Insert("X")
	assert.Equal(t, "abc\nXc\nXc", d.Text())
	checkInvariants(t, d)
}

func TestMotionAmendsHistory(t *testing.T) {
	d := newDoc("abc")
	d.MoveSelections(Right, false)
	assert.False(t, d.CanUndo())
	checkInvariants(t, d)
}

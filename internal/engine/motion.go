package engine

import (
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/grapheme"
)

// Direction is a cursor motion direction.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (dir Direction) String() string {
	switch dir {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// moveHeads replaces the head of every selection with f(head). When
// expand is false the tail follows the head.
func (d *Document) moveHeads(expand bool, f func(cursor.Position) cursor.Position) {
	d.selections.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		head := f(sel.Head)
		if expand {
			return sel.WithHead(head)
		}
		return cursor.NewCursorSelection(head)
	})
}

// vertical returns p moved delta lines, clamped to the document, aiming
// for its virtual column.
func (d *Document) vertical(p cursor.Position, delta int) cursor.Position {
	line := min(max(p.Line+delta, 0), d.text.LenLines()-1)
	return cursor.Position{Line: line, Column: min(p.VCol, d.lineLen(line)), VCol: p.VCol}
}

// MoveSelections moves every head one step in dir. Vertical moves keep
// the virtual column; horizontal moves step over whole graphemes.
func (d *Document) MoveSelections(dir Direction, expand bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("move")()

	d.moveHeads(expand, func(p cursor.Position) cursor.Position {
		switch dir {
		case Up:
			return d.vertical(p, -1)
		case Down:
			return d.vertical(p, 1)
		case Left:
			return cursor.FromCharIdx(d.text, grapheme.PrevBoundary(d.text, d.charIdx(p)))
		case Right:
			return cursor.FromCharIdx(d.text, grapheme.NextBoundary(d.text, d.charIdx(p)))
		}
		return p
	})
}

// MoveSelectionsWord moves every head to the previous or next word
// boundary. Vertical directions are ignored.
func (d *Document) MoveSelectionsWord(dir Direction, expand bool) {
	if dir != Left && dir != Right {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("move word")()

	d.moveHeads(expand, func(p cursor.Position) cursor.Position {
		idx := d.charIdx(p)
		if dir == Left {
			return cursor.FromCharIdx(d.text, grapheme.PrevWordBoundary(d.text, idx))
		}
		return cursor.FromCharIdx(d.text, grapheme.NextWordBoundary(d.text, idx))
	})
}

// PageUp moves every head n lines up, keeping the virtual column.
func (d *Document) PageUp(n int, expand bool) {
	d.page(-max(n, 0), expand)
}

// PageDown moves every head n lines down, keeping the virtual column.
func (d *Document) PageDown(n int, expand bool) {
	d.page(max(n, 0), expand)
}

func (d *Document) page(delta int, expand bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("page")()

	d.moveHeads(expand, func(p cursor.Position) cursor.Position {
		return d.vertical(p, delta)
	})
}

// Home moves every head to the first non-whitespace char of its line, or
// to column 0 when it is already there.
func (d *Document) Home(expand bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("home")()

	d.moveHeads(expand, func(p cursor.Position) cursor.Position {
		first := grapheme.LineStartBoundary(d.text, p.Line)
		if p.Column == first {
			return cursor.NewPosition(p.Line, 0)
		}
		return cursor.NewPosition(p.Line, first)
	})
}

// End moves every head to the end of its line, before the line break.
func (d *Document) End(expand bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("end")()

	d.moveHeads(expand, func(p cursor.Position) cursor.Position {
		return cursor.NewPosition(p.Line, d.lineLen(p.Line))
	})
}

// DuplicateSelection adds a copy of the last selection one line down, or
// of the first selection one line up. Nothing is added at the document
// edge.
func (d *Document) DuplicateSelection(dir Direction) {
	if dir != Up && dir != Down {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("duplicate selection")()

	delta := 1
	src := d.selections.Max()
	if dir == Up {
		delta = -1
		src = d.selections.Min()
	}

	dup := cursor.Selection{
		Head: d.vertical(src.Head, delta),
		Tail: d.vertical(src.Tail, delta),
	}
	if dup.Head.Line == src.Head.Line || dup.Tail.Line == src.Tail.Line {
		return
	}
	d.selections.Push(dup)
}

// ============================================================================
// Selection Management
// ============================================================================

// SetSelections replaces the selection set. Positions are clamped to the
// document and an empty slice yields a cursor at the origin.
func (d *Document) SetSelections(sels []cursor.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("select")()

	if len(sels) == 0 {
		sels = []cursor.Selection{{}}
	}
	clamped := make([]cursor.Selection, len(sels))
	for i, sel := range sels {
		clamped[i] = cursor.Selection{Head: d.clamp(sel.Head), Tail: d.clamp(sel.Tail)}
	}
	d.selections.SetAll(clamped)
}

// AddSelection adds sel to the selection set, merging it with any
// selection it collides with.
func (d *Document) AddSelection(sel cursor.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("select")()

	d.selections.Push(cursor.Selection{Head: d.clamp(sel.Head), Tail: d.clamp(sel.Tail)})
}

// SelectAll selects the whole document with the head at the end.
func (d *Document) SelectAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("select")()

	end := cursor.FromCharIdx(d.text, d.text.LenChars())
	d.selections.Reset(cursor.NewSelection(cursor.Position{}, end))
}

// KeepMainSelection drops every selection except the main one.
func (d *Document) KeepMainSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("select")()

	d.selections.KeepMain()
}

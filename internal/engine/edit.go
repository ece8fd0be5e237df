package engine

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/grapheme"
	"github.com/dshills/inkwell/internal/engine/history"
)

// begin opens a history group for one public operation. The returned
// func merges selections, records history and closes the group, so each
// operation is a single undo step.
func (d *Document) begin(name string) func() {
	g := d.history.GroupScope(name)
	return func() {
		d.finish()
		g.End()
	}
}

// insertAt replaces the chars in [start, end) with text and rewrites every
// selection endpoint affected by the change. It is the only way text is
// mutated by edit operations.
func (d *Document) insertAt(text string, start, end int) {
	n := d.text.LenChars()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	if start == end && text == "" {
		return
	}

	linesBefore := d.text.LenLines()
	firstLine := d.text.CharToLine(start)

	if start < end {
		snap := d.selections.Snapshot(d.text)
		d.text = d.text.Remove(start, end)
		d.remap(snap, func(i int) int { return cursor.AdjustForDeletion(i, start, end) })
	}

	inserted := utf8.RuneCountInString(text)
	if inserted > 0 {
		snap := d.selections.Snapshot(d.text)
		d.text = d.text.Insert(start, text)
		d.remap(snap, func(i int) int { return cursor.AdjustForInsertion(i, start, inserted) })
	}

	lastLine := d.text.CharToLine(start + inserted)
	if d.text.LenLines() != linesBefore {
		lastLine = d.text.LenLines() - 1
	}
	d.dirty.add(firstLine, lastLine)

	d.version++
	d.edited = true
	d.history.Push(history.NewSnapshot(d.text, d.selections))
}

// remap rewrites selection endpoints whose char index is changed by f, or
// that the edit left between a CR and its LF. Other endpoints keep their
// position and virtual column.
func (d *Document) remap(snap []cursor.Endpoints, f func(int) int) {
	for i, ep := range snap {
		sel := d.selections.Get(i)
		if h := f(ep.Head); h != ep.Head || d.insideCRLF(h) {
			sel.Head = d.positionAt(h)
		}
		if t := f(ep.Tail); t != ep.Tail || d.insideCRLF(t) {
			sel.Tail = d.positionAt(t)
		}
		d.selections.Set(i, sel)
	}
}

// positionAt returns the position of char index idx, moved off the middle
// of a CRLF pair.
func (d *Document) positionAt(idx int) cursor.Position {
	if d.insideCRLF(idx) {
		idx--
	}
	return cursor.FromCharIdx(d.text, idx)
}

// insideCRLF reports whether idx falls between a CR and the LF after it.
func (d *Document) insideCRLF(idx int) bool {
	if idx <= 0 {
		return false
	}
	prev, _ := d.text.CharAt(idx - 1)
	next, ok := d.text.CharAt(idx)
	return ok && prev == '\r' && next == '\n'
}

// collapseOnHead turns selection i into a cursor at its head with the
// virtual column reset.
func (d *Document) collapseOnHead(i int) cursor.Selection {
	sel := d.selections.Get(i)
	d.selections.Set(i, cursor.NewCursorSelection(sel.Head.WithVCol()))
	return sel
}

// ============================================================================
// Edit Operations
// ============================================================================

// Insert replaces every selection with text. Each selection becomes a
// cursor after its inserted text.
func (d *Document) Insert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("insert")()

	for i := 0; i < d.selections.Len(); i++ {
		sel := d.selections.Get(i)
		start, end := d.charIdx(sel.Start()), d.charIdx(sel.End())
		d.collapseOnHead(i)
		d.insertAt(text, start, end)
	}
}

// InsertNewline inserts the document's line ending at every selection.
func (d *Document) InsertNewline() {
	d.Insert(d.LineEnding())
}

// Backspace deletes each selection, or the grapheme before each cursor.
func (d *Document) Backspace() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("backspace")()

	for i := 0; i < d.selections.Len(); i++ {
		sel := d.collapseOnHead(i)
		start, end := d.charIdx(sel.Start()), d.charIdx(sel.End())
		if sel.IsEmpty() {
			start = grapheme.PrevBoundary(d.text, start)
		}
		d.insertAt("", start, end)
	}
}

// Delete deletes each selection, or the grapheme after each cursor.
func (d *Document) Delete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("delete")()

	for i := 0; i < d.selections.Len(); i++ {
		sel := d.collapseOnHead(i)
		start, end := d.charIdx(sel.Start()), d.charIdx(sel.End())
		if sel.IsEmpty() {
			end = grapheme.NextBoundary(d.text, start)
		}
		d.insertAt("", start, end)
	}
}

// ReplaceAll replaces the whole text and resets the selections to a
// cursor at the origin. The replacement is recorded as one undo step.
func (d *Document) ReplaceAll(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("replace all")()

	d.insertAt(text, 0, d.text.LenChars())
	d.selections.Reset(cursor.Selection{})
}

// Indent indents the selected lines. When always is false and the main
// selection is on one line, each caret instead gets the whitespace that
// moves it to the next indent stop.
func (d *Document) Indent(always bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("indent")()

	in := d.info.Indentation
	if always || d.selections.Main().IsMultiLine() {
		unit := in.Unit()
		for _, line := range d.selectedLines() {
			at := d.text.LineToChar(line)
			d.insertAt(unit, at, at)
		}
		return
	}

	for i := 0; i < d.selections.Len(); i++ {
		head := d.selections.Get(i).Head
		unit := "\t"
		if !in.IsTab() {
			width := len(in.Unit())
			unit = strings.Repeat(" ", width-head.Column%width)
		}
		at := d.charIdx(head)
		d.insertAt(unit, at, at)
	}
}

// Deindent removes one indentation unit from the start of every selected
// line: a single tab in tab mode, otherwise up to the indent width of
// leading whitespace.
func (d *Document) Deindent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.begin("deindent")()

	in := d.info.Indentation
	width := len(in.Unit())
	for _, line := range d.selectedLines() {
		at := d.text.LineToChar(line)
		n := 0
		if in.IsTab() {
			if ch, ok := d.text.CharAt(at); ok && ch == '\t' {
				n = 1
			}
		} else {
			n = min(width, grapheme.LineStartBoundary(d.text, line))
		}
		d.insertAt("", at, at+n)
	}
}

// selectedLines returns every line touched by a selection, ascending and
// without duplicates. Selections sharing a line indent it once, so an
// indent followed by a deindent restores the text.
func (d *Document) selectedLines() []int {
	var lines []int
	for _, sel := range d.selections.All() {
		for l := sel.Start().Line; l <= sel.End().Line; l++ {
			lines = append(lines, l)
		}
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

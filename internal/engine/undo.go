package engine

import (
	"github.com/dshills/inkwell/internal/engine/history"
)

// Undo restores the text and selections recorded before the last edit.
// Returns ErrNothingToUndo at the oldest entry.
func (d *Document) Undo() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap, err := d.history.Undo()
	if err != nil {
		return err
	}
	d.restore(snap)
	return nil
}

// Redo restores the state undone by the last Undo.
// Returns ErrNothingToRedo when no undone entry remains.
func (d *Document) Redo() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap, err := d.history.Redo()
	if err != nil {
		return err
	}
	d.restore(snap)
	return nil
}

// CanUndo returns true if Undo would succeed.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo returns true if Redo would succeed.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// UndoDepth returns the number of history entries and the index of the
// current one.
func (d *Document) UndoDepth() (entries, top int) {
	return d.history.Len(), d.history.Top()
}

// ClearHistory drops every entry except the current state.
func (d *Document) ClearHistory() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history.Reset(history.NewSnapshot(d.text, d.selections))
}

// restore makes snap the live state. The snapshot keeps its own copy of
// the selections.
func (d *Document) restore(snap history.Snapshot) {
	d.text = snap.Text
	d.selections = snap.Selections.Clone()
	d.dirty.add(0, d.text.LenLines()-1)
	d.version++
}

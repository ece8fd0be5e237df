// Package history provides linear undo/redo for the text editor engine.
//
// History is a stack of whole-document snapshots. Because ropes are
// persistent, a snapshot is a pair of cheap references (text and
// selections) rather than a diff.
//
// # History Stack
//
// The entry at Top is always the current state of the document:
//
//	h := history.New(initial, 1000) // keep at most 1000 entries
//
//	h.Push(snapshot)        // discards any redo entries first
//	prev, err := h.Undo()   // moves Top down and returns the entry there
//	next, err := h.Redo()   // moves Top up again
//
// # Grouping
//
// Pushes made while a group is open collapse into a single entry, so a
// multi-cursor edit undoes as one step:
//
//	defer h.GroupScope("insert").End()
//	// ... several pushes ...
package history

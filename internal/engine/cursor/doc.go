// Package cursor provides positions and multi-selection state for text editing.
//
// The cursor package handles:
//
//   - Line/column positions with a remembered virtual column (Position)
//   - Text selections with a tail/head model (Selection)
//   - Multi-cursor support with SelectionSet
//   - Index adjustment after removals and insertions
//
// Selection Model:
//
// Selections use a tail/head model where:
//   - Tail: The position where the selection started (the anchor)
//   - Head: The current cursor position (where typing would occur)
//
// When Tail == Head, the selection is a bare cursor. The selection can
// extend forward (head after tail) or backward (head before tail), and
// merging keeps that direction.
//
// Positions compare by (line, column) only. VCol is the column vertical
// motion tries to return to and takes no part in ordering or equality.
//
// Multi-Cursor Support:
//
// SelectionSet keeps its selections:
//   - Non-empty; index 0 is the main selection
//   - Sorted by start position after Merge
//   - Free of colliding pairs after Merge
//
// Basic usage:
//
//	r := rope.FromString("ab\ncd\n")
//	ss := cursor.NewSelectionSet(cursor.NewCursorSelection(cursor.NewPosition(0, 1)))
//	ss.Push(cursor.NewCursorSelection(cursor.FromCharIdx(r, 4)))
//	ss.Merge()
//
// Thread Safety:
//
// Position and Selection are immutable value types and safe for concurrent
// use. SelectionSet is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package cursor

// Package engine provides the document model of the inkwell editor.
//
// A Document owns a rope, a non-empty set of selections, the file info
// detected on load and a linear undo history. Every edit goes through a
// single primitive that rewrites selection endpoints around the mutated
// range, so all public operations leave selections sorted and merged.
//
// # Basic Usage
//
//	d := engine.New(engine.WithContent("ab\ncd\n"))
//	d.SetSelections([]cursor.Selection{
//		cursor.NewCursorSelection(cursor.NewPosition(0, 1)),
//		cursor.NewCursorSelection(cursor.NewPosition(1, 1)),
//	})
//	d.Insert("X") // "aXb\ncXd\n"
//	_ = d.Undo()  // "ab\ncd\n"
//
// # Loading Files
//
//	d, err := engine.LoadFile("main.go", engine.WithConfig(cfg))
//
// Loading detects the encoding, byte-order mark, line ending, indentation
// and syntax of the file. Malformed input decodes with replacement
// characters; only I/O failures are returned.
//
// # Thread Safety
//
// Document methods are safe for concurrent use. Edits are serialized by a
// read-write mutex. The rope returned by Rope is persistent and may be
// read after the lock is released.
package engine

// Package rope provides an immutable rope data structure for efficient text storage and manipulation.
//
// A rope is a tree where leaf nodes contain text chunks and internal nodes
// store aggregated metrics (byte count, scalar count, line-break count). This
// implementation uses a B+ tree variant for better cache locality and
// worst-case performance.
//
// Key features:
//   - O(log n) insertion, removal and index conversion
//   - Immutable operations return new ropes; originals are never modified
//   - Byte, character (Unicode scalar) and line addressing
//   - LF, CR and CRLF are all recognised as line breaks; a CRLF pair is never
//     split across two chunks
//   - Copy-on-write semantics enable cheap snapshots
//   - Thread-safe for concurrent read access
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Remove(0, 7)             // "world"
//	text := r.String()             // "world"
//
// All indices taken by the char-addressed methods count Unicode scalar values,
// not bytes and not grapheme clusters. Out of range indices are clamped.
package rope

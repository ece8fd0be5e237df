package cursor

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// Position is a line/column location in a document. Column counts chars
// (Unicode scalars) from the start of the line. VCol is the column that
// vertical motion aims for.
type Position struct {
	Line   int
	Column int
	VCol   int
}

// NewPosition creates a position whose virtual column equals its column.
func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column, VCol: column}
}

// FromCharIdx returns the position of char index idx in r. The index is
// clamped to [0, r.LenChars()].
func FromCharIdx(r rope.Rope, idx int) Position {
	idx = min(max(idx, 0), r.LenChars())
	line := r.CharToLine(idx)
	col := idx - r.LineToChar(line)
	return Position{Line: line, Column: col, VCol: col}
}

// CharIdx returns the char index of p in r.
func (p Position) CharIdx(r rope.Rope) int {
	return r.LineToChar(p.Line) + p.Column
}

// WithVCol returns p with its virtual column reset to its column.
func (p Position) WithVCol() Position {
	p.VCol = p.Column
	return p
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// ordering by line and then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Equals returns true if p and other share line and column.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

// Before returns true if p is before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p is after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// MinPosition returns the earlier of a and b.
func MinPosition(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPosition returns the later of a and b.
func MaxPosition(a, b Position) Position {
	if b.After(a) {
		return b
	}
	return a
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

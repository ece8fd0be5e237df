package cursor

import "fmt"

// Selection represents a range of selected text.
// Tail is where the selection started; Head is the current cursor position.
// When Tail == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Head Position
	Tail Position
}

// NewSelection creates a selection from tail to head.
func NewSelection(tail, head Position) Selection {
	return Selection{Head: head, Tail: tail}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Position) Selection {
	return Selection{Head: p, Tail: p}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Head.Equals(s.Tail)
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	return MinPosition(s.Head, s.Tail)
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	if s.Head.After(s.Tail) {
		return s.Head
	}
	return s.Tail
}

// IsForward returns true if the head is not before the tail.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Tail)
}

// IsMultiLine returns true if the selection spans more than one line.
func (s Selection) IsMultiLine() bool {
	return s.Head.Line != s.Tail.Line
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Head: s.Head, Tail: s.Head}
}

// WithHead returns the selection with the head moved to p.
func (s Selection) WithHead(p Position) Selection {
	return Selection{Head: p, Tail: s.Tail}
}

// Flip returns a selection with tail and head swapped.
func (s Selection) Flip() Selection {
	return Selection{Head: s.Tail, Tail: s.Head}
}

// CollidesWith reports whether other, which must not start before s,
// overlaps s. Selections that only touch do not collide, except two bare
// cursors at the same position.
func (s Selection) CollidesWith(other Selection) bool {
	if s.End().After(other.Start()) {
		return true
	}
	return s.IsEmpty() && other.IsEmpty() && s.Head.Equals(other.Head)
}

// MergeWith returns a selection covering both s and other. The result keeps
// the direction of s, or of other when s is a bare cursor.
func (s Selection) MergeWith(other Selection) Selection {
	start := MinPosition(s.Start(), other.Start())
	end := MaxPosition(s.End(), other.End())

	forward := s.IsForward()
	if s.IsEmpty() {
		forward = other.IsForward()
	}
	if forward {
		return Selection{Head: end, Tail: start}
	}
	return Selection{Head: start, Tail: end}
}

// Equals returns true if both selections have equal heads and tails.
func (s Selection) Equals(other Selection) bool {
	return s.Head.Equals(other.Head) && s.Tail.Equals(other.Tail)
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection(%s->%s)", s.Tail, s.Head)
}

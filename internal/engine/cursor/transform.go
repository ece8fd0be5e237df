package cursor

import "github.com/dshills/inkwell/internal/engine/rope"

// AdjustForDeletion updates a char index after the chars in [start, end)
// were removed. Indices inside the removed range move to start.
func AdjustForDeletion(idx, start, end int) int {
	if idx <= start {
		return idx
	}
	if idx < end {
		return start
	}
	return idx - (end - start)
}

// AdjustForInsertion updates a char index after n chars were inserted at
// at. Indices at or after the insertion point shift right.
func AdjustForInsertion(idx, at, n int) int {
	if idx < at {
		return idx
	}
	return idx + n
}

// Endpoints is a selection flattened to absolute char indices.
type Endpoints struct {
	Head int
	Tail int
}

// Snapshot flattens every selection of ss to char indices.
func (ss *SelectionSet) Snapshot(r rope.Rope) []Endpoints {
	out := make([]Endpoints, len(ss.selections))
	for i, sel := range ss.selections {
		out[i] = Endpoints{Head: sel.Head.CharIdx(r), Tail: sel.Tail.CharIdx(r)}
	}
	return out
}

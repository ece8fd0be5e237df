package cursor

import "sort"

// SelectionSet manages multiple selections. It is never empty; the first
// selection is the main selection. Mutators leave ordering alone until
// Merge is called, so callers can rewrite selections by index while an
// edit is in flight.
type SelectionSet struct {
	selections []Selection
}

// NewSelectionSet creates a selection set with a single selection.
func NewSelectionSet(initial Selection) *SelectionSet {
	return &SelectionSet{
		selections: []Selection{initial},
	}
}

// NewSelectionSetFromSlice creates a merged selection set from a slice of
// selections. An empty slice yields a cursor at the origin.
func NewSelectionSetFromSlice(selections []Selection) *SelectionSet {
	if len(selections) == 0 {
		return NewSelectionSet(Selection{})
	}
	ss := &SelectionSet{
		selections: make([]Selection, len(selections)),
	}
	copy(ss.selections, selections)
	ss.Merge()
	return ss
}

// Main returns the main (first) selection.
func (ss *SelectionSet) Main() Selection {
	return ss.selections[0]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the SelectionSet.
func (ss *SelectionSet) All() []Selection {
	result := make([]Selection, len(ss.selections))
	copy(result, ss.selections)
	return result
}

// Len returns the number of selections.
func (ss *SelectionSet) Len() int {
	return len(ss.selections)
}

// IsMulti returns true if there are multiple selections.
func (ss *SelectionSet) IsMulti() bool {
	return len(ss.selections) > 1
}

// Get returns the selection at the given index.
// Returns an empty selection if index is out of range.
func (ss *SelectionSet) Get(index int) Selection {
	if index < 0 || index >= len(ss.selections) {
		return Selection{}
	}
	return ss.selections[index]
}

// Set replaces the selection at index. Out of range indices are ignored.
func (ss *SelectionSet) Set(index int, sel Selection) {
	if index < 0 || index >= len(ss.selections) {
		return
	}
	ss.selections[index] = sel
}

// Push appends a selection without merging.
func (ss *SelectionSet) Push(sel Selection) {
	ss.selections = append(ss.selections, sel)
}

// Reset replaces all selections with a single selection.
func (ss *SelectionSet) Reset(sel Selection) {
	ss.selections = []Selection{sel}
}

// SetAll replaces all selections and merges them.
func (ss *SelectionSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		ss.selections = []Selection{{}}
		return
	}
	ss.selections = make([]Selection, len(sels))
	copy(ss.selections, sels)
	ss.Merge()
}

// KeepMain drops every selection except the main one.
func (ss *SelectionSet) KeepMain() {
	ss.selections = ss.selections[:1]
}

// Remove removes the selection at the given index.
// If it's the last selection, it's replaced with a cursor at the origin.
func (ss *SelectionSet) Remove(index int) {
	if index < 0 || index >= len(ss.selections) {
		return
	}
	ss.selections = append(ss.selections[:index], ss.selections[index+1:]...)
	if len(ss.selections) == 0 {
		ss.selections = []Selection{{}}
	}
}

// MapInPlace applies f to each selection in place and merges the result.
func (ss *SelectionSet) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range ss.selections {
		ss.selections[i] = f(sel)
	}
	ss.Merge()
}

// HasSelection returns true if any selection is non-empty (has extent).
func (ss *SelectionSet) HasSelection() bool {
	for _, sel := range ss.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Min returns the selection with the earliest start.
func (ss *SelectionSet) Min() Selection {
	best := ss.selections[0]
	for _, sel := range ss.selections[1:] {
		if sel.Start().Before(best.Start()) {
			best = sel
		}
	}
	return best
}

// Max returns the selection with the latest end.
func (ss *SelectionSet) Max() Selection {
	best := ss.selections[0]
	for _, sel := range ss.selections[1:] {
		if sel.End().After(best.End()) {
			best = sel
		}
	}
	return best
}

// Clone returns a deep copy of the selection set.
func (ss *SelectionSet) Clone() *SelectionSet {
	clone := &SelectionSet{
		selections: make([]Selection, len(ss.selections)),
	}
	copy(clone.selections, ss.selections)
	return clone
}

// Merge sorts selections by start and folds each colliding right neighbour
// into its left neighbour.
func (ss *SelectionSet) Merge() {
	if len(ss.selections) <= 1 {
		return
	}

	// Sort by start position; on equal starts the larger range first.
	sort.SliceStable(ss.selections, func(i, j int) bool {
		si, sj := ss.selections[i].Start(), ss.selections[j].Start()
		if c := si.Compare(sj); c != 0 {
			return c < 0
		}
		return ss.selections[i].End().After(ss.selections[j].End())
	})

	merged := ss.selections[:1]
	for _, sel := range ss.selections[1:] {
		last := &merged[len(merged)-1]
		if last.CollidesWith(sel) {
			*last = last.MergeWith(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	ss.selections = merged
}

// IsMerged reports whether the set is sorted and free of collisions.
func (ss *SelectionSet) IsMerged() bool {
	for i := 1; i < len(ss.selections); i++ {
		prev, cur := ss.selections[i-1], ss.selections[i]
		if cur.Start().Before(prev.Start()) || prev.CollidesWith(cur) {
			return false
		}
	}
	return true
}

// Equals returns true if two selection sets have the same selections.
func (ss *SelectionSet) Equals(other *SelectionSet) bool {
	if other == nil {
		return false
	}
	if ss.Len() != other.Len() {
		return false
	}
	for i, sel := range ss.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}

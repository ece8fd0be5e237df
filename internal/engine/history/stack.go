package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/rope"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Snapshot is the document state recorded by one history entry.
type Snapshot struct {
	Text       rope.Rope
	Selections *cursor.SelectionSet

	// Revision uniquely identifies the entry.
	Revision uuid.UUID

	Description string
	Timestamp   time.Time
}

// NewSnapshot captures text and a copy of selections.
func NewSnapshot(text rope.Rope, selections *cursor.SelectionSet) Snapshot {
	return Snapshot{
		Text:       text,
		Selections: selections.Clone(),
		Revision:   uuid.New(),
		Timestamp:  time.Now(),
	}
}

// History manages a linear undo/redo stack of snapshots.
type History struct {
	mu sync.Mutex

	entries []Snapshot
	top     int

	// Grouping state
	groupDepth  int
	groupName   string
	groupPushed bool

	// Configuration; zero means unlimited.
	maxEntries int
}

// New creates a history whose only entry is initial.
func New(initial Snapshot, maxEntries int) *History {
	return &History{
		entries:    []Snapshot{initial},
		maxEntries: max(maxEntries, 0),
	}
}

// Current returns the entry at Top.
func (h *History) Current() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.top]
}

// Push records s as the new current state. Entries above Top are discarded
// first. Inside a group only the first push adds an entry; later pushes
// overwrite it.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth > 0 {
		if s.Description == "" {
			s.Description = h.groupName
		}
		if h.groupPushed {
			h.entries[h.top] = s
			return
		}
		h.groupPushed = true
	}

	h.entries = append(h.entries[:h.top+1], s)
	h.top++

	// Enforce max entries
	if h.maxEntries > 0 && len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		h.entries = append([]Snapshot(nil), h.entries[excess:]...)
		h.top -= excess
	}
}

// Amend replaces the selections of the current entry with a copy of
// selections. Used after changes that move selections without editing.
func (h *History) Amend(selections *cursor.SelectionSet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.top].Selections = selections.Clone()
}

// Undo moves Top down one entry and returns the state found there.
func (h *History) Undo() (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.top == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	h.top--
	h.groupPushed = false
	return h.entries[h.top], nil
}

// Redo moves Top up one entry and returns the state found there.
func (h *History) Redo() (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.top+1 >= len(h.entries) {
		return Snapshot{}, ErrNothingToRedo
	}
	h.top++
	h.groupPushed = false
	return h.entries[h.top], nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.top > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.top+1 < len(h.entries)
}

// Top returns the index of the current entry.
func (h *History) Top() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.top
}

// Len returns the number of entries, including the current one.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Snapshot, len(h.entries))
	copy(out, h.entries)
	return out
}

// BeginGroup opens a group. Groups nest; only the outermost name is kept.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		h.groupName = name
		h.groupPushed = false
	}
	h.groupDepth++
}

// EndGroup closes the innermost open group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		return
	}
	h.groupDepth--
	if h.groupDepth == 0 {
		h.groupName = ""
		h.groupPushed = false
	}
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupDepth > 0
}

// Reset discards all entries and starts over from initial.
func (h *History) Reset(initial Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []Snapshot{initial}
	h.top = 0
	h.groupDepth = 0
	h.groupName = ""
	h.groupPushed = false
}

// SetMaxEntries changes the maximum number of entries; zero means
// unlimited. If the stack is larger, the oldest entries are removed, never
// the current one.
func (h *History) SetMaxEntries(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max(n, 0)
	if h.maxEntries == 0 || len(h.entries) <= h.maxEntries {
		return
	}
	excess := min(len(h.entries)-h.maxEntries, h.top)
	h.entries = append([]Snapshot(nil), h.entries[excess:]...)
	h.top -= excess
}

// MaxEntries returns the maximum number of entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

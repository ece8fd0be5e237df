package engine

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/fileinfo"
	"github.com/dshills/inkwell/internal/engine/grapheme"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/logging"
)

// Document is an editable text document with multiple selections and
// linear undo.
type Document struct {
	mu sync.RWMutex

	id         uuid.UUID
	text       rope.Rope
	selections *cursor.SelectionSet
	info       fileinfo.FileInfo
	history    *history.History

	// version counts mutations, including undo and redo.
	version uint64
	// edited is set by insertAt during the current operation.
	edited bool
	dirty  lineRange

	tabWidth int
	maxUndo  int
	log      *logging.Logger
}

// lineRange is an inclusive range of lines; empty when ok is false.
type lineRange struct {
	start, end int
	ok         bool
}

func (lr *lineRange) add(start, end int) {
	if !lr.ok {
		*lr = lineRange{start: start, end: end, ok: true}
		return
	}
	lr.start = min(lr.start, start)
	lr.end = max(lr.end, end)
}

// New creates a document with the given options. Without WithContent the
// document is empty. The selection set starts as a cursor at the origin.
func New(opts ...Option) *Document {
	d := &Document{
		id:       uuid.New(),
		text:     rope.New(),
		info:     fileinfo.Default(),
		tabWidth: DefaultTabWidth,
		maxUndo:  DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logging.Default()
	}
	d.log = d.log.WithComponent("engine")

	d.selections = cursor.NewSelectionSet(cursor.Selection{})
	d.history = history.New(history.NewSnapshot(d.text, d.selections), d.maxUndo)
	d.dirty.add(0, d.text.LenLines()-1)
	return d
}

// Load reads r to the end and creates a document from its bytes. The
// filename is only used to pick a syntax and may be empty. Options are
// applied after detection and override detected values.
func Load(r io.Reader, filename string, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoad, displayName(filename), err)
	}

	res := fileinfo.Detect(filename, data)
	all := append([]Option{withRope(res.Text), WithFileInfo(res.Info)}, opts...)
	d := New(all...)

	d.log.Debug().
		Str("file", displayName(filename)).
		Str("encoding", res.Info.Encoding.String()).
		Bool("bom", len(res.Info.BOM) > 0).
		Str("line_ending", res.Info.LineEnding.Name()).
		Stringer("indentation", res.Info.Indentation).
		Str("syntax", res.Info.SyntaxID).
		Int("lines", d.text.LenLines()).
		Msg("document loaded")
	if res.Replacements > 0 {
		d.log.Warn().
			Str("file", displayName(filename)).
			Str("encoding", res.Info.Encoding.String()).
			Int("replacements", res.Replacements).
			Msg("malformed input replaced")
	}
	return d, nil
}

// LoadFile opens and loads the file at path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(f, path, opts...)
}

func displayName(filename string) string {
	if filename == "" {
		return "<reader>"
	}
	return filename
}

// Save writes the document in its file encoding, prefixed with its BOM.
func (d *Document) Save(w io.Writer) error {
	d.mu.RLock()
	text, info := d.text, d.info
	d.mu.RUnlock()

	data, err := info.Encode(text.String())
	if err != nil {
		return fmt.Errorf("encoding as %s: %w", info.Encoding, err)
	}
	_, err = w.Write(data)
	return err
}

// ============================================================================
// Read Operations
// ============================================================================

// ID returns the unique identifier of the document.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Text returns the full document content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text.String()
}

// Rope returns the current text. The rope is immutable and stays valid
// after later edits.
func (d *Document) Rope() rope.Rope {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text.LenLines()
}

// LineLenChars returns the number of chars on line, excluding its break.
func (d *Document) LineLenChars(line int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineLen(line)
}

// LineStartBoundary returns the number of leading whitespace chars on
// line.
func (d *Document) LineStartBoundary(line int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return grapheme.LineStartBoundary(d.text, line)
}

// Selections returns a copy of the selection set.
func (d *Document) Selections() *cursor.SelectionSet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selections.Clone()
}

// MainSelection returns the main selection.
func (d *Document) MainSelection() cursor.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selections.Main()
}

// FileInfo returns the file info of the document.
func (d *Document) FileInfo() fileinfo.FileInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.info
}

// SetFileInfo replaces the file info. The text is not converted.
func (d *Document) SetFileInfo(info fileinfo.FileInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.info = info
}

// LineEnding returns the characters a new line should be written with.
func (d *Document) LineEnding() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.info.LineEnding.Sequence()
}

// Indentation returns the indentation unit used by Indent.
func (d *Document) Indentation() fileinfo.Indentation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.info.Indentation
}

// TabWidth returns the display width of a tab.
func (d *Document) TabWidth() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tabWidth
}

// Version returns a counter that increases with every mutation.
func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Revision returns the identifier of the current history entry.
func (d *Document) Revision() uuid.UUID {
	return d.history.Current().Revision
}

// TakeDirty returns the inclusive line range changed since the previous
// call and clears it. ok is false when nothing changed.
func (d *Document) TakeDirty() (start, end int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lr := d.dirty
	d.dirty = lineRange{}
	return lr.start, lr.end, lr.ok
}

// ============================================================================
// Internal helpers; callers hold d.mu.
// ============================================================================

// lineLen returns the chars on line excluding a trailing LF, CR or CRLF.
func (d *Document) lineLen(line int) int {
	start := d.text.LineToChar(line)
	end := d.text.LineToChar(line + 1)
	n := end - start
	if n == 0 {
		return 0
	}
	switch ch, _ := d.text.CharAt(end - 1); ch {
	case '\n':
		n--
		if n > 0 {
			if prev, _ := d.text.CharAt(end - 2); prev == '\r' {
				n--
			}
		}
	case '\r':
		n--
	}
	return n
}

// charIdx converts p to a char index clamped to the document.
func (d *Document) charIdx(p cursor.Position) int {
	return min(max(p.CharIdx(d.text), 0), d.text.LenChars())
}

// clamp returns p moved inside the document, keeping its virtual column.
func (d *Document) clamp(p cursor.Position) cursor.Position {
	line := min(max(p.Line, 0), d.text.LenLines()-1)
	col := min(max(p.Column, 0), d.lineLen(line))
	return cursor.Position{Line: line, Column: col, VCol: max(p.VCol, 0)}
}

// finish merges the selections and records the operation in history.
// Operations that edited text push a snapshot; the rest amend the
// current entry so it keeps matching the live selections.
func (d *Document) finish() {
	d.selections.Merge()
	if d.edited {
		d.history.Push(history.NewSnapshot(d.text, d.selections))
		d.edited = false
		return
	}
	d.history.Amend(d.selections)
}

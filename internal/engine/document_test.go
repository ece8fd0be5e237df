package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/fileinfo"
	"github.com/dshills/inkwell/internal/logging"
)

func newDoc(content string, opts ...Option) *Document {
	opts = append([]Option{WithContent(content), WithLogger(logging.Nop())}, opts...)
	return New(opts...)
}

func at(line, col int) cursor.Selection {
	return cursor.NewCursorSelection(cursor.NewPosition(line, col))
}

func span(tl, tc, hl, hc int) cursor.Selection {
	return cursor.NewSelection(cursor.NewPosition(tl, tc), cursor.NewPosition(hl, hc))
}

func heads(d *Document) []cursor.Position {
	var out []cursor.Position
	for _, sel := range d.Selections().All() {
		out = append(out, cursor.Position{Line: sel.Head.Line, Column: sel.Head.Column})
	}
	return out
}

func pos(line, col int) cursor.Position {
	return cursor.Position{Line: line, Column: col}
}

// checkInvariants asserts the guarantees every public operation keeps.
func checkInvariants(t *testing.T, d *Document) {
	t.Helper()

	sels := d.Selections()
	require.Positive(t, sels.Len())
	all := sels.All()
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Start().Before(all[i-1].Start()), "selections not sorted: %v", all)
		assert.False(t, all[i-1].CollidesWith(all[i]), "selections collide: %v", all)
	}

	r := d.Rope()
	for _, sel := range all {
		for _, p := range []cursor.Position{sel.Head, sel.Tail} {
			require.GreaterOrEqual(t, p.Line, 0)
			require.Less(t, p.Line, r.LenLines(), "line out of range: %v", p)
			require.GreaterOrEqual(t, p.Column, 0)
			require.LessOrEqual(t, p.Column, d.LineLenChars(p.Line), "column out of range: %v", p)
		}
	}

	cur := d.history.Current()
	assert.True(t, cur.Text.Equals(r), "history top text %q != %q", cur.Text.String(), r.String())
	assert.True(t, cur.Selections.Equals(sels), "history top selections differ")
}

func TestNew(t *testing.T) {
	d := New(WithLogger(logging.Nop()))
	assert.Equal(t, "", d.Text())
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	assert.False(t, d.CanUndo())
	assert.NotEqual(t, New().ID(), d.ID())
	checkInvariants(t, d)
}

func TestNewWithOptions(t *testing.T) {
	d := newDoc("abc",
		WithTabWidth(8),
		WithIndentation(fileinfo.Tab(4)),
		WithLineEnding(fileinfo.LineEndingCRLF),
		WithMaxUndoEntries(3),
	)
	assert.Equal(t, "abc", d.Text())
	assert.Equal(t, 8, d.TabWidth())
	assert.True(t, d.Indentation().IsTab())
	assert.Equal(t, "\r\n", d.LineEnding())
	assert.Equal(t, 3, d.history.MaxEntries())
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabWidth = 2
	cfg.Editor.IndentStyle = config.IndentSpace
	cfg.Editor.IndentWidth = 2
	cfg.Editor.LineEnding = "cr"
	cfg.Editor.UndoLimit = 0
	cfg.Highlight.Syntax = "go"

	d := newDoc("", WithConfig(cfg))
	assert.Equal(t, 2, d.TabWidth())
	assert.Equal(t, fileinfo.Space(2), d.Indentation())
	assert.Equal(t, "\r", d.LineEnding())
	assert.Equal(t, "go", d.FileInfo().SyntaxID)
	assert.Equal(t, 0, d.history.MaxEntries())

	// auto settings keep what is already there
	d = newDoc("", WithIndentation(fileinfo.Tab(4)), WithConfig(config.Default()))
	assert.True(t, d.Indentation().IsTab())

	// a detected syntax wins over the configured fallback
	info := fileinfo.Default()
	info.SyntaxID = "python"
	d = newDoc("", WithFileInfo(info), WithConfig(cfg))
	assert.Equal(t, "python", d.FileInfo().SyntaxID)
}

func TestLineLenChars(t *testing.T) {
	d := newDoc("ab\ncd\r\nef\rg")
	tests := []struct {
		line int
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.LineLenChars(tt.line), "line %d", tt.line)
	}
	assert.Equal(t, 0, newDoc("").LineLenChars(0))
	assert.Equal(t, 0, newDoc("a\n").LineLenChars(1))
}

func TestLineStartBoundary(t *testing.T) {
	d := newDoc("  \tfoo\nbar\n   \n")
	assert.Equal(t, 3, d.LineStartBoundary(0))
	assert.Equal(t, 0, d.LineStartBoundary(1))
	assert.Equal(t, 3, d.LineStartBoundary(2))
}

func TestSetSelectionsClampsAndMerges(t *testing.T) {
	d := newDoc("ab\ncd")
	d.SetSelections([]cursor.Selection{at(0, 0), at(0, 0)})
	assert.Equal(t, 1, d.Selections().Len())
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))

	d.SetSelections([]cursor.Selection{at(9, 9), at(0, 7)})
	assert.Equal(t, []cursor.Position{pos(0, 2), pos(1, 2)}, heads(d))

	d.SetSelections(nil)
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	checkInvariants(t, d)
}

func TestSetSelectionsKeepsCursorTouchingRange(t *testing.T) {
	d := newDoc("abcdef")
	d.SetSelections([]cursor.Selection{
		cursor.NewSelection(pos(0, 0), pos(0, 3)),
		at(0, 3),
	})
	require.Equal(t, 2, d.Selections().Len())
	assert.Equal(t, []cursor.Position{pos(0, 3), pos(0, 3)}, heads(d))
	checkInvariants(t, d)
}

func TestAddSelectionAndKeepMain(t *testing.T) {
	d := newDoc("abc\ndef")
	d.AddSelection(at(1, 1))
	assert.Equal(t, 2, d.Selections().Len())

	// A duplicate cursor merges away.
	d.AddSelection(at(1, 1))
	assert.Equal(t, 2, d.Selections().Len())

	d.KeepMainSelection()
	assert.Equal(t, []cursor.Position{pos(0, 0)}, heads(d))
	checkInvariants(t, d)
}

func TestSelectAll(t *testing.T) {
	d := newDoc("ab\ncd\n")
	d.SelectAll()
	main := d.MainSelection()
	assert.Equal(t, pos(0, 0), cursor.Position{Line: main.Tail.Line, Column: main.Tail.Column})
	assert.Equal(t, pos(2, 0), cursor.Position{Line: main.Head.Line, Column: main.Head.Column})

	d.Backspace()
	assert.Equal(t, "", d.Text())
	checkInvariants(t, d)
}

func TestTakeDirty(t *testing.T) {
	d := newDoc("a\nb\nc")
	start, end, ok := d.TakeDirty()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	_, _, ok = d.TakeDirty()
	assert.False(t, ok)

	d.SetSelections([]cursor.Selection{at(1, 0)})
	_, _, ok = d.TakeDirty()
	assert.False(t, ok, "selection changes are not text changes")

	d.Insert("x")
	start, end, ok = d.TakeDirty()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)

	d.Insert("\n")
	start, end, ok = d.TakeDirty()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	require.NoError(t, d.Undo())
	start, end, ok = d.TakeDirty()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
}

func TestVersion(t *testing.T) {
	d := newDoc("a")
	v := d.Version()
	d.MoveSelections(Right, false)
	assert.Equal(t, v, d.Version())

	d.Insert("b")
	assert.Greater(t, d.Version(), v)

	v = d.Version()
	require.NoError(t, d.Undo())
	assert.Greater(t, d.Version(), v)
}

func TestLoad(t *testing.T) {
	var logs bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs})

	d, err := Load(strings.NewReader("a\r\nb\r\nc"), "notes.txt", WithLogger(log))
	require.NoError(t, err)

	assert.Equal(t, "a\r\nb\r\nc", d.Text())
	assert.Equal(t, fileinfo.LineEndingCRLF, d.FileInfo().LineEnding)
	assert.Equal(t, "\r\n", d.LineEnding())
	assert.Equal(t, 3, d.LineCount())
	assert.False(t, d.CanUndo())
	assert.Contains(t, logs.String(), "document loaded")
	assert.Contains(t, logs.String(), `"component":"engine"`)
	checkInvariants(t, d)
}

func TestLoadDetectsIndentation(t *testing.T) {
	src := strings.Repeat("\tx\n", 10) + " y\n y\n"
	d, err := Load(strings.NewReader(src), "", WithLogger(logging.Nop()))
	require.NoError(t, err)
	assert.Equal(t, fileinfo.Tab(4), d.Indentation())

	cfg := config.Default()
	cfg.Editor.IndentStyle = config.IndentSpace
	cfg.Editor.IndentWidth = 3
	d, err = Load(strings.NewReader(src), "", WithLogger(logging.Nop()), WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, fileinfo.Space(3), d.Indentation())
}

func TestLoadBOMRoundTrip(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	d, err := Load(bytes.NewReader(data), "", WithLogger(logging.Nop()))
	require.NoError(t, err)

	assert.Equal(t, "hi", d.Text())
	assert.Equal(t, []byte{0xFF, 0xFE}, d.FileInfo().BOM)

	var out bytes.Buffer
	require.NoError(t, d.Save(&out))
	assert.Equal(t, data, out.Bytes())
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestLoadErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Load(failingReader{boom}, "x.txt", WithLogger(logging.Nop()))
	require.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "x.txt")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {\n\tprintln()\n}\n"), 0o644))

	d, err := LoadFile(path, WithLogger(logging.Nop()))
	require.NoError(t, err)
	assert.Equal(t, "go", d.FileInfo().SyntaxID)
	assert.Equal(t, 6, d.LineCount())
}

func TestSetFileInfo(t *testing.T) {
	d := newDoc("a")
	info := d.FileInfo()
	info.LineEnding = fileinfo.LineEndingCR
	d.SetFileInfo(info)
	assert.Equal(t, "\r", d.LineEnding())
}

func TestConcurrentReadWrite(t *testing.T) {
	d := newDoc("")
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d.Insert("x")
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = d.Text()
				_ = d.Selections()
				_ = d.Rope().LenChars()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("x", 200), d.Text())
	checkInvariants(t, d)
}

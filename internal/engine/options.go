package engine

import (
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/fileinfo"
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/logging"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial text of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.text = rope.FromString(content)
	}
}

// withRope sets the initial text from an existing rope.
func withRope(r rope.Rope) Option {
	return func(d *Document) {
		d.text = r
	}
}

// WithFileInfo replaces the file info of the document.
func WithFileInfo(info fileinfo.FileInfo) Option {
	return func(d *Document) {
		d.info = info
	}
}

// WithIndentation overrides the indentation unit.
func WithIndentation(in fileinfo.Indentation) Option {
	return func(d *Document) {
		d.info.Indentation = in
	}
}

// WithLineEnding overrides the line ending used for new lines.
func WithLineEnding(le fileinfo.LineEnding) Option {
	return func(d *Document) {
		d.info.LineEnding = le
	}
}

// WithTabWidth sets the display width of a tab.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
// Zero keeps every entry.
func WithMaxUndoEntries(n int) Option {
	return func(d *Document) {
		if n >= 0 {
			d.maxUndo = n
		}
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l *logging.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.log = l
		}
	}
}

// WithConfig applies the editor settings of cfg. Settings left on "auto"
// keep the detected values, and the configured syntax only replaces a
// plain-text detection.
func WithConfig(cfg *config.Config) Option {
	return func(d *Document) {
		if cfg == nil {
			return
		}
		WithTabWidth(cfg.Editor.TabWidth)(d)
		WithMaxUndoEntries(cfg.Editor.UndoLimit)(d)
		if in, ok := cfg.Editor.Indentation(); ok {
			d.info.Indentation = in
		}
		if le, ok := cfg.Editor.LineEndingOverride(); ok {
			d.info.LineEnding = le
		}
		if cfg.Highlight.Syntax != "" && d.info.SyntaxID == fileinfo.PlainSyntax {
			d.info.SyntaxID = cfg.Highlight.Syntax
		}
	}
}

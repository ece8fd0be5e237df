package highlight

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/logging"
	"github.com/dshills/inkwell/internal/syntax"
)

// CheckpointInterval is the number of lines between saved states.
const CheckpointInterval = 16

const blockShift = 4 // log2(CheckpointInterval)

// DefaultTabWidth is used when an update is given a non-positive width.
const DefaultTabWidth = 4

// UpdaterState reports whether a cache is running an update.
type UpdaterState int32

const (
	// StateIdle means no update is running.
	StateIdle UpdaterState = iota
	// StateUpdating means an update is running.
	StateUpdating
)

// String returns the string representation of the state.
func (s UpdaterState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUpdating:
		return "updating"
	default:
		return "unknown"
	}
}

type checkpoint struct {
	parse     syntax.State
	highlight *HighlightState
}

// Cache holds one styled line per document line.
//
// Updates are serialized. Readers receive copies and may run while an
// update is in progress.
type Cache struct {
	mu    sync.RWMutex
	lines []StyledLine

	// Owned by the updater.
	update      sync.Mutex
	syntax      syntax.Syntax
	highlighter *Highlighter
	checkpoints []checkpoint

	state atomic.Int32
	log   *logging.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger for parse failures and theme changes.
func WithLogger(l *logging.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCache creates an empty cache highlighting syn with theme. A nil
// theme selects DefaultTheme.
func NewCache(syn syntax.Syntax, theme *Theme, opts ...CacheOption) *Cache {
	if theme == nil {
		theme = DefaultTheme()
	}
	c := &Cache{
		syntax:      syn,
		highlighter: NewHighlighter(theme),
		log:         logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("highlight")
	return c
}

// UpdateRange re-highlights the blocks holding lines [start, end] of
// text. Work begins at the last checkpoint at or before start's block
// and every checkpoint after it is discarded. Cancellation is checked
// between lines; lines finished before it remain in the cache.
func (c *Cache) UpdateRange(ctx context.Context, text rope.Rope, start, end, tabWidth int) error {
	c.update.Lock()
	defer c.update.Unlock()
	c.state.Store(int32(StateUpdating))
	defer c.state.Store(int32(StateIdle))

	lenLines := text.LenLines()
	startBlock := min(max(start, 0)>>blockShift, len(c.checkpoints))
	endBlock := (min(end, lenLines) >> blockShift) + 1

	c.checkpoints = c.checkpoints[:startBlock]
	var (
		ps syntax.State
		hs *HighlightState
	)
	if n := len(c.checkpoints); n > 0 {
		ps = c.checkpoints[n-1].parse.Clone()
		hs = c.checkpoints[n-1].highlight.Clone()
	} else {
		ps = c.syntax.NewState()
		hs = NewHighlightState()
	}

	defer c.truncate(lenLines)
	stop := min(endBlock<<blockShift, lenLines)
	for i := startBlock << blockShift; i < stop; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := ExpandTabs(lineText(text, i), tabWidth)
		ops, err := c.syntax.ParseLine(ps, line)
		styled := c.highlighter.Highlight(hs, ops, utf8.RuneCountInString(line))
		if err != nil {
			c.log.Warn().Err(err).Int("line", i).Msg("line highlight failed")
			styled = nil
		}

		if (i+1)%CheckpointInterval == 0 {
			c.checkpoints = append(c.checkpoints, checkpoint{parse: ps.Clone(), highlight: hs.Clone()})
		}
		c.store(i, styled)
	}
	return nil
}

func (c *Cache) store(i int, line StyledLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.lines) < i {
		c.lines = append(c.lines, nil)
	}
	if i == len(c.lines) {
		c.lines = append(c.lines, line)
	} else {
		c.lines[i] = line
	}
}

func (c *Cache) truncate(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) > n {
		clear(c.lines[n:])
		c.lines = c.lines[:n]
	}
}

// Line returns a copy of styled line i, or nil if it has not been
// highlighted.
func (c *Cache) Line(i int) StyledLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.lines) {
		return nil
	}
	return c.lines[i].Clone()
}

// Lines returns copies of styled lines [start, end), clamped to the
// highlighted range.
func (c *Cache) Lines(start, end int) []StyledLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	start = max(start, 0)
	end = min(end, len(c.lines))
	if start >= end {
		return nil
	}
	out := make([]StyledLine, 0, end-start)
	for _, l := range c.lines[start:end] {
		out = append(out, l.Clone())
	}
	return out
}

// Len returns the number of styled lines held.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Checkpoints returns the number of saved block states.
func (c *Cache) Checkpoints() int {
	c.update.Lock()
	defer c.update.Unlock()
	return len(c.checkpoints)
}

// State reports whether an update is running.
func (c *Cache) State() UpdaterState {
	return UpdaterState(c.state.Load())
}

// Invalidate discards the checkpoints from line's block on, so the next
// update resumes no later than that block.
func (c *Cache) Invalidate(line int) {
	c.update.Lock()
	defer c.update.Unlock()
	c.checkpoints = c.checkpoints[:min(max(line, 0)>>blockShift, len(c.checkpoints))]
}

// Theme returns the current theme.
func (c *Cache) Theme() *Theme {
	c.update.Lock()
	defer c.update.Unlock()
	return c.highlighter.Theme()
}

// SetTheme rebuilds the highlighter for theme and clears all checkpoints.
// Styled lines are rebuilt by the next update.
func (c *Cache) SetTheme(theme *Theme) {
	c.update.Lock()
	defer c.update.Unlock()
	c.highlighter = NewHighlighter(theme)
	c.checkpoints = nil
	c.log.Info().Str("theme", theme.Name).Msg("theme changed")
}

// Syntax returns the current syntax.
func (c *Cache) Syntax() syntax.Syntax {
	c.update.Lock()
	defer c.update.Unlock()
	return c.syntax
}

// SetSyntax switches the syntax and clears all checkpoints.
func (c *Cache) SetSyntax(syn syntax.Syntax) {
	c.update.Lock()
	defer c.update.Unlock()
	c.syntax = syn
	c.checkpoints = nil
	c.log.Debug().Str("syntax", syn.ID()).Msg("syntax changed")
}

// lineText returns line i without its terminator.
func lineText(text rope.Rope, i int) string {
	s := text.LineString(i)
	return s[:len(s)-rope.TrailingBreakLen(s)]
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// width. A non-positive width means DefaultTabWidth.
func ExpandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	if width <= 0 {
		width = DefaultTabWidth
	}
	var b strings.Builder
	b.Grow(len(s) + 4*width)
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

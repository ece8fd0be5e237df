package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/grapheme"
	"github.com/dshills/inkwell/internal/logging"
	"github.com/dshills/inkwell/internal/renderer/highlight"
)

// viewer is a read-only pager over a document. Highlighting runs on a
// background worker and the screen is redrawn as lines arrive.
type viewer struct {
	screen tcell.Screen
	doc    *engine.Document
	cache  *highlight.Cache
	theme  *highlight.Theme
	worker *highlight.Worker
	name   string
	top    int
}

func newViewer(screen tcell.Screen, name string, doc *engine.Document, cache *highlight.Cache) *viewer {
	theme := cache.Theme()
	screen.SetStyle(theme.Default.Tcell())
	return &viewer{
		screen: screen,
		doc:    doc,
		cache:  cache,
		theme:  theme,
		worker: highlight.NewWorker(cache, doc),
		name:   name,
	}
}

// view shows doc on the terminal until the user quits or ctx is done.
func view(ctx context.Context, name string, doc *engine.Document, cache *highlight.Cache, log *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return newViewer(screen, name, doc, cache).run(ctx, log)
}

func (v *viewer) run(ctx context.Context, log *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.worker.OnUpdate(func(start, end int) {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil)) // queue may be full
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := v.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("highlighting stopped")
		}
	}()
	defer func() {
		cancel()
		<-done
	}()
	go func() {
		<-ctx.Done()
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	v.requestVisible()
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			v.scroll()
			v.requestVisible()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
			v.requestVisible()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
		v.draw()
	}
}

// handleKey applies a key to the document and reports whether the viewer
// should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	expand := ev.Modifiers()&tcell.ModShift != 0
	word := ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	case tcell.KeyUp:
		v.doc.MoveSelections(engine.Up, expand)
	case tcell.KeyDown:
		v.doc.MoveSelections(engine.Down, expand)
	case tcell.KeyLeft:
		if word {
			v.doc.MoveSelectionsWord(engine.Left, expand)
		} else {
			v.doc.MoveSelections(engine.Left, expand)
		}
	case tcell.KeyRight:
		if word {
			v.doc.MoveSelectionsWord(engine.Right, expand)
		} else {
			v.doc.MoveSelections(engine.Right, expand)
		}
	case tcell.KeyPgUp:
		v.doc.PageUp(v.rows(), expand)
	case tcell.KeyPgDn:
		v.doc.PageDown(v.rows(), expand)
	case tcell.KeyHome:
		v.doc.Home(expand)
	case tcell.KeyEnd:
		v.doc.End(expand)
	}
	v.scroll()
	return false
}

// rows returns the number of text rows; the last screen row is the status
// line.
func (v *viewer) rows() int {
	_, h := v.screen.Size()
	return max(h-1, 1)
}

// scroll moves the view so the main head is visible.
func (v *viewer) scroll() {
	head := v.doc.MainSelection().Head.Line
	rows := v.rows()
	switch {
	case head < v.top:
		v.top = head
	case head >= v.top+rows:
		v.top = head - rows + 1
	}
}

// requestVisible asks the worker for the visible lines not yet styled.
func (v *viewer) requestVisible() {
	bottom := min(v.top+v.rows(), v.doc.LineCount()) - 1
	if v.cache.Len() <= bottom {
		v.worker.Request(v.top, bottom)
	}
}

func (v *viewer) draw() {
	width, height := v.screen.Size()
	text := v.doc.Rope()
	sels := v.doc.Selections().All()
	tab := max(v.doc.TabWidth(), 1)
	def := v.theme.Default

	v.screen.Clear()
	for y := range v.rows() {
		line := v.top + y
		if line >= text.LenLines() {
			break
		}
		styled := v.cache.Line(line)
		x, col := 0, 0
		for raw, r := range []rune(lineText(text, line)) {
			cell := string(r)
			if r == '\t' {
				cell = strings.Repeat(" ", tab-col%tab)
			}
			selected := isSelected(sels, cursor.NewPosition(line, raw))
			for _, c := range cell {
				w := grapheme.Width(string(c))
				if x+w > width {
					break
				}
				st := def
				if s, ok := styled.StyleAt(col); ok {
					st = def.Merge(s)
				}
				if selected {
					st.Background = v.theme.Selection
				}
				if w > 0 {
					v.screen.SetContent(x, y, c, nil, st.Tcell())
				}
				x += w
				col++
			}
		}
	}
	v.drawStatus(width, height-1)

	head := v.doc.MainSelection().Head
	if y := head.Line - v.top; y >= 0 && y < v.rows() {
		runes := []rune(lineText(text, head.Line))
		prefix := highlight.ExpandTabs(string(runes[:min(head.Column, len(runes))]), tab)
		v.screen.ShowCursor(grapheme.Width(prefix), y)
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}

func (v *viewer) drawStatus(width, y int) {
	if y < 1 {
		return
	}
	head := v.doc.MainSelection().Head
	status := fmt.Sprintf(" %s  %d:%d  %s  %s", v.name, head.Line+1, head.Column+1, v.cache.Syntax().ID(), v.theme.Name)
	st := v.theme.Default.Tcell().Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			return
		}
		v.screen.SetContent(x, y, r, nil, st)
		x += max(grapheme.Width(string(r)), 1)
	}
	for ; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, st)
	}
}

// isSelected reports whether the char at p lies inside a non-empty
// selection.
func isSelected(sels []cursor.Selection, p cursor.Position) bool {
	for _, s := range sels {
		if !s.IsEmpty() && !p.Before(s.Start()) && p.Before(s.End()) {
			return true
		}
	}
	return false
}

package highlight

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/logging"
	"github.com/dshills/inkwell/internal/syntax"
)

var _ Source = (*engine.Document)(nil)

func TestWorkerCoalescesRequests(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	c := NewCache(syntax.Default().Plain(), testTheme(), WithLogger(log))
	w := NewWorker(c, engine.New())

	_, _, ok := w.Pending()
	assert.False(t, ok)

	w.Request(10, 12)
	w.Request(5, 3)
	start, end, ok := w.Pending()
	require.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 12, end)
	assert.Contains(t, buf.String(), "highlight request coalesced")
}

func TestWorkerRun(t *testing.T) {
	doc := engine.New(engine.WithContent("# one\n\ttwo\nthree"))
	c := NewCache(syntax.Default().Plain(), testTheme(), WithLogger(logging.Nop()))
	w := NewWorker(c, doc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	w.Request(0, doc.LineCount()-1)
	assert.Eventually(t, func() bool { return c.Len() == 3 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 4+3, c.Line(1).Len())

	doc.Insert("x")
	w.Request(0, 0)
	assert.Eventually(t, func() bool { return c.Line(0).Len() == 6 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerOnUpdate(t *testing.T) {
	doc := engine.New(engine.WithContent("a\nb\nc"))
	c := NewCache(syntax.Default().Plain(), testTheme(), WithLogger(logging.Nop()))
	w := NewWorker(c, doc)

	updated := make(chan [2]int, 1)
	w.OnUpdate(func(start, end int) { updated <- [2]int{start, end} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	w.Request(2, 0)
	select {
	case got := <-updated:
		assert.Equal(t, [2]int{0, 2}, got)
		assert.Equal(t, 3, c.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("no update reported")
	}
}

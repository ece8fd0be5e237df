package highlight

import (
	"context"
	"sync"

	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/logging"
)

// Source supplies the text a Worker highlights. engine.Document
// satisfies it.
type Source interface {
	Rope() rope.Rope
	TabWidth() int
}

// Worker runs cache updates in the background, one at a time. Requests
// that arrive while an update runs are merged into a single pending
// range.
type Worker struct {
	cache *Cache
	src   Source
	log   *logging.Logger

	mu      sync.Mutex
	pending lineSpan
	wake    chan struct{}

	onUpdate func(start, end int)
}

type lineSpan struct {
	start, end int
	ok         bool
}

// NewWorker creates a worker updating cache from src.
func NewWorker(cache *Cache, src Source) *Worker {
	return &Worker{
		cache: cache,
		src:   src,
		log:   cache.log,
		wake:  make(chan struct{}, 1),
	}
}

// OnUpdate sets fn to be called from Run after each completed update with
// the line range requested. It must be set before Run starts.
func (w *Worker) OnUpdate(fn func(start, end int)) {
	w.onUpdate = fn
}

// Request asks for lines [start, end] to be brought up to date.
func (w *Worker) Request(start, end int) {
	if end < start {
		start, end = end, start
	}

	w.mu.Lock()
	if w.pending.ok {
		w.log.Debug().
			Int("start", start).
			Int("end", end).
			Int("pending_start", w.pending.start).
			Int("pending_end", w.pending.end).
			Msg("highlight request coalesced")
		w.pending.start = min(w.pending.start, start)
		w.pending.end = max(w.pending.end, end)
	} else {
		w.pending = lineSpan{start: start, end: end, ok: true}
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Pending returns the range waiting to be processed.
func (w *Worker) Pending() (start, end int, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending.start, w.pending.end, w.pending.ok
}

func (w *Worker) take() (lineSpan, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.pending
	w.pending = lineSpan{}
	return p, p.ok
}

// Run processes requests until ctx is done and returns ctx's error.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.wake:
		}

		span, ok := w.take()
		if !ok {
			continue
		}
		w.log.Debug().Int("start", span.start).Int("end", span.end).Msg("highlight update")
		if err := w.cache.UpdateRange(ctx, w.src.Rope(), span.start, span.end, w.src.TabWidth()); err != nil {
			return err
		}
		if w.onUpdate != nil {
			w.onUpdate(span.start, span.end)
		}
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/gogpu/gg"
)

// LoadTask is one in-flight image load for a single cell.
type LoadTask struct {
	item   *GridItem
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Item returns the cell the task populates.
func (t *LoadTask) Item() *GridItem { return t.item }

// Generation returns the cell generation the result will be applied against.
func (t *LoadTask) Generation() uint64 { return t.gen }

// Cancel aborts the fetch. The cell stops being pending once the
// cancellation is applied and keeps its previous content.
func (t *LoadTask) Cancel() { t.cancel() }

// Done is closed when the fetch has finished and its result is queued.
func (t *LoadTask) Done() <-chan struct{} { return t.done }

type completion struct {
	task *LoadTask
	img  *gg.ImageBuf
	err  error
}

// Loader populates cells with images from an ImageSource.
//
// Fetches run on their own goroutines; their results are queued and only
// written to cells by Apply (or Wait), which must run on the goroutine
// that owns the grid. A result is dropped when the cell has been written
// since the load started, so the newest load or assignment always wins.
type Loader struct {
	source        ImageSource
	width, height int

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	notify chan struct{}

	mu       sync.Mutex
	queue    []completion
	active   map[*GridItem]*LoadTask
	inflight int
	closed   bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithImageSize requests images of a fixed size instead of the cell size.
func WithImageSize(width, height int) LoaderOption {
	return func(l *Loader) {
		l.width, l.height = width, height
	}
}

// NewLoader creates a Loader fetching from src.
func NewLoader(src ImageSource, opts ...LoaderOption) *Loader {
	ctx, stop := context.WithCancel(context.Background())
	l := &Loader{
		source: src,
		ctx:    ctx,
		stop:   stop,
		notify: make(chan struct{}, 1),
		active: make(map[*GridItem]*LoadTask),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load marks it pending and starts fetching a random image for it.
// A previous load still running for the same cell is cancelled.
// Failures are logged and recorded on the cell as ErrorContent; they are
// never returned to the caller.
func (l *Loader) Load(ctx context.Context, it *GridItem) *LoadTask {
	gen := it.beginLoad()
	ctx, cancel := context.WithCancel(ctx)
	t := &LoadTask{item: it, gen: gen, cancel: cancel, done: make(chan struct{})}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		cancel()
		close(t.done)
		l.post(completion{task: t, err: ErrLoaderClosed}, false)
		return t
	}
	if prev := l.active[it]; prev != nil {
		prev.cancel()
	}
	l.active[it] = t
	l.inflight++
	l.wg.Add(1)
	l.mu.Unlock()

	width, height := l.size(it)
	Logger().Debug("image load started", "row", it.Row, "col", it.Col, "gen", gen,
		"width", width, "height", height)
	go l.run(ctx, t, width, height)
	return t
}

func (l *Loader) run(ctx context.Context, t *LoadTask, width, height int) {
	defer l.wg.Done()
	defer close(t.done)
	unlink := context.AfterFunc(l.ctx, t.cancel)
	defer unlink()

	img, err := l.source.Fetch(ctx, width, height)
	t.cancel()
	switch {
	case err == nil:
		Logger().Info("image loaded", "row", t.item.Row, "col", t.item.Col)
	case errors.Is(err, context.Canceled):
		Logger().Debug("image load cancelled", "row", t.item.Row, "col", t.item.Col)
	default:
		Logger().Warn("image load failed", "row", t.item.Row, "col", t.item.Col, "err", err)
	}
	l.post(completion{task: t, img: img, err: err}, true)
}

func (l *Loader) post(c completion, started bool) {
	l.mu.Lock()
	l.queue = append(l.queue, c)
	if started {
		l.inflight--
		if l.active[c.task.item] == c.task {
			delete(l.active, c.task.item)
		}
	}
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *Loader) size(it *GridItem) (int, int) {
	if l.width > 0 && l.height > 0 {
		return l.width, l.height
	}
	return int(math.Ceil(it.Width)), int(math.Ceil(it.Height))
}

// Apply writes every queued result to its cell and returns how many were
// applied. Stale results are discarded.
func (l *Loader) Apply() int {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	applied := 0
	for _, c := range queue {
		it := c.task.item
		var content Content
		switch {
		case c.err == nil:
			content = ImageContent{Image: c.img}
		case errors.Is(c.err, context.Canceled):
			content = it.Content()
		default:
			content = ErrorContent{Err: c.err}
		}
		if !it.completeLoad(c.task.gen, content) {
			Logger().Debug("stale image load dropped", "row", it.Row, "col", it.Col,
				"gen", c.task.gen, "current", it.Generation())
			continue
		}
		applied++
	}
	return applied
}

// InFlight returns the number of fetches still running.
func (l *Loader) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight
}

// Wait applies results as they arrive until no fetch is running and the
// queue is empty, or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	for {
		l.Apply()

		l.mu.Lock()
		idle := l.inflight == 0 && len(l.queue) == 0
		l.mu.Unlock()
		if idle {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
	}
}

// Close cancels every running fetch, waits for them to finish and applies
// the outcome. Loads issued afterwards fail with ErrLoaderClosed.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	l.stop()
	l.wg.Wait()
	l.Apply()
	return nil
}

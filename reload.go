// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default bounds of the random delay between two loads of the same cell.
const (
	DefaultReloadMin = 3 * time.Second
	DefaultReloadMax = 13 * time.Second
)

type reloadEntry struct {
	item *GridItem
	due  time.Time
}

// Reloader periodically replaces the image of registered cells. Each cell
// is reloaded after a random delay in [min, max), drawn anew every cycle.
// Tick must be called from the goroutine that owns the grid.
type Reloader struct {
	loader   *Loader
	min, max time.Duration
	entries  []*reloadEntry

	// int64n returns a value in [0, n); rand.Int64N by default.
	int64n func(n int64) int64
}

// NewReloader creates a Reloader issuing loads through l. A non-positive
// bound selects its default.
func NewReloader(l *Loader, minDelay, maxDelay time.Duration) *Reloader {
	if minDelay <= 0 {
		minDelay = DefaultReloadMin
	}
	if maxDelay <= 0 {
		maxDelay = DefaultReloadMax
	}
	return &Reloader{
		loader: l,
		min:    minDelay,
		max:    maxDelay,
		int64n: rand.Int64N,
	}
}

// Add registers it. It is loaded on the next Tick.
func (r *Reloader) Add(it *GridItem) {
	for _, e := range r.entries {
		if e.item == it {
			return
		}
	}
	r.entries = append(r.entries, &reloadEntry{item: it})
}

// Remove unregisters it. A load already in flight is not cancelled.
func (r *Reloader) Remove(it *GridItem) {
	for i, e := range r.entries {
		if e.item == it {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered cells.
func (r *Reloader) Len() int {
	return len(r.entries)
}

// Due returns when it is next reloaded. The zero time means on the next Tick.
func (r *Reloader) Due(it *GridItem) (time.Time, bool) {
	for _, e := range r.entries {
		if e.item == it {
			return e.due, true
		}
	}
	return time.Time{}, false
}

// Tick starts a load for every registered cell whose delay has elapsed and
// returns how many were started. Cells still waiting on a previous load are
// retried on the next Tick.
func (r *Reloader) Tick(ctx context.Context, now time.Time) int {
	started := 0
	for _, e := range r.entries {
		if now.Before(e.due) || e.item.ContentPending() {
			continue
		}
		r.loader.Load(ctx, e.item)
		e.due = now.Add(r.delay())
		started++
		Logger().Debug("image reload scheduled", "row", e.item.Row, "col", e.item.Col, "next", e.due)
	}
	return started
}

func (r *Reloader) delay() time.Duration {
	if r.max <= r.min {
		return r.min
	}
	return r.min + time.Duration(r.int64n(int64(r.max-r.min)))
}

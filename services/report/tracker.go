package report

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by a load that was overtaken by a newer load for the same view.
var ErrSuperseded = errors.New("superseded by a newer request")

// Tracker orders concurrent loads of one view. Every load gets an id larger than all earlier ids;
// starting a load cancels the one still running for the same key, and only the latest load's
// result may be delivered.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	latest  map[string]uint64
	cancels map[string]context.CancelFunc
}

func NewTracker() *Tracker {
	return &Tracker{
		latest:  make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin registers a new load for key and returns its context, id and a release func that must be
// called when the load is finished.
func (t *Tracker) Begin(parent context.Context, key string) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	if prev, ok := t.cancels[key]; ok {
		prev()
	}
	t.seq++
	id := t.seq
	t.latest[key] = id
	t.cancels[key] = cancel
	t.mu.Unlock()

	release := func() {
		t.mu.Lock()
		if t.latest[key] == id {
			delete(t.latest, key)
			delete(t.cancels, key)
		}
		t.mu.Unlock()
		cancel()
	}
	return ctx, id, release
}

// Current reports whether id is still the latest load for key.
func (t *Tracker) Current(key string, id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] == id
}

// InFlight returns the number of views with a running load.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cancels)
}

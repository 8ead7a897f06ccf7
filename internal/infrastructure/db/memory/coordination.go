package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// Locker is a process-local keyed mutex. Acquire never blocks.
type Locker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocker() *Locker {
	return &Locker{held: make(map[string]struct{})}
}

func (l *Locker) Acquire(_ context.Context, trackingID string) (func(), error) {
	id := domain.NormalizeTrackingID(trackingID)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[id]; ok {
		return nil, domain.ErrLockNotAcquired
	}
	l.held[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, id)
			l.mu.Unlock()
		})
	}, nil
}

// Watchlist is a process-local set of watched ids.
type Watchlist struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewWatchlist() *Watchlist {
	return &Watchlist{ids: make(map[string]struct{})}
}

func (w *Watchlist) Add(_ context.Context, trackingID string) error {
	w.mu.Lock()
	w.ids[domain.NormalizeTrackingID(trackingID)] = struct{}{}
	w.mu.Unlock()
	return nil
}

func (w *Watchlist) Remove(_ context.Context, trackingID string) error {
	w.mu.Lock()
	delete(w.ids, domain.NormalizeTrackingID(trackingID))
	w.mu.Unlock()
	return nil
}

func (w *Watchlist) Contains(_ context.Context, trackingID string) (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.ids[domain.NormalizeTrackingID(trackingID)]
	return ok, nil
}

// Members returns the watched ids in lexical order.
func (w *Watchlist) Members(_ context.Context) ([]string, error) {
	w.mu.RLock()
	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	w.mu.RUnlock()
	sort.Strings(out)
	return out, nil
}

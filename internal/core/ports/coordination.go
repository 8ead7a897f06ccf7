package ports

import "context"

// Locker serializes writers per tracking id. Acquire fails with
// domain.ErrLockNotAcquired when another writer holds the id.
type Locker interface {
	Acquire(ctx context.Context, trackingID string) (release func(), err error)
}

// Watchlist holds the tracking ids the simulation ticker advances.
type Watchlist interface {
	Add(ctx context.Context, trackingID string) error
	Remove(ctx context.Context, trackingID string) error
	Contains(ctx context.Context, trackingID string) (bool, error)
	Members(ctx context.Context) ([]string, error)
}

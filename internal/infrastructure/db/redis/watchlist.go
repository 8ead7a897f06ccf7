package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

const watchlistKey = "simulation:watchlist"

// Watchlist stores the ids the simulation ticker advances in a Redis set,
// shared by every replica.
type Watchlist struct {
	client *redis.Client
}

func NewWatchlist(client *redis.Client) *Watchlist {
	return &Watchlist{client: client}
}

func (w *Watchlist) Add(ctx context.Context, trackingID string) error {
	if err := w.client.SAdd(ctx, watchlistKey, domain.NormalizeTrackingID(trackingID)).Err(); err != nil {
		return fmt.Errorf("watchlist add: %w", err)
	}
	return nil
}

func (w *Watchlist) Remove(ctx context.Context, trackingID string) error {
	if err := w.client.SRem(ctx, watchlistKey, domain.NormalizeTrackingID(trackingID)).Err(); err != nil {
		return fmt.Errorf("watchlist remove: %w", err)
	}
	return nil
}

func (w *Watchlist) Contains(ctx context.Context, trackingID string) (bool, error) {
	ok, err := w.client.SIsMember(ctx, watchlistKey, domain.NormalizeTrackingID(trackingID)).Result()
	if err != nil {
		return false, fmt.Errorf("watchlist contains: %w", err)
	}
	return ok, nil
}

// Members returns the watched ids in lexical order.
func (w *Watchlist) Members(ctx context.Context) ([]string, error) {
	ids, err := w.client.SMembers(ctx, watchlistKey).Result()
	if err != nil {
		return nil, fmt.Errorf("watchlist members: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

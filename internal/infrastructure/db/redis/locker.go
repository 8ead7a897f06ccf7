package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another writer is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides per-shipment mutual exclusion across processes.
// Key format: lock:shipment:<tracking_id>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocker creates a Locker. A non-positive ttl falls back to 30s.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{client: client, ttl: ttl}
}

// Acquire takes the lock for trackingID or fails with
// domain.ErrLockNotAcquired when another writer holds it.
func (l *Locker) Acquire(ctx context.Context, trackingID string) (func(), error) {
	key := l.key(trackingID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", trackingID, err)
	}
	if !ok {
		return nil, domain.ErrLockNotAcquired
	}

	release := func() {
		// The caller's context may already be done. A failed release is
		// cleaned up by the key expiry.
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

func (l *Locker) key(trackingID string) string {
	return "lock:shipment:" + domain.NormalizeTrackingID(trackingID)
}

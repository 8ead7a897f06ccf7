// Package retry runs operations with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config tunes the exponential backoff.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Multiplier      float64

	// ShouldRetry decides whether an error is transient. nil retries all errors.
	ShouldRetry func(error) bool
}

// DefaultConfig is used for connecting to backing stores at startup.
func DefaultConfig() Config {
	return Config{
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		Multiplier:      2,
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, the elapsed
// time budget is spent or ctx is done.
func Do(ctx context.Context, cfg Config, fn func(context.Context) error) error {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(cfg.InitialInterval),
		backoff.WithMaxInterval(cfg.MaxInterval),
		backoff.WithMaxElapsedTime(cfg.MaxElapsedTime),
		backoff.WithMultiplier(cfg.Multiplier),
	)

	op := func() error {
		err := fn(ctx)
		if err != nil && cfg.ShouldRetry != nil && !cfg.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

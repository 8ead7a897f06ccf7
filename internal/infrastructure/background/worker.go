// Package background runs periodic tasks such as the simulation tick.
package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Task is a unit of periodic work.
type Task interface {
	// TTL is the interval between runs.
	TTL() time.Duration
	Do(context.Context) error
	// Info describes the task in logs.
	Info() string
}

// Worker runs a set of tasks until its context is cancelled.
type Worker struct {
	log   zerolog.Logger
	tasks []Task
	wg    sync.WaitGroup
}

// Start runs every task once synchronously, failing if any warm-up run fails
// or panics, then keeps running each task on its own ticker in the background.
func Start(ctx context.Context, log zerolog.Logger, tasks ...Task) (*Worker, error) {
	w := &Worker{log: log, tasks: tasks}
	if len(tasks) == 0 {
		return w, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("init panic in %s: %v", task.Info(), r)
					log.Error().
						Str("task", task.Info()).
						Interface("recover", r).
						Bytes("stack", debug.Stack()).
						Msg("task panic during warm-up")
				}
			}()
			log.Info().Str("task", task.Info()).Msg("warming up task")
			return task.Do(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		w.wg.Add(1)
		go w.run(ctx, task)
	}
	return w, nil
}

// Wait blocks until every task loop has stopped.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, task Task) {
	defer w.wg.Done()

	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn().Str("task", task.Info()).Dur("ttl", ttl).Msg("invalid TTL, skipping periodic execution")
		return
	}
	w.log.Info().Str("task", task.Info()).Dur("ttl", ttl).Msg("starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Str("task", task.Info()).Msg("stopping task (context cancelled)")
			return
		case <-ticker.C:
			w.runSafely(ctx, task)
		}
	}
}

func (w *Worker) runSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().
				Str("task", task.Info()).
				Interface("recover", r).
				Bytes("stack", debug.Stack()).
				Msg("background task panic")
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.Error().Err(err).Str("task", task.Info()).Msg("background task failed")
	}
}

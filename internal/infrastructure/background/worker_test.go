package background

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/memory"
)

type countingTask struct {
	ttl   time.Duration
	runs  atomic.Int32
	err   error
	panic bool
}

func (c *countingTask) TTL() time.Duration { return c.ttl }
func (c *countingTask) Info() string       { return "counting" }
func (c *countingTask) Do(context.Context) error {
	c.runs.Add(1)
	if c.panic {
		panic("boom")
	}
	return c.err
}

func TestStart_WarmsUpAndRepeats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := &countingTask{ttl: 5 * time.Millisecond}

	w, err := Start(ctx, zerolog.Nop(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.runs.Load() < 1 {
		t.Fatal("expected a warm-up run before Start returns")
	}

	deadline := time.After(2 * time.Second)
	for task.runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected periodic runs, got %d", task.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	w.Wait()
}

func TestStart_WarmUpFailure(t *testing.T) {
	if _, err := Start(context.Background(), zerolog.Nop(), &countingTask{ttl: time.Second, err: errors.New("down")}); err == nil {
		t.Fatal("expected warm-up error")
	}
	if _, err := Start(context.Background(), zerolog.Nop(), &countingTask{ttl: time.Second, panic: true}); err == nil {
		t.Fatal("expected warm-up panic to surface as an error")
	}
}

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *recordingQueue) EnqueueBatch(ids []string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, ids...)
	return len(ids)
}

func TestSimulationTask_EnqueuesWatchedIDs(t *testing.T) {
	wl := memory.NewWatchlist()
	ctx := context.Background()
	_ = wl.Add(ctx, "IT2")
	_ = wl.Add(ctx, "IT1")

	q := &recordingQueue{}
	task := NewSimulationTask(wl, q, 0)
	if task.TTL() != DefaultSimulationInterval {
		t.Errorf("expected default interval, got %v", task.TTL())
	}

	if err := task.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if len(q.ids) != 2 || q.ids[0] != "IT1" || q.ids[1] != "IT2" {
		t.Fatalf("unexpected enqueued ids %v", q.ids)
	}
}

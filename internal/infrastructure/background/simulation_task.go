package background

import (
	"context"
	"fmt"
	"time"

	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/pkg/metrics"
)

// DefaultSimulationInterval is the tick period of the simulation.
const DefaultSimulationInterval = 7 * time.Second

// Enqueuer accepts advance jobs.
type Enqueuer interface {
	EnqueueBatch(ids []string) int
}

// SimulationTask advances every watched shipment once per tick.
type SimulationTask struct {
	watchlist ports.Watchlist
	queue     Enqueuer
	interval  time.Duration
}

func NewSimulationTask(watchlist ports.Watchlist, queue Enqueuer, interval time.Duration) *SimulationTask {
	if interval <= 0 {
		interval = DefaultSimulationInterval
	}
	return &SimulationTask{watchlist: watchlist, queue: queue, interval: interval}
}

func (t *SimulationTask) TTL() time.Duration { return t.interval }

func (t *SimulationTask) Info() string { return "shipment-simulation" }

func (t *SimulationTask) Do(ctx context.Context) error {
	ids, err := t.watchlist.Members(ctx)
	if err != nil {
		return fmt.Errorf("simulation tick: %w", err)
	}
	metrics.TicksTotal.Inc()
	metrics.WatchedShipments.Set(float64(len(ids)))
	if len(ids) > 0 {
		t.queue.EnqueueBatch(ids)
	}
	return nil
}

package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/pkg/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Advancer is the slice of the shipment service the workers call.
type Advancer interface {
	AdvanceShipment(ctx context.Context, trackingID string) (*ports.AdvanceResult, error)
}

// Dispatcher routes advance jobs to a fixed set of workers using consistent
// hashing on the tracking id, so one shipment is only ever advanced by one
// worker of this process.
type Dispatcher struct {
	workers []chan string
	service Advancer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Advancer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a tracking id to the worker responsible for it. It never
// blocks: when that worker's queue is full the job is dropped and false is
// returned. The next tick enqueues the id again.
func (d *Dispatcher) Enqueue(trackingID string) bool {
	id := domain.NormalizeTrackingID(trackingID)
	idx := d.shardIndex(id)
	select {
	case d.workers[idx] <- id:
		metrics.QueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.JobsDroppedTotal.Inc()
		d.log.Warn().Str("tracking_id", id).Int("worker_id", idx).Msg("advance queue full, job dropped")
		return false
	}
}

// EnqueueBatch enqueues multiple ids and returns how many were accepted.
func (d *Dispatcher) EnqueueBatch(ids []string) int {
	accepted := 0
	for _, id := range ids {
		if d.Enqueue(id) {
			accepted++
		}
	}
	return accepted
}

// shardIndex maps a tracking id deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case trackingID, ok := <-ch:
			if !ok {
				return
			}
			metrics.QueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, trackingID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, trackingID string) {
	_, err := d.service.AdvanceShipment(ctx, trackingID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLockNotAcquired), errors.Is(err, domain.ErrConcurrentUpdate):
		// Another writer got there first; the next tick retries.
		d.log.Debug().Err(err).Str("tracking_id", trackingID).Int("worker_id", workerID).Msg("advance skipped")
	default:
		d.log.Error().Err(err).
			Str("tracking_id", trackingID).
			Int("worker_id", workerID).
			Msg("advance failed")
	}
}

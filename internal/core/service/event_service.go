package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/pkg/metrics"
)

// AdvanceShipment runs one simulation tick for a shipment: it generates the
// next tracking event and appends it to the stored history. A delivered
// shipment is returned unchanged with a nil event.
func (s *ShipmentService) AdvanceShipment(ctx context.Context, trackingID string) (*ports.AdvanceResult, error) {
	start := time.Now()
	id := domain.NormalizeTrackingID(trackingID)

	res, err := s.advance(ctx, id)
	if err != nil {
		metrics.AdvanceErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		metrics.AdvanceDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	result := "noop"
	if res.Event != nil {
		result = res.Event.Stage.String()
	}
	metrics.AdvanceDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return res, nil
}

func (s *ShipmentService) advance(ctx context.Context, id string) (*ports.AdvanceResult, error) {
	// 1. Resolve scan aliases so every caller locks the stored id.
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advance %s: %w", id, err)
	}

	// 2. Single writer per tracking id, then re-read under the lock.
	release, err := s.locker.Acquire(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("advance %s: %w", rec.ID, err)
	}
	defer release()

	rec, err = s.repo.FindByID(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("advance %s: %w", id, err)
	}

	// 3. Compute the next event.
	next, event, err := s.engine.Advance(rec)
	if err != nil {
		return nil, fmt.Errorf("advance %s: %w", id, err)
	}
	if event == nil {
		s.stopWatching(ctx, rec.ID)
		s.logger.Debug().Str("tracking_id", rec.ID).Msg("shipment already delivered, nothing to advance")
		return &ports.AdvanceResult{Shipment: rec}, nil
	}

	// 4. Persist, guarded by the history length we read.
	if err := s.repo.AppendEvent(ctx, rec.ID, len(rec.History), *event); err != nil {
		return nil, fmt.Errorf("advance %s: append event: %w", id, err)
	}

	// 5. Audit trail (non-fatal on failure).
	if err := s.events.InsertEvent(ctx, rec.ID, *event); err != nil {
		s.logger.Warn().Err(err).Str("tracking_id", rec.ID).Msg("failed to insert audit event")
	}

	// 6. Notify on status change.
	if event.Status != rec.Status {
		s.notify(ctx, rec.ID, "Status Update: "+event.Status,
			fmt.Sprintf("Your package %s is now at %s.", rec.ID, event.Location))
	}

	metrics.EventsGeneratedTotal.WithLabelValues(event.Stage.String()).Inc()
	if event.Stage.Terminal() {
		metrics.ShipmentsDeliveredTotal.Inc()
		s.stopWatching(ctx, rec.ID)
	}

	s.logger.Info().
		Str("tracking_id", rec.ID).
		Str("status", event.Status).
		Str("location", event.Location).
		Str("partner", event.HandlingPartner).
		Time("event_time", event.Timestamp).
		Msg("tracking event generated")

	return &ports.AdvanceResult{Shipment: next, Event: event}, nil
}

// Watch enrols a shipment in the periodic simulation.
func (s *ShipmentService) Watch(ctx context.Context, trackingID string) error {
	rec, err := s.GetShipment(ctx, trackingID)
	if err != nil {
		return err
	}
	if rec.Delivered() {
		return fmt.Errorf("watch %s: %w", rec.ID, domain.ErrShipmentDelivered)
	}
	if err := s.watchlist.Add(ctx, rec.ID); err != nil {
		return fmt.Errorf("watch %s: %w", rec.ID, err)
	}
	s.logger.Info().Str("tracking_id", rec.ID).Msg("simulation started")
	return nil
}

// Unwatch removes a shipment from the periodic simulation. Removing a
// shipment that is not watched is not an error.
func (s *ShipmentService) Unwatch(ctx context.Context, trackingID string) error {
	rec, err := s.GetShipment(ctx, trackingID)
	if err != nil {
		return err
	}
	if err := s.watchlist.Remove(ctx, rec.ID); err != nil {
		return fmt.Errorf("unwatch %s: %w", rec.ID, err)
	}
	s.logger.Info().Str("tracking_id", rec.ID).Msg("simulation stopped")
	return nil
}

func (s *ShipmentService) stopWatching(ctx context.Context, id string) {
	if err := s.watchlist.Remove(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("tracking_id", id).Msg("failed to remove delivered shipment from watchlist")
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrLockNotAcquired):
		return "locked"
	case errors.Is(err, domain.ErrConcurrentUpdate), errors.Is(err, domain.ErrShipmentDelivered):
		return "conflict"
	default:
		return "store_failed"
	}
}

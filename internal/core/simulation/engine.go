// Package simulation generates synthetic tracking events. Given a shipment,
// the Engine computes the next milestone of the canonical logistics journey,
// places it on a coarse hub route toward the destination and stamps it a few
// hours after the previous event.
package simulation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// nextStages is the progression table. Delivered has no successor.
var nextStages = map[domain.Stage]domain.Stage{
	domain.StageUnknown:        domain.StageInTransit,
	domain.StageCreated:        domain.StageDepartedOrigin,
	domain.StagePickedUp:       domain.StageDepartedOrigin,
	domain.StageDepartedOrigin: domain.StageArrivedHub,
	domain.StageInTransit:      domain.StageArrivedHub,
	domain.StageArrivedHub:     domain.StageCustomsRelease,
	domain.StageCustomsRelease: domain.StageTenderedLocal,
	domain.StageTenderedLocal:  domain.StageOutForDelivery,
	domain.StageOutForDelivery: domain.StageDelivered,
}

// NextStage returns the stage that follows s. Delivered maps to itself.
func NextStage(s domain.Stage) domain.Stage {
	if next, ok := nextStages[s]; ok {
		return next
	}
	return domain.StageDelivered
}

// Engine is safe for concurrent use as long as its Jitter is.
type Engine struct {
	cities   []domain.City
	partners PartnerTable
	jitter   Jitter
	newID    func() string
}

type Option func(*Engine)

func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.jitter = j }
}

func WithCities(cities []domain.City) Option {
	return func(e *Engine) {
		if len(cities) > 0 {
			e.cities = cities
		}
	}
}

func WithPartners(t PartnerTable) Option {
	return func(e *Engine) { e.partners = t }
}

// WithIDFunc overrides event id generation (uuid by default).
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cities:   domain.Cities,
		partners: DefaultPartnerTable(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.jitter == nil {
		e.jitter = NewRandomJitter(uint64(time.Now().UnixNano()))
	}
	return e
}

// Cities returns the hub table the engine routes over.
func (e *Engine) Cities() []domain.City {
	return e.cities
}

// Advance computes the next tracking event for rec and returns a new record
// with that event prepended. rec itself is never modified.
//
// A delivered record is returned as is with a nil event. A record without
// history fails with domain.ErrInvalidState.
func (e *Engine) Advance(rec *domain.ShipmentRecord) (*domain.ShipmentRecord, *domain.TrackingEvent, error) {
	if rec == nil {
		return nil, nil, fmt.Errorf("advance: nil shipment: %w", domain.ErrInvalidState)
	}
	if rec.Delivered() {
		return rec, nil, nil
	}

	last, err := rec.Latest()
	if err != nil {
		return nil, nil, fmt.Errorf("advance: %w", err)
	}
	current := last.Stage
	if current == domain.StageUnknown {
		current = domain.ParseStage(last.Status)
	}
	if current.Terminal() {
		return rec, nil, nil
	}

	event := e.buildEvent(rec, last, NextStage(current))

	out := rec.Clone()
	out.History = append([]domain.TrackingEvent{event}, out.History...)
	out.Status = event.Status
	out.Stage = event.Stage
	return out, &event, nil
}

func (e *Engine) buildEvent(rec *domain.ShipmentRecord, last domain.TrackingEvent, next domain.Stage) domain.TrackingEvent {
	ev := domain.TrackingEvent{
		ID:        e.newID(),
		Timestamp: last.Timestamp.Add(e.offset()),
		Status:    next.Label(),
		Stage:     next,
	}
	destPartner := e.partners.ForCountry(rec.Destination.Country)

	switch next {
	case domain.StageDepartedOrigin:
		ev.Location = last.Location
		ev.HandlingPartner = InternationalPartner
		ev.Details = "Departed origin facility."
	case domain.StageInTransit:
		ev.Location = stepToward(e.cities, last.Location, rec.Destination).Location()
		ev.HandlingPartner = InternationalPartner
		ev.Details = "En route to next facility."
	case domain.StageArrivedHub:
		ev.Location = stepToward(e.cities, last.Location, rec.Destination).Location()
		ev.HandlingPartner = InternationalPartner
		ev.Details = "Processing at sort facility."
	case domain.StageCustomsRelease:
		ev.Location = gateway(e.cities, last.Location, rec.Destination).Location()
		ev.HandlingPartner = destPartner
		ev.Details = "Customs clearance processing complete."
	case domain.StageTenderedLocal:
		ev.Location = rec.Destination.CityStateZip
		ev.HandlingPartner = destPartner
		ev.Details = fmt.Sprintf("Package transferred to %s for final delivery.", destPartner)
	case domain.StageOutForDelivery:
		ev.Location = rec.Destination.CityStateZip
		ev.HandlingPartner = carryPartner(last, destPartner)
		ev.Details = "On vehicle for delivery today."
	case domain.StageDelivered:
		ev.Location = rec.Destination.CityStateZip
		ev.HandlingPartner = carryPartner(last, destPartner)
		ev.Details = fmt.Sprintf("Package delivered. Signed by: %s.", signatory(rec.Destination))
	}
	return ev
}

// offset never returns a non-positive gap so history stays strictly ordered.
func (e *Engine) offset() time.Duration {
	d := e.jitter.Offset()
	if d <= 0 {
		return MinTransitGap
	}
	return d
}

func carryPartner(last domain.TrackingEvent, fallback string) string {
	if last.HandlingPartner != "" {
		return last.HandlingPartner
	}
	return fallback
}

func signatory(a domain.Address) string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return strings.ToUpper(name)
	}
	return "RECIPIENT"
}

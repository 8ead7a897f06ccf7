package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/core/simulation"
	"github.com/intellitrack/tracking-simulator/internal/pkg/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	createAttempts  = 3
)

// Deps groups the collaborators of ShipmentService.
type Deps struct {
	Shipments     ports.ShipmentRepository
	Events        ports.EventRepository
	Notifications ports.NotificationRepository
	Locker        ports.Locker
	Watchlist     ports.Watchlist
	Engine        *simulation.Engine
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type ShipmentService struct {
	repo          ports.ShipmentRepository
	events        ports.EventRepository
	notifications ports.NotificationRepository
	locker        ports.Locker
	watchlist     ports.Watchlist
	engine        *simulation.Engine
	clock         func() time.Time
	logger        zerolog.Logger
}

func NewShipmentService(deps Deps, logger zerolog.Logger) *ShipmentService {
	s := &ShipmentService{
		repo:          deps.Shipments,
		events:        deps.Events,
		notifications: deps.Notifications,
		locker:        deps.Locker,
		watchlist:     deps.Watchlist,
		engine:        deps.Engine,
		clock:         deps.Clock,
		logger:        logger,
	}
	if s.engine == nil {
		s.engine = simulation.NewEngine()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// GetShipment looks a shipment up by tracking id, ignoring case.
func (s *ShipmentService) GetShipment(ctx context.Context, trackingID string) (*domain.ShipmentRecord, error) {
	rec, err := s.repo.FindByID(ctx, domain.NormalizeTrackingID(trackingID))
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return rec, nil
}

// CreateShipment registers a new shipment with a single "Shipment Created"
// event at the origin address.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*domain.ShipmentRecord, error) {
	now := s.clock().UTC()
	service := input.Service
	if service == "" {
		service = domain.ServiceStandard
	}

	rec := &domain.ShipmentRecord{
		EstimatedDelivery: estimatedDelivery(service, now),
		Origin:            input.Origin,
		Destination:       input.Destination,
		Service:           service,
		Weight:            input.Weight,
		Dimensions:        input.Dimensions,
		Contents:          input.Contents,
		DeclaredItems:     input.DeclaredItems,
		InsuranceValue:    input.InsuranceValue,
		SpecialHandling:   input.SpecialHandling,
		AdvancedOptions:   input.AdvancedOptions,
		CreatedAt:         now,
		History: []domain.TrackingEvent{{
			ID:        uuid.NewString(),
			Timestamp: now,
			Status:    domain.StageCreated.Label(),
			Stage:     domain.StageCreated,
			Location:  addressLocation(input.Origin),
			Details:   "Shipment information received.",
		}},
	}
	rec.Normalize()

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		rec.ID = generateTrackingID()
		err = s.repo.Create(ctx, rec)
		if !errors.Is(err, domain.ErrDuplicateShipment) {
			break
		}
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(service)).Inc()
	s.notify(ctx, rec.ID, "Shipment Created!",
		fmt.Sprintf("Your new shipment %s is ready and awaiting pickup.", rec.ID))

	s.logger.Info().
		Str("tracking_id", rec.ID).
		Str("service", string(service)).
		Str("destination", rec.Destination.Country).
		Msg("shipment created")

	return rec, nil
}

// ListShipments returns a page of shipments.
func (s *ShipmentService) ListShipments(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	items, total, err := s.repo.List(ctx, ports.ListShipmentsFilter{
		Stage:      input.Stage,
		ActiveOnly: input.ActiveOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// JourneyPath returns the reference hubs a shipment has visited, oldest
// first and without repeats.
func (s *ShipmentService) JourneyPath(ctx context.Context, trackingID string) ([]domain.City, error) {
	rec, err := s.GetShipment(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	cities := s.engine.Cities()
	path := make([]domain.City, 0, len(rec.History))
	seen := make(map[string]struct{})
	for i := len(rec.History) - 1; i >= 0; i-- {
		place := strings.TrimSpace(strings.SplitN(rec.History[i].Location, ",", 2)[0])
		if _, ok := seen[place]; ok {
			continue
		}
		city, ok := domain.CityByName(cities, place)
		if !ok {
			continue
		}
		seen[city.Name] = struct{}{}
		path = append(path, city)
	}
	return path, nil
}

// Notifications returns the status-change feed of a shipment.
func (s *ShipmentService) Notifications(ctx context.Context, trackingID string) ([]domain.Notification, error) {
	rec, err := s.GetShipment(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	list, err := s.notifications.ListByTrackingID(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// notify stores a notification. Failures are logged and swallowed.
func (s *ShipmentService) notify(ctx context.Context, trackingID, title, message string) {
	n := domain.Notification{
		ID:         uuid.NewString(),
		TrackingID: trackingID,
		Title:      title,
		Message:    message,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.notifications.Add(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("tracking_id", trackingID).Msg("failed to store notification")
	}
}

// generateTrackingID returns a tracking id in the format IT#########.
func generateTrackingID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("IT%09d", time.Now().UnixNano()%1_000_000_000)
	}
	return fmt.Sprintf("IT%09d", n.Int64())
}

// estimatedDelivery calculates the promised delivery time for a service option.
func estimatedDelivery(service domain.ServiceOption, from time.Time) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	switch service {
	case domain.ServiceSameDay:
		return base
	case domain.ServiceOvernight:
		return base.AddDate(0, 0, 1)
	case domain.ServiceExpress:
		return base.AddDate(0, 0, 2)
	case domain.ServiceWeekend:
		days := (int(time.Saturday) - int(base.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return base.AddDate(0, 0, days)
	default: // Standard or unknown → 5 days
		return base.AddDate(0, 0, 5)
	}
}

func addressLocation(a domain.Address) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{a.CityStateZip, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

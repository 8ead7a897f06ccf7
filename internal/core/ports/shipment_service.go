package ports

import (
	"context"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	Origin          domain.Address
	Destination     domain.Address
	Service         domain.ServiceOption
	Weight          string
	Dimensions      string
	Contents        string
	DeclaredItems   []domain.DeclaredItem
	InsuranceValue  float64
	SpecialHandling []string
	AdvancedOptions []string
}

// AdvanceResult is returned by AdvanceShipment.
type AdvanceResult struct {
	Shipment *domain.ShipmentRecord
	// Event is nil when the shipment was already delivered.
	Event *domain.TrackingEvent
}

// ListShipmentsInput carries all parameters for the list endpoint.
type ListShipmentsInput struct {
	Stage      string
	ActiveOnly bool
	Page       int
	Limit      int
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []*domain.ShipmentRecord
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for tracked shipments.
type ShipmentService interface {
	GetShipment(ctx context.Context, trackingID string) (*domain.ShipmentRecord, error)
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*domain.ShipmentRecord, error)
	ListShipments(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
	AdvanceShipment(ctx context.Context, trackingID string) (*AdvanceResult, error)
	JourneyPath(ctx context.Context, trackingID string) ([]domain.City, error)
	Watch(ctx context.Context, trackingID string) error
	Unwatch(ctx context.Context, trackingID string) error
	Notifications(ctx context.Context, trackingID string) ([]domain.Notification, error)
}

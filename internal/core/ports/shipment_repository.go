package ports

import (
	"context"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// ListShipmentsFilter carries the query parameters for listing shipments.
type ListShipmentsFilter struct {
	Stage      string // optional: stage machine name, e.g. "out_for_delivery"
	ActiveOnly bool   // skip delivered shipments
	Page       int    // 1-based
	Limit      int
}

// ShipmentRepository owns shipment records. Implementations hand out copies;
// mutating a returned record never changes the stored one.
type ShipmentRepository interface {
	// Create stores a new record keyed by its normalized id.
	Create(ctx context.Context, s *domain.ShipmentRecord) error
	// FindByID looks a shipment up case-insensitively.
	FindByID(ctx context.Context, trackingID string) (*domain.ShipmentRecord, error)
	// AppendEvent prepends event to the stored history and mirrors its status
	// onto the record, but only while the stored history still has
	// expectedLen entries. Otherwise it fails with domain.ErrConcurrentUpdate.
	// Delivered records refuse further events with domain.ErrShipmentDelivered.
	AppendEvent(ctx context.Context, trackingID string, expectedLen int, event domain.TrackingEvent) error
	// List returns a page of shipments matching filter and the total count.
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error)
}

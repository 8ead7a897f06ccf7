package ports

import (
	"context"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// EventRepository keeps an audit trail of every generated tracking event.
type EventRepository interface {
	InsertEvent(ctx context.Context, trackingID string, event domain.TrackingEvent) error
}

// NotificationRepository stores the status-change feed shown to users.
type NotificationRepository interface {
	Add(ctx context.Context, n domain.Notification) error
	// ListByTrackingID returns notifications newest first.
	ListByTrackingID(ctx context.Context, trackingID string) ([]domain.Notification, error)
}

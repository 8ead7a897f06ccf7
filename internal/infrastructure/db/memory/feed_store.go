package memory

import (
	"context"
	"sync"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// EventLog is the in-memory audit trail of generated events.
type EventLog struct {
	mu     sync.Mutex
	events map[string][]domain.TrackingEvent
}

func NewEventLog() *EventLog {
	return &EventLog{events: make(map[string][]domain.TrackingEvent)}
}

func (l *EventLog) InsertEvent(_ context.Context, trackingID string, event domain.TrackingEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[trackingID] = append(l.events[trackingID], event)
	return nil
}

// Events returns the audit trail of a shipment in insertion order.
func (l *EventLog) Events(trackingID string) []domain.TrackingEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.TrackingEvent(nil), l.events[trackingID]...)
}

// NotificationStore keeps notifications per shipment.
type NotificationStore struct {
	mu    sync.Mutex
	items map[string][]domain.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{items: make(map[string][]domain.Notification)}
}

func (s *NotificationStore) Add(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[n.TrackingID] = append(s.items[n.TrackingID], n)
	return nil
}

// ListByTrackingID returns notifications newest first.
func (s *NotificationStore) ListByTrackingID(_ context.Context, trackingID string) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[trackingID]
	out := make([]domain.Notification, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

const (
	collectionEvents        = "tracking_events"
	collectionNotifications = "notifications"
)

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

// InsertEvent persists a generated tracking event to the audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, trackingID string, event domain.TrackingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"tracking_id":      trackingID,
		"event_id":         event.ID,
		"status":           event.Status,
		"stage":            event.Stage.String(),
		"location":         event.Location,
		"handling_partner": event.HandlingPartner,
		"timestamp":        event.Timestamp.UTC(),
		"generated_at":     time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// NotificationRepository implements ports.NotificationRepository using MongoDB.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Add(ctx context.Context, n domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, n)
	return err
}

// ListByTrackingID returns the notifications of a shipment, newest first.
func (r *NotificationRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"tracking_id": trackingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the lookup indexes for events and notifications.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := db.Collection(collectionEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tracking_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}); err != nil {
		return err
	}
	_, err := db.Collection(collectionNotifications).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tracking_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

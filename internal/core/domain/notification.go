package domain

import "time"

// Notification is raised whenever a shipment changes status.
type Notification struct {
	ID         string    `json:"id" bson:"_id"`
	TrackingID string    `json:"tracking_id" bson:"tracking_id"`
	Title      string    `json:"title" bson:"title"`
	Message    string    `json:"message" bson:"message"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Read       bool      `json:"read" bson:"read"`
}

package domain

import "time"

// TrackingEvent is one logistics milestone.
type TrackingEvent struct {
	ID              string    `json:"id,omitempty" bson:"id,omitempty"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
	Status          string    `json:"status" bson:"status"`
	Stage           Stage     `json:"stage" bson:"stage"`
	Location        string    `json:"location" bson:"location"`
	Details         string    `json:"details,omitempty" bson:"details,omitempty"`
	HandlingPartner string    `json:"handling_partner,omitempty" bson:"handling_partner,omitempty"`
}

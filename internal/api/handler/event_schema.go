package handler

import "time"

type advanceResponse struct {
	Advanced bool                   `json:"advanced"`
	Event    *trackingEventResponse `json:"event,omitempty"`
	Shipment shipmentResponse       `json:"shipment"`
}

type cityResponse struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type journeyResponse struct {
	TrackingID string         `json:"tracking_id"`
	Cities     []cityResponse `json:"cities"`
}

type watchResponse struct {
	TrackingID string `json:"tracking_id"`
	Watching   bool   `json:"watching"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

type notificationsResponse struct {
	TrackingID string                 `json:"tracking_id"`
	Data       []notificationResponse `json:"data"`
}

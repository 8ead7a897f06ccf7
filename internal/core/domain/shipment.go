package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidState = errors.New("invalid shipment state")
var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateShipment = errors.New("shipment already exists")
var ErrConcurrentUpdate = errors.New("shipment was modified concurrently")
var ErrShipmentDelivered = errors.New("shipment already delivered")
var ErrLockNotAcquired = errors.New("shipment is being updated")
var ErrInvalidFilter = errors.New("invalid shipment filter")

// ServiceOption is the service level chosen at creation time.
type ServiceOption string

const (
	ServiceStandard  ServiceOption = "Standard"
	ServiceExpress   ServiceOption = "Express"
	ServiceOvernight ServiceOption = "Overnight"
	ServiceSameDay   ServiceOption = "Same-Day"
	ServiceWeekend   ServiceOption = "Weekend"
)

// Address is a postal address as entered by the sender.
type Address struct {
	Name         string `json:"name" bson:"name"`
	Street       string `json:"street" bson:"street"`
	CityStateZip string `json:"city_state_zip" bson:"city_state_zip"`
	Country      string `json:"country" bson:"country"`
}

// DeclaredItem is one customs line.
type DeclaredItem struct {
	Description     string  `json:"description" bson:"description"`
	Quantity        int     `json:"quantity" bson:"quantity"`
	Value           float64 `json:"value" bson:"value"`
	CountryOfOrigin string  `json:"country_of_origin" bson:"country_of_origin"`
}

// ShipmentRecord is the aggregate root. History is newest first and is only
// ever extended at the front; Status and Stage always mirror History[0].
type ShipmentRecord struct {
	ID                string          `json:"id" bson:"_id"`
	Status            string          `json:"status" bson:"status"`
	Stage             Stage           `json:"stage" bson:"stage"`
	EstimatedDelivery time.Time       `json:"estimated_delivery" bson:"estimated_delivery"`
	Origin            Address         `json:"origin" bson:"origin"`
	Destination       Address         `json:"destination" bson:"destination"`
	History           []TrackingEvent `json:"history" bson:"history"`
	Service           ServiceOption   `json:"service" bson:"service"`
	Weight            string          `json:"weight" bson:"weight"`
	Dimensions        string          `json:"dimensions" bson:"dimensions"`
	Contents          string          `json:"contents,omitempty" bson:"contents,omitempty"`
	DeclaredItems     []DeclaredItem  `json:"declared_items" bson:"declared_items"`
	InsuranceValue    float64         `json:"insurance_value" bson:"insurance_value"`
	SpecialHandling   []string        `json:"special_handling" bson:"special_handling"`
	AdvancedOptions   []string        `json:"advanced_options" bson:"advanced_options"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
}

// Latest returns the most recent tracking event.
func (r *ShipmentRecord) Latest() (TrackingEvent, error) {
	if len(r.History) == 0 {
		return TrackingEvent{}, fmt.Errorf("shipment %s has no tracking history: %w", r.ID, ErrInvalidState)
	}
	return r.History[0], nil
}

// Delivered reports whether the record reached the terminal stage.
func (r *ShipmentRecord) Delivered() bool {
	return r.Stage == StageDelivered || strings.EqualFold(strings.TrimSpace(r.Status), StageDelivered.Label())
}

// Normalize derives Stage for every event from its status text and syncs the
// record's Status and Stage with the newest event. Events that already carry
// a stage keep it.
func (r *ShipmentRecord) Normalize() {
	for i := range r.History {
		if r.History[i].Stage == StageUnknown {
			r.History[i].Stage = ParseStage(r.History[i].Status)
		}
	}
	if len(r.History) > 0 {
		r.Status = r.History[0].Status
		r.Stage = r.History[0].Stage
		return
	}
	r.Stage = ParseStage(r.Status)
}

// Clone returns a deep copy so callers can never mutate a stored record.
func (r *ShipmentRecord) Clone() *ShipmentRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.History = append([]TrackingEvent(nil), r.History...)
	c.DeclaredItems = append([]DeclaredItem(nil), r.DeclaredItems...)
	c.SpecialHandling = append([]string(nil), r.SpecialHandling...)
	c.AdvancedOptions = append([]string(nil), r.AdvancedOptions...)
	return &c
}

// ScanAliasPrefix marks ids produced by the demo QR scanner. Any id with this
// prefix resolves to the first stored shipment carrying it.
const ScanAliasPrefix = "QR-MOCK"

// IsScanAlias reports whether a normalized id uses ScanAliasPrefix.
func IsScanAlias(id string) bool {
	return strings.HasPrefix(id, ScanAliasPrefix)
}

// NormalizeTrackingID canonicalizes a tracking id for case-insensitive lookup.
func NormalizeTrackingID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

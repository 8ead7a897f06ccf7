package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addressRequest struct {
	Name         string `json:"name"           validate:"required"`
	Street       string `json:"street"         validate:"required"`
	CityStateZip string `json:"city_state_zip" validate:"required"`
	Country      string `json:"country"        validate:"required"`
}

type declaredItemRequest struct {
	Description     string  `json:"description"       validate:"required"`
	Quantity        int     `json:"quantity"          validate:"required,gt=0"`
	Value           float64 `json:"value"             validate:"gte=0"`
	CountryOfOrigin string  `json:"country_of_origin"`
}

type createShipmentRequest struct {
	Origin          addressRequest        `json:"origin"           validate:"required"`
	Destination     addressRequest        `json:"destination"      validate:"required"`
	Service         string                `json:"service"          validate:"omitempty,oneof=Standard Express Overnight Same-Day Weekend"`
	Weight          string                `json:"weight"           validate:"required"`
	Dimensions      string                `json:"dimensions"`
	Contents        string                `json:"contents"`
	DeclaredItems   []declaredItemRequest `json:"declared_items"   validate:"dive"`
	InsuranceValue  float64               `json:"insurance_value"  validate:"gte=0"`
	SpecialHandling []string              `json:"special_handling"`
	AdvancedOptions []string              `json:"advanced_options"`
}

type listShipmentsQuery struct {
	Stage  string `query:"stage"  validate:"omitempty,stage"`
	Active bool   `query:"active"`
	Page   int    `query:"page"   validate:"gte=0"`
	Limit  int    `query:"limit"  validate:"gte=0,lte=100"`
}

// --- Response types ---
// Kept separate from domain types so the JSON contract does not follow
// internal changes.

type shipmentLinks struct {
	Self          string `json:"self"`
	Journey       string `json:"journey"`
	Notifications string `json:"notifications"`
}

type addressResponse struct {
	Name         string `json:"name"`
	Street       string `json:"street"`
	CityStateZip string `json:"city_state_zip"`
	Country      string `json:"country"`
}

type declaredItemResponse struct {
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	Value           float64 `json:"value"`
	CountryOfOrigin string  `json:"country_of_origin,omitempty"`
}

type trackingEventResponse struct {
	ID              string    `json:"id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Status          string    `json:"status"`
	Stage           string    `json:"stage"`
	Location        string    `json:"location"`
	Details         string    `json:"details,omitempty"`
	HandlingPartner string    `json:"handling_partner,omitempty"`
}

type shipmentResponse struct {
	ID                string                  `json:"id"`
	Status            string                  `json:"status"`
	Stage             string                  `json:"stage"`
	Delivered         bool                    `json:"delivered"`
	EstimatedDelivery time.Time               `json:"estimated_delivery"`
	Origin            addressResponse         `json:"origin"`
	Destination       addressResponse         `json:"destination"`
	History           []trackingEventResponse `json:"history"`
	Service           string                  `json:"service"`
	Weight            string                  `json:"weight"`
	Dimensions        string                  `json:"dimensions"`
	Contents          string                  `json:"contents,omitempty"`
	DeclaredItems     []declaredItemResponse  `json:"declared_items"`
	InsuranceValue    float64                 `json:"insurance_value"`
	SpecialHandling   []string                `json:"special_handling"`
	AdvancedOptions   []string                `json:"advanced_options"`
	CreatedAt         time.Time               `json:"created_at"`
	Links             shipmentLinks           `json:"_links"`
}

// shipmentSummaryResponse is the lightweight item used in list responses.
// It omits the history to keep payloads small.
type shipmentSummaryResponse struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	Stage             string          `json:"stage"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Origin            addressResponse `json:"origin"`
	Destination       addressResponse `json:"destination"`
	Service           string          `json:"service"`
	LastLocation      string          `json:"last_location"`
	LastUpdate        time.Time       `json:"last_update"`
	Links             shipmentLinks   `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentSummaryResponse `json:"data"`
	Pagination paginationResponse        `json:"pagination"`
}

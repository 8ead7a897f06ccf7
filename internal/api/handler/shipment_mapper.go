package handler

import (
	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest) ports.CreateShipmentInput {
	items := make([]domain.DeclaredItem, len(req.DeclaredItems))
	for i, it := range req.DeclaredItems {
		items[i] = domain.DeclaredItem{
			Description:     it.Description,
			Quantity:        it.Quantity,
			Value:           it.Value,
			CountryOfOrigin: it.CountryOfOrigin,
		}
	}
	return ports.CreateShipmentInput{
		Origin:          toAddress(req.Origin),
		Destination:     toAddress(req.Destination),
		Service:         domain.ServiceOption(req.Service),
		Weight:          req.Weight,
		Dimensions:      req.Dimensions,
		Contents:        req.Contents,
		DeclaredItems:   items,
		InsuranceValue:  req.InsuranceValue,
		SpecialHandling: req.SpecialHandling,
		AdvancedOptions: req.AdvancedOptions,
	}
}

func toAddress(a addressRequest) domain.Address {
	return domain.Address{
		Name:         a.Name,
		Street:       a.Street,
		CityStateZip: a.CityStateZip,
		Country:      a.Country,
	}
}

// --- Service result → HTTP response ---

func linksFor(id string) shipmentLinks {
	base := "/v1/shipments/" + id
	return shipmentLinks{
		Self:          base,
		Journey:       base + "/journey",
		Notifications: base + "/notifications",
	}
}

func toShipmentResponse(s *domain.ShipmentRecord) shipmentResponse {
	items := make([]declaredItemResponse, len(s.DeclaredItems))
	for i, it := range s.DeclaredItems {
		items[i] = declaredItemResponse{
			Description:     it.Description,
			Quantity:        it.Quantity,
			Value:           it.Value,
			CountryOfOrigin: it.CountryOfOrigin,
		}
	}
	return shipmentResponse{
		ID:                s.ID,
		Status:            s.Status,
		Stage:             s.Stage.String(),
		Delivered:         s.Delivered(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		Origin:            toAddressResponse(s.Origin),
		Destination:       toAddressResponse(s.Destination),
		History:           toHistoryResponse(s.History),
		Service:           string(s.Service),
		Weight:            s.Weight,
		Dimensions:        s.Dimensions,
		Contents:          s.Contents,
		DeclaredItems:     items,
		InsuranceValue:    s.InsuranceValue,
		SpecialHandling:   nonNil(s.SpecialHandling),
		AdvancedOptions:   nonNil(s.AdvancedOptions),
		CreatedAt:         s.CreatedAt.UTC(),
		Links:             linksFor(s.ID),
	}
}

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		Name:         a.Name,
		Street:       a.Street,
		CityStateZip: a.CityStateZip,
		Country:      a.Country,
	}
}

func toEventResponse(e domain.TrackingEvent) trackingEventResponse {
	return trackingEventResponse{
		ID:              e.ID,
		Timestamp:       e.Timestamp.UTC(),
		Status:          e.Status,
		Stage:           e.Stage.String(),
		Location:        e.Location,
		Details:         e.Details,
		HandlingPartner: e.HandlingPartner,
	}
}

func toHistoryResponse(events []domain.TrackingEvent) []trackingEventResponse {
	out := make([]trackingEventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	return out
}

func toListResponse(r *ports.ListShipmentsResult) listShipmentsResponse {
	items := make([]shipmentSummaryResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = toSummaryResponse(s)
	}
	return listShipmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toSummaryResponse(s *domain.ShipmentRecord) shipmentSummaryResponse {
	out := shipmentSummaryResponse{
		ID:                s.ID,
		Status:            s.Status,
		Stage:             s.Stage.String(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		Origin:            toAddressResponse(s.Origin),
		Destination:       toAddressResponse(s.Destination),
		Service:           string(s.Service),
		Links:             linksFor(s.ID),
	}
	if latest, err := s.Latest(); err == nil {
		out.LastLocation = latest.Location
		out.LastUpdate = latest.Timestamp.UTC()
	}
	return out
}

func toAdvanceResponse(r *ports.AdvanceResult) advanceResponse {
	out := advanceResponse{Shipment: toShipmentResponse(r.Shipment)}
	if r.Event != nil {
		ev := toEventResponse(*r.Event)
		out.Event = &ev
		out.Advanced = true
	}
	return out
}

func toCityResponses(cities []domain.City) []cityResponse {
	out := make([]cityResponse, len(cities))
	for i, c := range cities {
		out[i] = cityResponse{Name: c.Name, Country: c.Country, Lat: c.Lat, Lng: c.Lng}
	}
	return out
}

func toNotificationResponses(list []domain.Notification) []notificationResponse {
	out := make([]notificationResponse, len(list))
	for i, n := range list {
		out[i] = notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.UTC(),
			Read:      n.Read,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

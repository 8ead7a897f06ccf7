// Package seed holds the demo shipments loaded at startup when
// SEED_MOCK_DATA is enabled.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// Shipments returns fresh copies of the demo shipments, history newest first.
func Shipments() []*domain.ShipmentRecord {
	recs := []*domain.ShipmentRecord{
		{
			ID:                "IT123456789",
			EstimatedDelivery: at(2024, time.August, 15, 18, 0),
			History: []domain.TrackingEvent{
				{Timestamp: at(2024, time.August, 12, 18, 30), Status: "Arrived at hub", Location: "Frankfurt, Germany"},
				{Timestamp: at(2024, time.August, 11, 9, 15), Status: "Departed from facility", Location: "Shanghai, China"},
				{Timestamp: at(2024, time.August, 10, 14, 0), Status: "Package processed", Location: "Shanghai, China"},
				{Timestamp: at(2024, time.August, 10, 11, 22), Status: "Package picked up", Location: "Shanghai, China"},
			},
			Origin:      domain.Address{Name: "Global Tech Inc.", Street: "123 Innovation Dr", CityStateZip: "Shanghai 200000", Country: "China"},
			Destination: domain.Address{Name: "Jane Doe", Street: "456 Market St", CityStateZip: "New York, NY 10001", Country: "USA"},
			Service:     "International Priority",
			Weight:      "2.5 kg",
			Dimensions:  "30cm x 20cm x 15cm",
			Contents:    "Electronic Components",
			CreatedAt:   at(2024, time.August, 10, 11, 22),
		},
		{
			ID:                "IT987654321",
			EstimatedDelivery: at(2024, time.August, 5, 18, 0),
			History: []domain.TrackingEvent{
				{Timestamp: at(2024, time.August, 5, 11, 45), Status: "Delivered", Location: "London, UK"},
				{Timestamp: at(2024, time.August, 5, 8, 0), Status: "Out for delivery", Location: "London, UK"},
				{Timestamp: at(2024, time.August, 4, 21, 0), Status: "Arrived at local facility", Location: "London, UK"},
				{Timestamp: at(2024, time.August, 3, 15, 30), Status: "Departed from facility", Location: "New York, USA"},
				{Timestamp: at(2024, time.August, 3, 10, 0), Status: "Package picked up", Location: "New York, USA"},
			},
			Origin:      domain.Address{Name: "John Smith", Street: "789 Broadway", CityStateZip: "New York, NY 10003", Country: "USA"},
			Destination: domain.Address{Name: "Emily White", Street: "10 Downing St", CityStateZip: "London SW1A 2AA", Country: "United Kingdom"},
			Service:     "Express Worldwide",
			Weight:      "0.8 kg",
			Dimensions:  "25cm x 15cm x 5cm",
			Contents:    "Important Documents",
			CreatedAt:   at(2024, time.August, 3, 10, 0),
		},
		{
			ID:                "QR-MOCK-34159-XYZ",
			EstimatedDelivery: at(2024, time.August, 13, 18, 0),
			History: []domain.TrackingEvent{
				{Timestamp: at(2024, time.August, 13, 8, 30), Status: "Out for delivery", Location: "Los Angeles, USA"},
				{Timestamp: at(2024, time.August, 12, 19, 45), Status: "Arrived at local facility", Location: "Los Angeles, USA"},
				{Timestamp: at(2024, time.August, 11, 5, 0), Status: "Departed from hub", Location: "Tokyo, Japan"},
				{Timestamp: at(2024, time.August, 10, 11, 0), Status: "Package picked up", Location: "Tokyo, Japan"},
			},
			Origin:      domain.Address{Name: "Anime Collectibles", Street: "Shibuya Crossing", CityStateZip: "Tokyo 150-8010", Country: "Japan"},
			Destination: domain.Address{Name: "Mark Johnson", Street: "1 Hollywood Blvd", CityStateZip: "Los Angeles, CA 90028", Country: "USA"},
			Service:     "Standard International",
			Weight:      "5.1 kg",
			Dimensions:  "50cm x 40cm x 30cm",
			Contents:    "Figurines and Art Books",
			CreatedAt:   at(2024, time.August, 10, 11, 0),
		},
	}
	for _, r := range recs {
		r.Normalize()
	}
	return recs
}

// Load stores the demo shipments in repo. Shipments that already exist are
// left untouched, so Load is safe to run on every start.
func Load(ctx context.Context, repo ports.ShipmentRepository) (int, error) {
	loaded := 0
	for _, rec := range Shipments() {
		err := repo.Create(ctx, rec)
		if errors.Is(err, domain.ErrDuplicateShipment) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("seed %s: %w", rec.ID, err)
		}
		loaded++
	}
	return loaded, nil
}

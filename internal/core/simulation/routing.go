package simulation

import (
	"strings"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
)

// destinationIndex finds the hub serving the destination: first by city name
// inside CityStateZip, then by country. Returns -1 when neither matches.
func destinationIndex(cities []domain.City, dest domain.Address) int {
	if i := domain.CityIndex(cities, dest.CityStateZip); i >= 0 {
		return i
	}
	for i, c := range cities {
		if dest.Country != "" && strings.EqualFold(c.Country, dest.Country) {
			return i
		}
	}
	return -1
}

// stepToward moves one hub from the current location toward the destination.
// Once at the destination hub it stays there. When either end is not in the
// table it walks the table sequentially with wraparound.
func stepToward(cities []domain.City, current string, dest domain.Address) domain.City {
	cur := domain.CityIndex(cities, current)
	target := destinationIndex(cities, dest)

	if cur >= 0 && target >= 0 {
		switch {
		case cur < target:
			return cities[cur+1]
		case cur > target:
			return cities[cur-1]
		default:
			return cities[cur]
		}
	}
	return cities[(cur+1)%len(cities)]
}

// gateway returns the hub where the shipment clears import, falling back to
// one more step along the route when the destination is unknown.
func gateway(cities []domain.City, current string, dest domain.Address) domain.City {
	if i := destinationIndex(cities, dest); i >= 0 {
		return cities[i]
	}
	return stepToward(cities, current, dest)
}

package domain

import "strings"

// City is a reference hub used for coarse location stepping and maps.
type City struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Location renders the city the way tracking events display it.
func (c City) Location() string {
	return c.Name + ", " + c.Country
}

// Cities is the static hub table. The order is significant: routing steps
// through neighbouring indexes toward the destination.
var Cities = []City{
	{Name: "New York", Country: "USA", Lat: 40.7128, Lng: -74.0060},
	{Name: "London", Country: "UK", Lat: 51.5074, Lng: -0.1278},
	{Name: "Tokyo", Country: "Japan", Lat: 35.6895, Lng: 139.6917},
	{Name: "Sydney", Country: "Australia", Lat: -33.8688, Lng: 151.2093},
	{Name: "Dubai", Country: "UAE", Lat: 25.2048, Lng: 55.2708},
	{Name: "Shanghai", Country: "China", Lat: 31.2304, Lng: 121.4737},
	{Name: "Los Angeles", Country: "USA", Lat: 34.0522, Lng: -118.2437},
	{Name: "Singapore", Country: "Singapore", Lat: 1.3521, Lng: 103.8198},
	{Name: "Frankfurt", Country: "Germany", Lat: 50.1109, Lng: 8.6821},
	{Name: "Hong Kong", Country: "China", Lat: 22.3193, Lng: 114.1694},
}

// CityIndex returns the index in cities of the first city whose name occurs
// in text, or -1.
func CityIndex(cities []City, text string) int {
	for i, c := range cities {
		if strings.Contains(text, c.Name) {
			return i
		}
	}
	return -1
}

// CityByName returns the city whose name equals name exactly.
func CityByName(cities []City, name string) (City, bool) {
	for _, c := range cities {
		if c.Name == name {
			return c, true
		}
	}
	return City{}, false
}

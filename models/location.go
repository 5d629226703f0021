package models

import (
	"servicelink/utils"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Validate checks that both components are within range.
func (c Coordinates) Validate() error {
	var bad []string
	if c.Latitude < -90 || c.Latitude > 90 {
		bad = append(bad, "latitude")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		bad = append(bad, "longitude")
	}
	if len(bad) > 0 {
		return utils.NewValidationError("coordinates out of range", bad...)
	}
	return nil
}

// DistanceKm is the haversine distance between two coordinates.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	return utils.Haversine(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

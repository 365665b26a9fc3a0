// Package geo provides great-circle math for trip coordinates.
package geo

import (
	"math"

	"tripfolio/internal/models"
)

const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle (haversine) distance in
// kilometres between two coordinates. Non-finite inputs propagate into
// the result; callers validate coordinates before calling.
func DistanceKm(a, b models.Coordinates) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Package geo provides the spherical-geometry primitives used across the
// service: great-circle distances and Mercator zoom-level estimation.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/electricbuddy/charger-service/internal/models"
)

// earthRadiusKm is the mean Earth radius used to convert angular distances.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers. The function is symmetric and returns 0 for identical points.
// Out-of-range inputs are the caller's concern; they propagate as-is.
func DistanceKm(a, b models.GeoCoordinate) float64 {
	pa := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	pb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return pa.Distance(pb).Radians() * earthRadiusKm
}

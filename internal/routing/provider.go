// Package routing resolves free-text addresses to coordinates and fetches
// driving routes between two endpoints from an external directions provider.
package routing

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/electricbuddy/charger-service/internal/models"
)

// ErrUnresolvedAddress is returned when the provider cannot resolve an
// address to a coordinate. It maps to a client error at the API boundary.
var ErrUnresolvedAddress = errors.New("address could not be resolved")

// ErrNoRoute is returned when the directions provider finds no route between
// the resolved endpoints.
var ErrNoRoute = errors.New("no route found between endpoints")

// Provider is the interface for geocoding and route lookup. Route endpoints
// are free-text addresses or literal "lat,lng" pairs; literals are parsed
// locally and never geocoded.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeoCoordinate, error)
	Route(ctx context.Context, origin, destination string) ([]models.RoutePoint, error)
}

// ParseLatLng parses a literal "lat,lng" endpoint. It reports false for
// anything that is not two comma-separated numbers within coordinate ranges,
// in which case the input should be treated as a free-text address.
func ParseLatLng(s string) (models.GeoCoordinate, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.GeoCoordinate{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.GeoCoordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.GeoCoordinate{}, false
	}

	coord := models.GeoCoordinate{Latitude: lat, Longitude: lng}
	if !coord.Valid() {
		return models.GeoCoordinate{}, false
	}

	return coord, true
}

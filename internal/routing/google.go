package routing

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/electricbuddy/charger-service/internal/models"
)

// GoogleAPIClient is the subset of the Google Maps client the provider uses.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// GoogleProvider resolves addresses and fetches driving routes through the
// Google Maps Geocoding and Directions APIs.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// NewGoogleProvider creates a provider backed by the given Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode converts an address to a coordinate using the Geocoding API. An
// empty result set means the address is unresolvable, not a provider failure.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.GeoCoordinate, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedAddress, address)
	}

	location := results[0].Geometry.Location
	return &models.GeoCoordinate{Latitude: location.Lat, Longitude: location.Lng}, nil
}

// Route resolves both endpoints and fetches a driving route between them.
// The route points come from the overview polyline; when the provider sends
// no polyline the per-step end locations are used instead.
func (gp *GoogleProvider) Route(ctx context.Context, origin, destination string) ([]models.RoutePoint, error) {
	resolvedOrigin, err := gp.resolve(ctx, origin)
	if err != nil {
		return nil, err
	}
	resolvedDestination, err := gp.resolve(ctx, destination)
	if err != nil {
		return nil, err
	}

	routes, _, err := gp.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      resolvedOrigin,
		Destination: resolvedDestination,
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	points, err := routePoints(routes[0])
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoRoute
	}

	gp.log.DebugContext(ctx, "Route fetched", "points", len(points))
	return points, nil
}

// resolve turns an endpoint into a "lat,lng" string the Directions API
// accepts. Literal coordinates pass through without a geocoding round-trip.
func (gp *GoogleProvider) resolve(ctx context.Context, endpoint string) (string, error) {
	if coord, ok := ParseLatLng(endpoint); ok {
		return fmt.Sprintf("%f,%f", coord.Latitude, coord.Longitude), nil
	}

	coord, err := gp.Geocode(ctx, endpoint)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%f,%f", coord.Latitude, coord.Longitude), nil
}

// routePoints extracts the route samples from a Directions route.
func routePoints(route maps.Route) ([]models.RoutePoint, error) {
	if route.OverviewPolyline.Points != "" {
		decoded, err := route.OverviewPolyline.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode route polyline: %w", err)
		}

		points := make([]models.RoutePoint, 0, len(decoded))
		for _, ll := range decoded {
			points = append(points, models.RoutePoint{Lat: ll.Lat, Lng: ll.Lng})
		}
		return points, nil
	}

	var points []models.RoutePoint
	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			points = append(points, models.RoutePoint{Lat: step.EndLocation.Lat, Lng: step.EndLocation.Lng})
		}
	}
	return points, nil
}

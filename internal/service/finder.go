// Package service wires the store, routing provider, and cluster expander
// into the operations the API layer exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/electricbuddy/charger-service/internal/chargers"
	"github.com/electricbuddy/charger-service/internal/metrics"
	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/repository"
	"github.com/electricbuddy/charger-service/internal/routing"
)

// DefaultMaxDistanceKm is the proximity threshold applied when a route query
// does not specify one.
const DefaultMaxDistanceKm = 5.0

// ChargerFilters are the optional narrowing criteria for an on-route query.
// A nil field disables that filter; the qualifying set is the conjunction of
// every enabled filter.
type ChargerFilters struct {
	MaxDistanceKm float64
	MinSpeed      *float64
	MaxDamage     *float64
	MinScore      *int
}

// RouteChargers is the result of an on-route query: the resolved route and
// the chargers that qualified.
type RouteChargers struct {
	Route    []models.RoutePoint
	Chargers []chargers.Charger
}

// FinderService answers station and charger queries against the store.
type FinderService struct {
	log          *slog.Logger
	store        repository.StationStore
	router       routing.Provider
	providerName string
	metrics      *metrics.Metrics
}

// NewFinderService creates a FinderService. The provider name labels routing
// metrics.
func NewFinderService(
	log *slog.Logger,
	store repository.StationStore,
	router routing.Provider,
	providerName string,
	appMetrics *metrics.Metrics,
) *FinderService {
	return &FinderService{
		log:          log,
		store:        store,
		router:       router,
		providerName: providerName,
		metrics:      appMetrics,
	}
}

// StationsWithinRadius returns the stored stations within radiusKm of center,
// annotated with their distance. The boundary is inclusive.
func (fs *FinderService) StationsWithinRadius(
	ctx context.Context,
	center models.GeoCoordinate,
	radiusKm float64,
) ([]models.StationWithDistance, error) {
	return fs.store.FindByRadius(ctx, center, radiusKm)
}

// AllStations returns every stored station with its nested connectors.
func (fs *FinderService) AllStations(ctx context.Context) ([]models.Station, error) {
	return fs.store.FindAll(ctx)
}

// StationByID returns the raw station document for the given identifier.
func (fs *FinderService) StationByID(ctx context.Context, id string) (models.Station, error) {
	return fs.store.FindByID(ctx, id)
}

// ConnectorByID locates a connector and its parent station.
func (fs *FinderService) ConnectorByID(ctx context.Context, id string) (models.Station, models.Connector, error) {
	return fs.store.FindConnectorByID(ctx, id)
}

// ReplaceStation replaces an existing station document. It never creates.
func (fs *FinderService) ReplaceStation(ctx context.Context, id string, station models.Station) (models.Station, error) {
	station.Normalize()
	return fs.store.ReplaceByID(ctx, id, station)
}

// ChargersOnRoute fetches a driving route between origin and destination,
// filters the stored stations by proximity to it, and applies the optional
// charger filters.
func (fs *FinderService) ChargersOnRoute(
	ctx context.Context,
	origin, destination string,
	filters ChargerFilters,
) (*RouteChargers, error) {
	startTime := time.Now()
	route, err := fs.router.Route(ctx, origin, destination)
	fs.metrics.RequestSeconds.WithLabelValues(fs.providerName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		fs.metrics.UpstreamErrors.WithLabelValues(fs.providerName).Inc()
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}

	stations, err := fs.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	maxDistance := filters.MaxDistanceKm
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistanceKm
	}

	near := chargers.StationsNearRoute(route, stations, maxDistance)
	found := chargers.Flatten(near)
	if filters.MinSpeed != nil {
		found = chargers.FilterBySpeed(found, *filters.MinSpeed)
	}
	if filters.MaxDamage != nil {
		found = chargers.FilterByBatteryDamage(found, *filters.MaxDamage)
	}
	if filters.MinScore != nil {
		found = chargers.FilterByEnvironmentalScore(found, *filters.MinScore)
	}

	fs.log.InfoContext(ctx, "Route charger query finished",
		"route_points", len(route), "stations_near", len(near), "chargers", len(found))

	return &RouteChargers{Route: route, Chargers: found}, nil
}

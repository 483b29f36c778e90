// Package app implements the HTTP API: request handlers, routing, and the
// JSON error mapping for the charger-finder endpoints.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/service"
)

// Finder defines the query operations the handlers depend on. Defining the
// interface here, in the consumer package, lets handler tests inject a mock
// without touching the store or the routing provider.
type Finder interface {
	StationsWithinRadius(ctx context.Context, center models.GeoCoordinate, radiusKm float64) ([]models.StationWithDistance, error)
	AllStations(ctx context.Context) ([]models.Station, error)
	StationByID(ctx context.Context, id string) (models.Station, error)
	ConnectorByID(ctx context.Context, id string) (models.Station, models.Connector, error)
	ReplaceStation(ctx context.Context, id string, station models.Station) (models.Station, error)
	ChargersOnRoute(ctx context.Context, origin, destination string, filters service.ChargerFilters) (*service.RouteChargers, error)
}

// Ingester defines the ingestion operation the handlers depend on.
type Ingester interface {
	FindParks(ctx context.Context, bounds models.BoundingBox) (service.IngestResult, error)
}

// Pinger reports database liveness for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Application wires the handler dependencies together.
type Application struct {
	Logger   *slog.Logger
	Finder   Finder
	Ingest   Ingester
	DB       Pinger
	Registry *prometheus.Registry
	Version  string
}

// New creates the Application with all its dependencies.
func New(
	logger *slog.Logger,
	finder Finder,
	ingest Ingester,
	db Pinger,
	registry *prometheus.Registry,
	version string,
) *Application {
	return &Application{
		Logger:   logger,
		Finder:   finder,
		Ingest:   ingest,
		DB:       db,
		Registry: registry,
		Version:  version,
	}
}

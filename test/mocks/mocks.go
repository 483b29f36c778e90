// Package mocks provides testify-based mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"googlemaps.github.io/maps"

	"github.com/electricbuddy/charger-service/internal/cluster"
	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/service"
)

// constructorTestingT is the subset of *testing.T the constructors need.
type constructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// StationStore mocks repository.StationStore.
type StationStore struct{ mock.Mock }

func NewStationStore(t constructorTestingT) *StationStore {
	m := &StationStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StationStore) FindAll(ctx context.Context) ([]models.Station, error) {
	args := m.Called(ctx)
	var r0 []models.Station
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.Station)
	}
	return r0, args.Error(1)
}

func (m *StationStore) FindByRadius(
	ctx context.Context,
	center models.GeoCoordinate,
	radiusKm float64,
) ([]models.StationWithDistance, error) {
	args := m.Called(ctx, center, radiusKm)
	var r0 []models.StationWithDistance
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.StationWithDistance)
	}
	return r0, args.Error(1)
}

func (m *StationStore) FindByID(ctx context.Context, id string) (models.Station, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Station), args.Error(1)
}

func (m *StationStore) FindConnectorByID(
	ctx context.Context,
	connectorID string,
) (models.Station, models.Connector, error) {
	args := m.Called(ctx, connectorID)
	return args.Get(0).(models.Station), args.Get(1).(models.Connector), args.Error(2)
}

func (m *StationStore) UpsertIfAbsent(ctx context.Context, station models.Station) (bool, error) {
	args := m.Called(ctx, station)
	return args.Bool(0), args.Error(1)
}

func (m *StationStore) UpsertReplace(ctx context.Context, station models.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *StationStore) ReplaceByID(ctx context.Context, id string, station models.Station) (models.Station, error) {
	args := m.Called(ctx, id, station)
	return args.Get(0).(models.Station), args.Error(1)
}

// Provider mocks routing.Provider.
type Provider struct{ mock.Mock }

func NewProvider(t constructorTestingT) *Provider {
	m := &Provider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Provider) Geocode(ctx context.Context, address string) (*models.GeoCoordinate, error) {
	args := m.Called(ctx, address)
	var r0 *models.GeoCoordinate
	if args.Get(0) != nil {
		r0 = args.Get(0).(*models.GeoCoordinate)
	}
	return r0, args.Error(1)
}

func (m *Provider) Route(ctx context.Context, origin, destination string) ([]models.RoutePoint, error) {
	args := m.Called(ctx, origin, destination)
	var r0 []models.RoutePoint
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.RoutePoint)
	}
	return r0, args.Error(1)
}

// Searcher mocks cluster.Searcher.
type Searcher struct{ mock.Mock }

func NewSearcher(t constructorTestingT) *Searcher {
	m := &Searcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Searcher) Search(
	ctx context.Context,
	bounds models.BoundingBox,
	zoom int,
) (*cluster.SearchResponse, error) {
	args := m.Called(ctx, bounds, zoom)
	var r0 *cluster.SearchResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*cluster.SearchResponse)
	}
	return r0, args.Error(1)
}

// Expander mocks service.Expander.
type Expander struct{ mock.Mock }

func NewExpander(t constructorTestingT) *Expander {
	m := &Expander{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Expander) Expand(
	ctx context.Context,
	bounds models.BoundingBox,
	startZoom int,
) ([]models.Station, error) {
	args := m.Called(ctx, bounds, startZoom)
	var r0 []models.Station
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.Station)
	}
	return r0, args.Error(1)
}

// Finder mocks app.Finder.
type Finder struct{ mock.Mock }

func NewFinder(t constructorTestingT) *Finder {
	m := &Finder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Finder) StationsWithinRadius(
	ctx context.Context,
	center models.GeoCoordinate,
	radiusKm float64,
) ([]models.StationWithDistance, error) {
	args := m.Called(ctx, center, radiusKm)
	var r0 []models.StationWithDistance
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.StationWithDistance)
	}
	return r0, args.Error(1)
}

func (m *Finder) AllStations(ctx context.Context) ([]models.Station, error) {
	args := m.Called(ctx)
	var r0 []models.Station
	if args.Get(0) != nil {
		r0 = args.Get(0).([]models.Station)
	}
	return r0, args.Error(1)
}

func (m *Finder) StationByID(ctx context.Context, id string) (models.Station, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Station), args.Error(1)
}

func (m *Finder) ConnectorByID(ctx context.Context, id string) (models.Station, models.Connector, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Station), args.Get(1).(models.Connector), args.Error(2)
}

func (m *Finder) ReplaceStation(
	ctx context.Context,
	id string,
	station models.Station,
) (models.Station, error) {
	args := m.Called(ctx, id, station)
	return args.Get(0).(models.Station), args.Error(1)
}

func (m *Finder) ChargersOnRoute(
	ctx context.Context,
	origin, destination string,
	filters service.ChargerFilters,
) (*service.RouteChargers, error) {
	args := m.Called(ctx, origin, destination, filters)
	var r0 *service.RouteChargers
	if args.Get(0) != nil {
		r0 = args.Get(0).(*service.RouteChargers)
	}
	return r0, args.Error(1)
}

// Ingester mocks app.Ingester.
type Ingester struct{ mock.Mock }

func NewIngester(t constructorTestingT) *Ingester {
	m := &Ingester{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Ingester) FindParks(ctx context.Context, bounds models.BoundingBox) (service.IngestResult, error) {
	args := m.Called(ctx, bounds)
	return args.Get(0).(service.IngestResult), args.Error(1)
}

// GoogleAPIClient mocks routing.GoogleAPIClient.
type GoogleAPIClient struct{ mock.Mock }

func NewGoogleAPIClient(t constructorTestingT) *GoogleAPIClient {
	m := &GoogleAPIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *GoogleAPIClient) Geocode(
	ctx context.Context,
	r *maps.GeocodingRequest,
) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	var r0 []maps.GeocodingResult
	if args.Get(0) != nil {
		r0 = args.Get(0).([]maps.GeocodingResult)
	}
	return r0, args.Error(1)
}

func (m *GoogleAPIClient) Directions(
	ctx context.Context,
	r *maps.DirectionsRequest,
) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	args := m.Called(ctx, r)
	var r0 []maps.Route
	if args.Get(0) != nil {
		r0 = args.Get(0).([]maps.Route)
	}
	var r1 []maps.GeocodedWaypoint
	if args.Get(1) != nil {
		r1 = args.Get(1).([]maps.GeocodedWaypoint)
	}
	return r0, r1, args.Error(2)
}

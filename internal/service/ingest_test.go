package service_test

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/electricbuddy/charger-service/internal/geo"
	"github.com/electricbuddy/charger-service/internal/metrics"
	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/service"
	"github.com/electricbuddy/charger-service/test/mocks"
)

func newIngester(t *testing.T) (*service.IngestService, *mocks.StationStore, *mocks.Expander) {
	t.Helper()
	store := mocks.NewStationStore(t)
	expander := mocks.NewExpander(t)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	ingester := service.NewIngestService(slog.Default(), store, expander, appMetrics)
	return ingester, store, expander
}

func TestFindParks(t *testing.T) {
	area := models.BoundingBox{
		SouthWest: models.GeoCoordinate{Latitude: 43.0, Longitude: -80.0},
		NorthEast: models.GeoCoordinate{Latitude: 44.0, Longitude: -79.0},
	}
	startZoom := geo.BoundsZoomLevel(area, service.ReferenceViewport)

	t.Run("expansion failure aborts with no partial result", func(t *testing.T) {
		ingester, _, expander := newIngester(t)
		ctx := t.Context()

		expander.On("Expand", ctx, area, startZoom).Return(nil, assert.AnError).Once()

		result, err := ingester.FindParks(ctx, area)

		require.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, result.Found)
		assert.Zero(t, result.Stored)
	})

	t.Run("store failure aborts mid-run", func(t *testing.T) {
		ingester, store, expander := newIngester(t)
		ctx := t.Context()

		parks := []models.Station{{ID: "p1", Name: "Park One"}}
		expander.On("Expand", ctx, area, startZoom).Return(parks, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.AnythingOfType("models.Station")).
			Return(false, assert.AnError).Once()

		result, err := ingester.FindParks(ctx, area)

		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), `failed to store park "p1"`)
		assert.Zero(t, result.Found)
	})

	t.Run("stored counts only newly inserted parks", func(t *testing.T) {
		ingester, store, expander := newIngester(t)
		ctx := t.Context()

		parks := []models.Station{
			{ID: "p1", Name: "Park One"},
			{ID: "p2", Name: "Park Two"},
			{ID: "p3", Name: "Park Three"},
		}
		expander.On("Expand", ctx, area, startZoom).Return(parks, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.MatchedBy(func(s models.Station) bool {
			return s.ID == "p1"
		})).Return(true, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.MatchedBy(func(s models.Station) bool {
			return s.ID == "p2"
		})).Return(false, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.MatchedBy(func(s models.Station) bool {
			return s.ID == "p3"
		})).Return(true, nil).Once()

		result, err := ingester.FindParks(ctx, area)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Found)
		assert.Equal(t, 2, result.Stored)
	})

	t.Run("parks are normalized and timestamped before storage", func(t *testing.T) {
		ingester, store, expander := newIngester(t)
		ctx := t.Context()

		parks := []models.Station{
			{
				ID:         "p1",
				Connectors: []models.Connector{{ID: "c1"}},
			},
		}
		expander.On("Expand", ctx, area, startZoom).Return(parks, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.MatchedBy(func(s models.Station) bool {
			return s.LastUpdated > 0 &&
				s.Connectors[0].Level == models.LevelL2 &&
				s.Connectors[0].Status == models.StatusUnknown
		})).Return(true, nil).Once()

		result, err := ingester.FindParks(ctx, area)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Stored)
	})

	t.Run("existing timestamp is preserved", func(t *testing.T) {
		ingester, store, expander := newIngester(t)
		ctx := t.Context()

		parks := []models.Station{{ID: "p1", LastUpdated: 1700000000000}}
		expander.On("Expand", ctx, area, startZoom).Return(parks, nil).Once()
		store.On("UpsertIfAbsent", ctx, mock.MatchedBy(func(s models.Station) bool {
			return s.LastUpdated == 1700000000000
		})).Return(true, nil).Once()

		_, err := ingester.FindParks(ctx, area)

		require.NoError(t, err)
	})
}

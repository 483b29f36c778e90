package cluster_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/electricbuddy/charger-service/internal/cluster"
	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/test/mocks"
)

func bounds(swLat, swLng, neLat, neLng float64) models.BoundingBox {
	return models.BoundingBox{
		SouthWest: models.GeoCoordinate{Latitude: swLat, Longitude: swLng},
		NorthEast: models.GeoCoordinate{Latitude: neLat, Longitude: neLng},
	}
}

func TestExpand(t *testing.T) {
	logger := slog.Default()
	area := bounds(43.0, -80.0, 44.0, -79.0)

	t.Run("leaf-only response returns its parks", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		parks := []models.Station{
			{ID: "p1", Name: "Park One"},
			{ID: "p2", Name: "Park Two"},
		}
		searcher.On("Search", ctx, area, 12).
			Return(&cluster.SearchResponse{Parks: parks}, nil).Once()

		result, err := expander.Expand(ctx, area, 12)

		require.NoError(t, err)
		assert.Equal(t, parks, result)
	})

	t.Run("exact duplicate payloads are deduplicated", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		park := models.Station{ID: "p1", Name: "Park One"}
		searcher.On("Search", ctx, area, 12).
			Return(&cluster.SearchResponse{Parks: []models.Station{park, park}}, nil).Once()

		result, err := expander.Expand(ctx, area, 12)

		require.NoError(t, err)
		require.Len(t, result, 1)
	})

	t.Run("near-duplicates with differing fields are kept", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		a := models.Station{ID: "p1", Name: "Park One"}
		b := models.Station{ID: "p1", Name: "Park One (updated)"}
		searcher.On("Search", ctx, area, 12).
			Return(&cluster.SearchResponse{Parks: []models.Station{a, b}}, nil).Once()

		result, err := expander.Expand(ctx, area, 12)

		require.NoError(t, err)
		require.Len(t, result, 2)
	})

	t.Run("clusters are zoomed into until parks appear", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		center := models.GeoCoordinate{Latitude: 43.5, Longitude: -79.5}
		child := models.BoxAround(center, cluster.DefaultDelta)

		searcher.On("Search", ctx, area, 12).
			Return(&cluster.SearchResponse{Clusters: []cluster.Cluster{{GeoCoordinates: center, Count: 7}}}, nil).Once()
		searcher.On("Search", ctx, child, 13).
			Return(&cluster.SearchResponse{Parks: []models.Station{{ID: "p1"}}}, nil).Once()

		result, err := expander.Expand(ctx, area, 12)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "p1", result[0].ID)
	})

	t.Run("always-clustering provider terminates at the zoom ceiling", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		center := models.GeoCoordinate{Latitude: 43.5, Longitude: -79.5}
		queries := 0
		searcher.On("Search", ctx, mock.Anything, mock.Anything).
			Return(&cluster.SearchResponse{Clusters: []cluster.Cluster{{GeoCoordinates: center, Count: 1}}}, nil).
			Run(func(mock.Arguments) { queries++ })

		result, err := expander.Expand(ctx, area, 12)

		require.NoError(t, err)
		assert.Empty(t, result)
		// Zooms 12 through 19 are queried; the frame at zoom 20 is dropped.
		assert.Equal(t, 8, queries)
	})

	t.Run("any query failure aborts the whole expansion", func(t *testing.T) {
		searcher := mocks.NewSearcher(t)
		expander := cluster.NewExpander(searcher, logger)
		ctx := t.Context()

		center := models.GeoCoordinate{Latitude: 43.5, Longitude: -79.5}
		child := models.BoxAround(center, cluster.DefaultDelta)

		searcher.On("Search", ctx, area, 12).
			Return(&cluster.SearchResponse{
				Parks:    []models.Station{{ID: "p1"}},
				Clusters: []cluster.Cluster{{GeoCoordinates: center, Count: 3}},
			}, nil).Once()
		searcher.On("Search", ctx, child, 13).Return(nil, assert.AnError).Once()

		result, err := expander.Expand(ctx, area, 12)

		require.Nil(t, result)
		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})
}

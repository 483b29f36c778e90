package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electricbuddy/charger-service/internal/geo"
	"github.com/electricbuddy/charger-service/internal/models"
)

func TestBoundsZoomLevel(t *testing.T) {
	t.Parallel()

	viewport := models.Viewport{Height: 800, Width: 800}

	t.Run("city sized box", func(t *testing.T) {
		t.Parallel()
		bounds := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: 40, Longitude: -75},
			NorthEast: models.GeoCoordinate{Latitude: 41, Longitude: -73},
		}

		assert.Equal(t, 9, geo.BoundsZoomLevel(bounds, viewport))
	})

	t.Run("antimeridian span matches equivalent non wrapping span", func(t *testing.T) {
		t.Parallel()
		wrapping := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: -10, Longitude: 170},
			NorthEast: models.GeoCoordinate{Latitude: 10, Longitude: -170},
		}
		plain := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: -10, Longitude: -10},
			NorthEast: models.GeoCoordinate{Latitude: 10, Longitude: 10},
		}

		assert.Equal(t, geo.BoundsZoomLevel(plain, viewport), geo.BoundsZoomLevel(wrapping, viewport))
	})

	t.Run("degenerate point box maps to max zoom", func(t *testing.T) {
		t.Parallel()
		point := models.GeoCoordinate{Latitude: 43.25, Longitude: -79.87}
		bounds := models.BoundingBox{SouthWest: point, NorthEast: point}

		assert.Equal(t, geo.MaxZoom, geo.BoundsZoomLevel(bounds, viewport))
	})

	t.Run("never exceeds max zoom", func(t *testing.T) {
		t.Parallel()
		bounds := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: 43.2500, Longitude: -79.8700},
			NorthEast: models.GeoCoordinate{Latitude: 43.2501, Longitude: -79.8699},
		}

		assert.LessOrEqual(t, geo.BoundsZoomLevel(bounds, viewport), geo.MaxZoom)
	})

	t.Run("wider box yields coarser zoom", func(t *testing.T) {
		t.Parallel()
		narrow := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: 43, Longitude: -80},
			NorthEast: models.GeoCoordinate{Latitude: 44, Longitude: -79},
		}
		wide := models.BoundingBox{
			SouthWest: models.GeoCoordinate{Latitude: 40, Longitude: -85},
			NorthEast: models.GeoCoordinate{Latitude: 47, Longitude: -74},
		}

		assert.Greater(t, geo.BoundsZoomLevel(narrow, viewport), geo.BoundsZoomLevel(wide, viewport))
	})
}

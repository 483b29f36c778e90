package geo

import (
	"math"

	"github.com/electricbuddy/charger-service/internal/models"
)

const (
	// worldTileSize is the pixel size of the zoom-0 Mercator world tile.
	worldTileSize = 256
	// MaxZoom is the deepest Mercator zoom level the estimator will return.
	MaxZoom = 21
)

// BoundsZoomLevel computes the maximal Mercator zoom level (capped at MaxZoom)
// at which the bounding box still fits within the given pixel viewport.
//
// The longitude fraction is computed as ((neLng - swLng + 360) mod 360) / 360,
// so a span crossing the antimeridian (e.g. sw 170, ne -170) yields the same
// small positive fraction as an equivalent non-wrapping span.
func BoundsZoomLevel(bounds models.BoundingBox, viewport models.Viewport) int {
	latFraction := (latRad(bounds.NorthEast.Latitude) - latRad(bounds.SouthWest.Latitude)) / math.Pi

	lngDiff := bounds.NorthEast.Longitude - bounds.SouthWest.Longitude
	lngFraction := math.Mod(lngDiff+360, 360) / 360

	latZoom := axisZoom(viewport.Height, latFraction)
	lngZoom := axisZoom(viewport.Width, lngFraction)

	return min(latZoom, lngZoom, MaxZoom)
}

// latRad converts a latitude in degrees to its clamped Mercator y-radian.
func latRad(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}

// axisZoom computes the zoom level for one axis. A non-positive fraction means
// a degenerate (point) bounding box; it maps to MaxZoom rather than being fed
// to log2.
func axisZoom(viewportPx int, fraction float64) int {
	if fraction <= 0 {
		return MaxZoom
	}
	return int(math.Floor(math.Log2(float64(viewportPx) / worldTileSize / fraction)))
}

package models

// GeoCoordinate represents a geographical point in WGS 84.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point, range [-90, 90].
	Longitude float64 `json:"longitude"` // Longitude of the geographical point, range [-180, 180].
}

// Valid reports whether the coordinate lies within the WGS 84 ranges.
func (g GeoCoordinate) Valid() bool {
	return g.Latitude >= -90 && g.Latitude <= 90 &&
		g.Longitude >= -180 && g.Longitude <= 180
}

// BoundingBox is a rectangular geographic area described by its south-west and
// north-east corners. Longitude spans crossing the antimeridian are tolerated,
// so only the latitude ordering is an invariant.
type BoundingBox struct {
	SouthWest GeoCoordinate `json:"southWest"`
	NorthEast GeoCoordinate `json:"northEast"`
}

// Valid reports whether both corners are valid coordinates and the south-west
// latitude does not exceed the north-east latitude.
func (b BoundingBox) Valid() bool {
	return b.SouthWest.Valid() && b.NorthEast.Valid() &&
		b.SouthWest.Latitude <= b.NorthEast.Latitude
}

// BoxAround returns the bounding box centered on c, extending delta degrees in
// each direction.
func BoxAround(c GeoCoordinate, delta float64) BoundingBox {
	return BoundingBox{
		SouthWest: GeoCoordinate{Latitude: c.Latitude - delta, Longitude: c.Longitude - delta},
		NorthEast: GeoCoordinate{Latitude: c.Latitude + delta, Longitude: c.Longitude + delta},
	}
}

// RoutePoint is a single sample along a driving route. Ordering is traversal
// order; proximity checks treat the sequence as an unordered point set.
type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is a pixel viewport used to estimate map zoom levels.
type Viewport struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

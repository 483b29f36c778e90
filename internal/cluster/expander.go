package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/electricbuddy/charger-service/internal/models"
)

const (
	// DefaultMaxZoom is the zoom ceiling: clusters still unresolved at this
	// zoom are abandoned.
	DefaultMaxZoom = 19
	// DefaultDelta is the half-width, in degrees, of the bounding box drawn
	// around a cluster's center when zooming into it.
	DefaultDelta = 0.2
)

// Expander turns a bounding box into the set of discrete charging parks it
// contains, by repeatedly querying the search provider and zooming into any
// clusters it reports.
type Expander struct {
	searcher Searcher
	log      *slog.Logger
	maxZoom  int
	delta    float64
}

// NewExpander creates an expander with the default zoom ceiling and cluster
// box size.
func NewExpander(searcher Searcher, log *slog.Logger) *Expander {
	return &Expander{
		searcher: searcher,
		log:      log,
		maxZoom:  DefaultMaxZoom,
		delta:    DefaultDelta,
	}
}

// frame is one pending query on the expansion worklist.
type frame struct {
	bounds models.BoundingBox
	zoom   int
}

// Expand queries the provider starting at startZoom over bounds. Parks in a
// response are accepted as leaves; each reported cluster is replaced by a
// smaller box around its center and re-queried at zoom+1. Zoom strictly
// increases on every pushed frame and frames above the ceiling are dropped,
// so the worklist always drains.
//
// Parks are deduplicated by serialized content, so only exact-duplicate
// payloads surfaced from overlapping sibling boxes collapse; near-duplicates
// with differing fields are kept. Any query failure aborts the whole
// expansion with no partial result.
func (e *Expander) Expand(ctx context.Context, bounds models.BoundingBox, startZoom int) ([]models.Station, error) {
	worklist := []frame{{bounds: bounds, zoom: startZoom}}
	seen := make(map[string]struct{})
	var parks []models.Station

	for len(worklist) > 0 {
		f := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if f.zoom > e.maxZoom {
			e.log.DebugContext(ctx, "Zoom ceiling reached, dropping branch",
				"zoom", f.zoom, "max_zoom", e.maxZoom)
			continue
		}

		resp, err := e.searcher.Search(ctx, f.bounds, f.zoom)
		if err != nil {
			return nil, fmt.Errorf("cluster expansion failed at zoom %d: %w", f.zoom, err)
		}

		for _, park := range resp.Parks {
			key, err := contentKey(park)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize park %q: %w", park.ID, err)
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			parks = append(parks, park)
		}

		for _, cl := range resp.Clusters {
			worklist = append(worklist, frame{
				bounds: models.BoxAround(cl.GeoCoordinates, e.delta),
				zoom:   f.zoom + 1,
			})
		}
	}

	e.log.InfoContext(ctx, "Cluster expansion finished", "parks", len(parks))
	return parks, nil
}

// contentKey returns the serialized form of a park, used as its dedup key.
func contentKey(park models.Station) (string, error) {
	raw, err := json.Marshal(park)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

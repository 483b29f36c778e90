package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/electricbuddy/charger-service/internal/geo"
	"github.com/electricbuddy/charger-service/internal/metrics"
	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/repository"
)

// ReferenceViewport is the fixed pixel viewport the starting zoom level is
// estimated against.
var ReferenceViewport = models.Viewport{Height: 800, Width: 800}

// Expander is the cluster-expansion dependency of the ingest service.
type Expander interface {
	Expand(ctx context.Context, bounds models.BoundingBox, startZoom int) ([]models.Station, error)
}

// IngestResult summarizes one ingestion run: how many parks the expansion
// surfaced and how many were newly stored.
type IngestResult struct {
	Found  int `json:"found"`
	Stored int `json:"stored"`
}

// IngestService discovers charging parks inside a bounding box and persists
// them with insert-if-absent semantics.
type IngestService struct {
	log      *slog.Logger
	store    repository.StationStore
	expander Expander
	metrics  *metrics.Metrics
	viewport models.Viewport
}

// NewIngestService creates an IngestService using the reference viewport.
func NewIngestService(
	log *slog.Logger,
	store repository.StationStore,
	expander Expander,
	appMetrics *metrics.Metrics,
) *IngestService {
	return &IngestService{
		log:      log,
		store:    store,
		expander: expander,
		metrics:  appMetrics,
		viewport: ReferenceViewport,
	}
}

// FindParks expands the bounding box into discrete parks and upserts each one
// if absent. Any expansion failure aborts the run with no partial result;
// ingestion is triggered manually or periodically, so there is no retry.
func (is *IngestService) FindParks(ctx context.Context, bounds models.BoundingBox) (IngestResult, error) {
	startZoom := geo.BoundsZoomLevel(bounds, is.viewport)
	is.log.InfoContext(ctx, "Starting park ingestion", "start_zoom", startZoom)

	parks, err := is.expander.Expand(ctx, bounds, startZoom)
	if err != nil {
		is.metrics.IngestRuns.WithLabelValues("failure").Inc()
		is.metrics.UpstreamErrors.WithLabelValues("cluster-search").Inc()
		return IngestResult{}, err
	}

	result := IngestResult{Found: len(parks)}
	now := time.Now().UnixMilli()
	for _, park := range parks {
		park.Normalize()
		if park.LastUpdated == 0 {
			park.LastUpdated = now
		}

		inserted, err := is.store.UpsertIfAbsent(ctx, park)
		if err != nil {
			is.metrics.IngestRuns.WithLabelValues("failure").Inc()
			return IngestResult{}, fmt.Errorf("failed to store park %q: %w", park.ID, err)
		}
		if inserted {
			result.Stored++
		}
	}

	is.metrics.IngestRuns.WithLabelValues("success").Inc()
	is.metrics.ParksStored.Add(float64(result.Stored))
	is.log.InfoContext(ctx, "Park ingestion finished", "found", result.Found, "stored", result.Stored)

	return result, nil
}

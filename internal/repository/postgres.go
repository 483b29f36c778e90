package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/electricbuddy/charger-service/internal/geo"
	"github.com/electricbuddy/charger-service/internal/models"
)

// EnsureSchema creates the stations collection table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS stations (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create stations table: %w", err)
	}

	return nil
}

// FindAll returns every stored station document, ordered by identifier.
func (r *Repository) FindAll(ctx context.Context) ([]models.Station, error) {
	query := `SELECT doc FROM stations ORDER BY id;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var doc []byte
		if errScan := rows.Scan(&doc); errScan != nil {
			return nil, fmt.Errorf("failed to scan station document: %w", errScan)
		}

		var station models.Station
		if errDec := json.Unmarshal(doc, &station); errDec != nil {
			return nil, fmt.Errorf("failed to decode station document: %w", errDec)
		}
		stations = append(stations, station)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return stations, nil
}

// FindByRadius returns the stations within radiusKm of center, each annotated
// with its distance. The radius boundary is inclusive. The filter runs
// in-process over FindAll; the collection stays small enough that a native
// geospatial index is not worth the operational cost yet.
func (r *Repository) FindByRadius(
	ctx context.Context,
	center models.GeoCoordinate,
	radiusKm float64,
) ([]models.StationWithDistance, error) {
	stations, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var within []models.StationWithDistance
	for _, station := range stations {
		distance := geo.DistanceKm(center, station.GeoCoordinates)
		if distance <= radiusKm {
			within = append(within, models.StationWithDistance{Station: station, DistanceKm: distance})
		}
	}

	return within, nil
}

// FindByID returns the station with the given identifier, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (models.Station, error) {
	query := `SELECT doc FROM stations WHERE id = $1;`

	var doc []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Station{}, ErrNotFound
	}
	if err != nil {
		return models.Station{}, fmt.Errorf("failed to query station %q: %w", id, err)
	}

	var station models.Station
	if err = json.Unmarshal(doc, &station); err != nil {
		return models.Station{}, fmt.Errorf("failed to decode station document: %w", err)
	}

	return station, nil
}

// FindConnectorByID locates a connector by its identifier and returns it
// together with its parent station. Connector ids are only unique within
// their parent and there is no secondary index, so this scans every station's
// nested connector list.
func (r *Repository) FindConnectorByID(
	ctx context.Context,
	connectorID string,
) (models.Station, models.Connector, error) {
	stations, err := r.FindAll(ctx)
	if err != nil {
		return models.Station{}, models.Connector{}, err
	}

	for _, station := range stations {
		for _, conn := range station.Connectors {
			if conn.ID == connectorID {
				return station, conn, nil
			}
		}
	}

	return models.Station{}, models.Connector{}, ErrNotFound
}

// UpsertIfAbsent inserts the station only if no record with the same
// identifier exists; otherwise it is a no-op. It reports whether a row was
// inserted. Used for idempotent bulk ingestion.
func (r *Repository) UpsertIfAbsent(ctx context.Context, station models.Station) (bool, error) {
	doc, err := json.Marshal(station)
	if err != nil {
		return false, fmt.Errorf("failed to encode station %q: %w", station.ID, err)
	}

	query := `
		INSERT INTO stations (id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO NOTHING;
	`

	tag, err := r.db.Exec(ctx, query, station.ID, doc)
	if err != nil {
		return false, fmt.Errorf("failed to insert station %q: %w", station.ID, err)
	}

	inserted := tag.RowsAffected() > 0
	if !inserted {
		r.log.DebugContext(ctx, "Station already stored, skipping", "id", station.ID)
	}

	return inserted, nil
}

// UpsertReplace inserts the station or fully replaces the existing document
// with the same identifier. Used for corrected or re-submitted records.
func (r *Repository) UpsertReplace(ctx context.Context, station models.Station) error {
	doc, err := json.Marshal(station)
	if err != nil {
		return fmt.Errorf("failed to encode station %q: %w", station.ID, err)
	}

	query := `
		INSERT INTO stations (id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = NOW();
	`

	if _, err = r.db.Exec(ctx, query, station.ID, doc); err != nil {
		return fmt.Errorf("failed to upsert station %q: %w", station.ID, err)
	}

	return nil
}

// ReplaceByID replaces the document with the given identifier and returns the
// updated station. Unlike the upserts it never creates: ErrNotFound is
// returned when no record shares the identifier.
func (r *Repository) ReplaceByID(ctx context.Context, id string, station models.Station) (models.Station, error) {
	station.ID = id
	doc, err := json.Marshal(station)
	if err != nil {
		return models.Station{}, fmt.Errorf("failed to encode station %q: %w", id, err)
	}

	query := `UPDATE stations SET doc = $2, updated_at = NOW() WHERE id = $1;`

	tag, err := r.db.Exec(ctx, query, id, doc)
	if err != nil {
		return models.Station{}, fmt.Errorf("failed to replace station %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.Station{}, ErrNotFound
	}

	return station, nil
}

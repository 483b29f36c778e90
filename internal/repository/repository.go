// Package repository persists station documents in a Postgres-backed
// collection: one JSONB document per station, keyed by the station id.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/electricbuddy/charger-service/internal/models"
)

// ErrNotFound is returned when no stored record matches the query.
var ErrNotFound = errors.New("station not found")

// Database is the subset of the pgx pool the repository uses. It is satisfied
// by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StationStore abstracts the station document collection.
type StationStore interface {
	FindAll(ctx context.Context) ([]models.Station, error)
	FindByRadius(ctx context.Context, center models.GeoCoordinate, radiusKm float64) ([]models.StationWithDistance, error)
	FindByID(ctx context.Context, id string) (models.Station, error)
	FindConnectorByID(ctx context.Context, connectorID string) (models.Station, models.Connector, error)
	UpsertIfAbsent(ctx context.Context, station models.Station) (bool, error)
	UpsertReplace(ctx context.Context, station models.Station) error
	ReplaceByID(ctx context.Context, id string, station models.Station) (models.Station, error)
}

// Repository implements StationStore on top of Postgres.
type Repository struct {
	db  Database
	log *slog.Logger
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase opens a pgx connection pool against the given Postgres instance
// and verifies the connection with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

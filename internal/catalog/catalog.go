// Package catalog keeps a SQLite record of every generated river so
// runs can be listed and reproduced later. The schema is managed by
// embedded migrations applied at open time.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a river id has no catalog row.
var ErrNotFound = errors.New("river not found")

// Record is one generated river run.
type Record struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Segments  int       `json:"segments"`
	Stations  int       `json:"stations"`
	Points    int       `json:"points"`
	Exporter  string    `json:"exporter"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog wraps the run database.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog at path and applies pending
// migrations. Use ":memory:" for an ephemeral catalog in tests.
func Open(path string) (*Catalog, error) {
	log.Debug("opening catalog", "path", path)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// A single connection keeps writes serialized and makes ":memory:"
	// catalogs work: every connection in the pool would otherwise get
	// its own empty in-memory database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Debug("catalog migrations applied")
	return nil
}

// Insert stores a new run record.
func (c *Catalog) Insert(ctx context.Context, rec Record) error {
	start := time.Now()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO rivers (id, seed, segments, stations, points, exporter, path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Segments, rec.Stations, rec.Points, rec.Exporter, rec.Path, rec.CreatedAt,
	)
	log.Debug("catalog insert", "id", rec.ID, "duration", time.Since(start), "error", err)
	if err != nil {
		return fmt.Errorf("failed to insert river record: %w", err)
	}
	return nil
}

// Get returns the record for one river id.
func (c *Catalog) Get(ctx context.Context, id string) (Record, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, seed, segments, stations, points, exporter, path, created_at
		 FROM rivers WHERE id = ?`, id)

	var rec Record
	err := row.Scan(&rec.ID, &rec.Seed, &rec.Segments, &rec.Stations, &rec.Points,
		&rec.Exporter, &rec.Path, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read river record: %w", err)
	}
	return rec, nil
}

// List returns all records, newest first.
func (c *Catalog) List(ctx context.Context) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, seed, segments, stations, points, exporter, path, created_at
		 FROM rivers ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list river records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.Segments, &rec.Stations, &rec.Points,
			&rec.Exporter, &rec.Path, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan river record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a record, reporting ErrNotFound for unknown ids.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM rivers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete river record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

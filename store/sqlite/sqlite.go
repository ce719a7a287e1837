/*
Package sqlite provides a SQLite-backed DatasetStore.

PURPOSE:
  Persists uploaded datasets across server restarts. A dataset's tables are
  written atomically inside one transaction; reads reassemble the
  normalized apartment and reservation tables the engine consumes.

KEY TABLES:
  datasets:     One row per upload (id, name, created_at)
  apartments:   Mapping rows, keyed by dataset
  reservations: Normalized stays, keyed by dataset

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so report reads do not
  block uploads.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: interface and types
  - store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/store"
)

// Store implements store.DatasetStore using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS apartments (
		dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		owner TEXT NOT NULL,
		category TEXT NOT NULL,
		commission TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_apartments_dataset
		ON apartments(dataset_id);

	CREATE TABLE IF NOT EXISTS reservations (
		dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		apartment TEXT NOT NULL,
		arrival TEXT NOT NULL,
		departure TEXT NOT NULL,
		status TEXT NOT NULL,
		price TEXT NOT NULL,
		nights INTEGER NOT NULL,
		category TEXT NOT NULL,
		owner TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reservations_dataset
		ON reservations(dataset_id);

	-- Engine queries filter by apartment; keep listing order stable too.
	CREATE INDEX IF NOT EXISTS idx_reservations_dataset_arrival
		ON reservations(dataset_id, arrival);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DATASET OPERATIONS
// =============================================================================

// Save writes the dataset and both of its tables in one transaction.
func (s *Store) Save(ctx context.Context, d store.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, created_at) VALUES (?, ?, ?)`,
		d.ID, d.Name, d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	aptStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO apartments (dataset_id, name, owner, category, commission)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer aptStmt.Close()
	for _, apt := range d.Apartments {
		if _, err := aptStmt.ExecContext(ctx,
			d.ID, apt.Name, apt.Owner, apt.Category, apt.Commission.String(),
		); err != nil {
			return fmt.Errorf("insert apartment %q: %w", apt.Name, err)
		}
	}

	resStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO reservations
		 (dataset_id, apartment, arrival, departure, status, price, nights, category, owner)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer resStmt.Close()
	for _, r := range d.Reservations {
		if _, err := resStmt.ExecContext(ctx,
			d.ID, r.Apartment, r.Arrival.String(), r.Departure.String(),
			r.Status, r.Price.String(), r.Nights, r.Category, r.Owner,
		); err != nil {
			return fmt.Errorf("insert reservation for %q: %w", r.Apartment, err)
		}
	}

	return tx.Commit()
}

// Get reassembles a dataset from its three tables.
func (s *Store) Get(ctx context.Context, id string) (store.Dataset, error) {
	var (
		d         store.Dataset
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM datasets WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &createdAt)
	if err == sql.ErrNoRows {
		return store.Dataset{}, store.ErrNotFound
	}
	if err != nil {
		return store.Dataset{}, err
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return store.Dataset{}, fmt.Errorf("parse created_at: %w", err)
	}

	if d.Apartments, err = s.loadApartments(ctx, id); err != nil {
		return store.Dataset{}, err
	}
	if d.Reservations, err = s.loadReservations(ctx, id); err != nil {
		return store.Dataset{}, err
	}
	return d, nil
}

func (s *Store) loadApartments(ctx context.Context, datasetID string) ([]engine.Apartment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, owner, category, commission
		 FROM apartments WHERE dataset_id = ? ORDER BY name`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []engine.Apartment
	for rows.Next() {
		var (
			apt        engine.Apartment
			commission string
		)
		if err := rows.Scan(&apt.Name, &apt.Owner, &apt.Category, &commission); err != nil {
			return nil, err
		}
		if apt.Commission, err = decimal.NewFromString(commission); err != nil {
			return nil, fmt.Errorf("parse commission for %q: %w", apt.Name, err)
		}
		apartments = append(apartments, apt)
	}
	return apartments, rows.Err()
}

func (s *Store) loadReservations(ctx context.Context, datasetID string) ([]engine.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT apartment, arrival, departure, status, price, nights, category, owner
		 FROM reservations WHERE dataset_id = ? ORDER BY arrival, apartment`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []engine.Reservation
	for rows.Next() {
		var (
			r                  engine.Reservation
			arrival, departure string
			price              string
		)
		if err := rows.Scan(&r.Apartment, &arrival, &departure, &r.Status,
			&price, &r.Nights, &r.Category, &r.Owner); err != nil {
			return nil, err
		}
		if r.Arrival, err = engine.ParseDate(arrival); err != nil {
			return nil, fmt.Errorf("parse arrival for %q: %w", r.Apartment, err)
		}
		if r.Departure, err = engine.ParseDate(departure); err != nil {
			return nil, fmt.Errorf("parse departure for %q: %w", r.Apartment, err)
		}
		if r.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price for %q: %w", r.Apartment, err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// List returns dataset listings with row counts, newest first.
func (s *Store) List(ctx context.Context) ([]store.DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.created_at,
			(SELECT COUNT(*) FROM apartments a WHERE a.dataset_id = d.id),
			(SELECT COUNT(*) FROM reservations r WHERE r.dataset_id = d.id)
		FROM datasets d
		ORDER BY d.created_at DESC, d.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.DatasetInfo
	for rows.Next() {
		var (
			info      store.DatasetInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &createdAt,
			&info.Apartments, &info.Reservations); err != nil {
			return nil, err
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a dataset and its tables.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

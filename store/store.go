/*
Package store persists uploaded datasets.

PURPOSE:
  A dataset is one upload: the apartment mapping plus the reservation
  export, loaded and normalized. Reports are generated from a stored
  dataset, so one upload can serve many report runs with different period
  partitions.

IMPLEMENTATIONS:
  store.Memory: in-memory, for tests and dev
  sqlite.Store: SQLite-backed, for the server

SEE ALSO:
  - sqlite/sqlite.go: the persistent implementation
  - api: handlers that save and read datasets
*/
package store

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/stayline/availability-engine/engine"
)

// ErrNotFound is returned when no dataset has the requested id.
var ErrNotFound = errors.New("dataset not found")

// Dataset is one normalized upload.
type Dataset struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	Apartments   []engine.Apartment
	Reservations []engine.Reservation
}

// DatasetInfo is the listing view of a dataset: identity and row counts,
// without the tables themselves.
type DatasetInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	Apartments   int       `json:"apartments"`
	Reservations int       `json:"reservations"`
}

// Info returns the listing view of the dataset.
func (d Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:           d.ID,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
		Apartments:   len(d.Apartments),
		Reservations: len(d.Reservations),
	}
}

// DatasetStore persists datasets.
type DatasetStore interface {
	Save(ctx context.Context, d Dataset) error
	Get(ctx context.Context, id string) (Dataset, error)
	// List returns dataset listings, newest first.
	List(ctx context.Context) ([]DatasetInfo, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh dataset id. ULIDs sort by creation time, which keeps
// listings stable without a separate sequence.
func NewID() string {
	return ulid.Make().String()
}

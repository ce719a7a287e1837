/*
Package engine computes apartment availability over calendar periods.

PURPOSE:
  Given a set of reservations and a partition of a date range into periods,
  the engine derives, for every (apartment, period) pair, an availability
  status, plus the aggregates built on top of it: monthly occupancy rates,
  per-category average nightly prices, and per-category availability counts.

KEY CONCEPTS IN THIS FILE (types.go):
  - Reservation: one stay, with arrival/departure dates, price and night count
  - Apartment: one rentable unit with its owner and category
  - AvailabilityStatus: Free / Booked / Overbooked, derived from overlap count

DESIGN PRINCIPLES:
  1. Purity: every computation is a function of immutable input tables
  2. Precision: prices use decimal.Decimal, never floats
  3. Day granularity: all ranges are whole calendar days

SEE ALSO:
  - period.go: date-range partitioning
  - engine.go: overlap test and status classification
  - pricing.go: nights-weighted price averaging
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AVAILABILITY STATUS
// =============================================================================

// AvailabilityStatus classifies an (apartment, period) cell by the number of
// distinct reservations overlapping the period: 0, 1, or 2+.
type AvailabilityStatus int

const (
	StatusFree AvailabilityStatus = iota
	StatusBooked
	StatusOverbooked
)

// String returns the report cell text. The report vocabulary is French,
// matching the reservation export this system consumes.
func (s AvailabilityStatus) String() string {
	switch s {
	case StatusBooked:
		return "Réservé"
	case StatusOverbooked:
		return "Surbooking"
	default:
		return "Disponible"
	}
}

// Code returns the single-letter code used in availability count cells
// ("3D/2R/1S").
func (s AvailabilityStatus) Code() string {
	switch s {
	case StatusBooked:
		return "R"
	case StatusOverbooked:
		return "S"
	default:
		return "D"
	}
}

// statusForCount maps an overlapping-reservation count to a status.
func statusForCount(n int) AvailabilityStatus {
	switch {
	case n == 0:
		return StatusFree
	case n == 1:
		return StatusBooked
	default:
		return StatusOverbooked
	}
}

// =============================================================================
// RESERVATION
// =============================================================================

// Reservation is one stay in the normalized reservation table. Departure is
// exclusive: the guest occupies [Arrival, Departure). The engine counts a
// stay over its occupied nights only, so a departure day never collides with
// the next stay's arrival day.
type Reservation struct {
	Apartment string
	Arrival   Date
	Departure Date
	Status    string
	Price     decimal.Decimal
	Nights    int

	// Owner and Category are joined on from the apartment table before the
	// reservation reaches the engine.
	Category string
	Owner    string
}

// Valid reports whether the date range is coherent. Invalid rows are dropped
// upstream; the engine only flags them.
func (r Reservation) Valid() bool {
	return r.Arrival.Before(r.Departure)
}

// =============================================================================
// APARTMENT
// =============================================================================

// Apartment is one row of the normalized apartment table. Name is the unique
// key, whitespace-trimmed by the loader.
type Apartment struct {
	Name       string
	Owner      string
	Category   string
	Commission decimal.Decimal
}

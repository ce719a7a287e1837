/*
engine.go - Overlap test and availability classification

PURPOSE:
  The core primitive of the whole system: deciding whether a reservation
  overlaps a period, and turning overlap counts into availability statuses.

OVERLAP SEMANTICS:
  Overlaps is a closed-interval test on calendar days:

      overlaps = NOT (aEnd < bStart OR aStart > bEnd)

  The engine applies it to a reservation's OCCUPIED span, [arrival,
  departure-1]: the guest leaves on the departure morning, so that day is
  not occupied. This is the single normalization point for the checkout/
  checkin rule — when stay B arrives the day stay A departs, the boundary
  day belongs to B alone, and a single-day query there reports Booked,
  never Overbooked. The contract is pinned by tests.

INDEXING:
  The engine indexes reservations by apartment and by category once at
  construction, so each status or price query scans only the relevant rows
  instead of the whole table. Results are identical to a flat scan.

SEE ALSO:
  - occupancy.go: rollup of statuses into occupancy rates
  - pricing.go: per-category nightly price averages
  - cache.go: per-run memoization of these queries
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// Overlaps is the closed-interval day overlap test between two date spans.
// Symmetric in its two argument pairs.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}

// occupies reports whether the reservation's occupied nights intersect the
// period. The departure day is excluded: a stay arriving the 21st and
// departing the 25th occupies the 21st through the 24th. A degenerate row
// (arrival >= departure) occupies nothing.
func occupies(r Reservation, p Period) bool {
	lastNight := r.Departure.AddDays(-1)
	if lastNight.Before(r.Arrival) {
		return false
	}
	return Overlaps(r.Arrival, lastNight, p.Start, p.End)
}

// =============================================================================
// ENGINE
// =============================================================================

// StatusFilter decides whether a reservation with the given status text
// participates in availability and pricing.
type StatusFilter func(status string) bool

// ExcludeStatuses builds a filter rejecting the listed status texts.
func ExcludeStatuses(statuses ...string) StatusFilter {
	excluded := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		excluded[s] = true
	}
	return func(status string) bool { return !excluded[status] }
}

// PriceField selects the price used for averaging from a reservation.
type PriceField func(Reservation) decimal.Decimal

// Option configures an Engine.
type Option func(*Engine)

// WithStatusFilter restricts which reservations the engine sees. Without it
// every reservation counts, cancelled ones included — that matches the
// report this engine reproduces, but callers that want confirmed-only
// numbers set a filter explicitly.
func WithStatusFilter(f StatusFilter) Option {
	return func(e *Engine) { e.include = f }
}

// WithPriceField overrides the price column used for averaging.
func WithPriceField(f PriceField) Option {
	return func(e *Engine) { e.price = f }
}

// Engine answers availability and pricing queries over an immutable
// reservation snapshot. Construct once per report run.
type Engine struct {
	reservations []Reservation
	byApartment  map[string][]Reservation
	byCategory   map[string][]Reservation
	include      StatusFilter
	price        PriceField
}

// New builds an engine over a snapshot of the reservation table. The slice is
// not retained in mutable form: filtered copies are indexed internally.
func New(reservations []Reservation, opts ...Option) *Engine {
	e := &Engine{
		price: func(r Reservation) decimal.Decimal { return r.Price },
	}
	for _, opt := range opts {
		opt(e)
	}

	e.byApartment = make(map[string][]Reservation)
	e.byCategory = make(map[string][]Reservation)
	for _, r := range reservations {
		if e.include != nil && !e.include(r.Status) {
			continue
		}
		e.reservations = append(e.reservations, r)
		e.byApartment[r.Apartment] = append(e.byApartment[r.Apartment], r)
		if r.Category != "" {
			e.byCategory[r.Category] = append(e.byCategory[r.Category], r)
		}
	}
	return e
}

// ReservationsFor returns the reservations of one apartment, in table order.
func (e *Engine) ReservationsFor(apartment string) []Reservation {
	return e.byApartment[apartment]
}

// Status classifies an apartment's availability over a period by counting
// its overlapping reservations: 0 = Free, 1 = Booked, 2+ = Overbooked.
// An apartment with no reservations at all is always Free.
func (e *Engine) Status(apartment string, p Period) AvailabilityStatus {
	count := 0
	for _, r := range e.byApartment[apartment] {
		if occupies(r, p) {
			count++
		}
	}
	return statusForCount(count)
}

// ReservationsInPeriod returns every reservation overlapping the period,
// regardless of apartment.
func (e *Engine) ReservationsInPeriod(p Period) []Reservation {
	var result []Reservation
	for _, r := range e.reservations {
		if occupies(r, p) {
			result = append(result, r)
		}
	}
	return result
}

// categoryReservationsInPeriod returns the reservations of one category
// overlapping the period.
func (e *Engine) categoryReservationsInPeriod(category string, p Period) []Reservation {
	var result []Reservation
	for _, r := range e.byCategory[category] {
		if occupies(r, p) {
			result = append(result, r)
		}
	}
	return result
}

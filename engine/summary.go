package engine

import "fmt"

// =============================================================================
// AVAILABILITY SUMMARY - Per-category status counts
// =============================================================================

// CategoryCounts tallies the statuses of every apartment in one category for
// one period. Total is the apartment count regardless of status.
type CategoryCounts struct {
	Free       int
	Booked     int
	Overbooked int
	Total      int
}

// Format renders the count cell as "{free}D/{booked}R", with a "/{overbooked}S"
// suffix only when overbooking occurred.
func (c CategoryCounts) Format() string {
	s := fmt.Sprintf("%dD/%dR", c.Free, c.Booked)
	if c.Overbooked > 0 {
		s += fmt.Sprintf("/%dS", c.Overbooked)
	}
	return s
}

// AvailabilitySummary evaluates every apartment's status for the period and
// tallies counts per category. Apartments with an empty or "0" category are
// skipped, mirroring their exclusion from all category aggregations.
func (e *Engine) AvailabilitySummary(apartments []Apartment, p Period) map[string]CategoryCounts {
	summary := make(map[string]CategoryCounts)

	for _, apt := range apartments {
		if apt.Category == "" || apt.Category == "0" {
			continue
		}
		counts := summary[apt.Category]
		counts.Total++
		switch e.Status(apt.Name, p) {
		case StatusBooked:
			counts.Booked++
		case StatusOverbooked:
			counts.Overbooked++
		default:
			counts.Free++
		}
		summary[apt.Category] = counts
	}
	return summary
}

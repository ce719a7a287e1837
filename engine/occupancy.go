package engine

// =============================================================================
// OCCUPANCY - Fraction of periods with at least one reservation
// =============================================================================

// OccupancyRate returns the percentage (0-100) of the given periods in which
// the apartment is Booked or Overbooked. An empty period list yields 0.
func (e *Engine) OccupancyRate(apartment string, periods []Period) float64 {
	if len(periods) == 0 {
		return 0
	}

	reserved := 0
	for _, p := range periods {
		if e.Status(apartment, p) != StatusFree {
			reserved++
		}
	}
	return float64(reserved) / float64(len(periods)) * 100
}

// MonthlyOccupancy restricts the period list to those assigned to the month
// (start date falls within it) and computes the occupancy rate over them.
func (e *Engine) MonthlyOccupancy(apartment string, month MonthPeriod, periods []Period) float64 {
	return e.OccupancyRate(apartment, PeriodsInMonth(periods, month))
}

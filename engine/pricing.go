/*
pricing.go - Per-category average nightly price

PURPOSE:
  Averages reservation prices into a nightly rate per category and period.
  The average is nights-weighted: total price across qualifying stays divided
  by total nights, NOT a mean of per-stay nightly rates. Two stays of
  (300, 4 nights) and (90, 3 nights) average to 390/7, not (75+30)/2.

NO-DATA SENTINEL:
  A category with no qualifying overlapping reservations (or zero total
  nights) has no average. That absence is reported through the ok result,
  never coerced to zero; monthly rollups skip such periods entirely.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// AveragePrice computes the average nightly price for a category over a
// period. Reservations with non-positive nights are excluded from both the
// numerator and the denominator. The second result is false when no data
// qualifies.
func (e *Engine) AveragePrice(category string, p Period) (decimal.Decimal, bool) {
	totalPrice := decimal.Zero
	totalNights := 0

	for _, r := range e.categoryReservationsInPeriod(category, p) {
		if r.Nights <= 0 {
			continue
		}
		totalPrice = totalPrice.Add(e.price(r))
		totalNights += r.Nights
	}

	if totalNights == 0 {
		return decimal.Zero, false
	}
	return totalPrice.Div(decimal.NewFromInt(int64(totalNights))), true
}

// CategoryAverages computes the average nightly price for each category over
// one period. Categories without data are absent from the result.
func (e *Engine) CategoryAverages(categories []string, p Period) map[string]decimal.Decimal {
	averages := make(map[string]decimal.Decimal, len(categories))
	for _, category := range categories {
		if avg, ok := e.AveragePrice(category, p); ok {
			averages[category] = avg
		}
	}
	return averages
}

// MonthlyAveragePrice rolls period averages up into a monthly figure as the
// mean of the period-level averages (mean of means, not re-weighted by
// nights). Periods without data are excluded from the mean; the second
// result is false when no period in the month has data.
func (e *Engine) MonthlyAveragePrice(category string, month MonthPeriod, periods []Period) (decimal.Decimal, bool) {
	sum := decimal.Zero
	count := 0
	for _, p := range PeriodsInMonth(periods, month) {
		if avg, ok := e.AveragePrice(category, p); ok {
			sum = sum.Add(avg)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(count))), true
}

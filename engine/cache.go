package engine

import "github.com/shopspring/decimal"

// =============================================================================
// REPORT CACHE - Per-run memoization of status and price queries
// =============================================================================

// Cache memoizes engine queries for the duration of one report run. The same
// (apartment, period) and (category, period) cells are evaluated once across
// the owner-sheet and combined-sheet passes; values are immutable once
// computed since the source tables never change mid-run.
//
// Report generation is single-threaded, so the cache takes no locks and is
// not safe for concurrent use.
type Cache struct {
	engine *Engine
	status map[statusKey]AvailabilityStatus
	price  map[priceKey]priceEntry
}

type statusKey struct {
	apartment string
	start     Date
	end       Date
}

type priceKey struct {
	category string
	start    Date
	end      Date
}

type priceEntry struct {
	value decimal.Decimal
	ok    bool
}

// NewCache wraps an engine with memoization.
func NewCache(e *Engine) *Cache {
	return &Cache{
		engine: e,
		status: make(map[statusKey]AvailabilityStatus),
		price:  make(map[priceKey]priceEntry),
	}
}

// Engine returns the wrapped engine for queries that bypass the cache.
func (c *Cache) Engine() *Engine { return c.engine }

// Status returns the memoized availability status for an apartment and period.
func (c *Cache) Status(apartment string, p Period) AvailabilityStatus {
	key := statusKey{apartment: apartment, start: p.Start, end: p.End}
	if s, hit := c.status[key]; hit {
		return s
	}
	s := c.engine.Status(apartment, p)
	c.status[key] = s
	return s
}

// AveragePrice returns the memoized average nightly price for a category and
// period, with the same no-data sentinel as the engine.
func (c *Cache) AveragePrice(category string, p Period) (decimal.Decimal, bool) {
	key := priceKey{category: category, start: p.Start, end: p.End}
	if e, hit := c.price[key]; hit {
		return e.value, e.ok
	}
	value, ok := c.engine.AveragePrice(category, p)
	c.price[key] = priceEntry{value: value, ok: ok}
	return value, ok
}

// MonthlyAveragePrice is the mean of the memoized period averages assigned to
// the month, no-data periods excluded.
func (c *Cache) MonthlyAveragePrice(category string, month MonthPeriod, periods []Period) (decimal.Decimal, bool) {
	sum := decimal.Zero
	count := 0
	for _, p := range PeriodsInMonth(periods, month) {
		if avg, ok := c.AveragePrice(category, p); ok {
			sum = sum.Add(avg)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(count))), true
}

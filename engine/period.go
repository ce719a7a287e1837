package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - One report column
// =============================================================================

// Period is a contiguous inclusive date range used as one report column.
// The label doubles as a column key for consumers outside the engine.
type Period struct {
	Start Date
	End   Date
	Label string
}

// NewPeriod builds a period with its derived label.
func NewPeriod(start, end Date) Period {
	return Period{Start: start, End: end, Label: FormatPeriodLabel(start, end)}
}

// FormatPeriodLabel renders the column header as "DD/MM - DD/MM".
func FormatPeriodLabel(start, end Date) string {
	return start.Format("02/01") + " - " + end.Format("02/01")
}

// Contains reports whether the period includes the given day.
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns the period length in days.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// MONTH PERIOD - Monthly rollup column
// =============================================================================

// MonthPeriod is a whole calendar month used for summary columns. A regular
// period belongs to the month containing its start date, even when it spans
// the month boundary.
type MonthPeriod struct {
	Year  int
	Month time.Month
	Start Date
	End   Date
	Label string
}

// NewMonthPeriod builds the month period for a given year and month.
func NewMonthPeriod(year int, month time.Month) MonthPeriod {
	return MonthPeriod{
		Year:  year,
		Month: month,
		Start: StartOfMonth(year, month),
		End:   EndOfMonth(year, month),
		Label: fmt.Sprintf("%s %d - Mois complet", month, year),
	}
}

// ContainsStartOf reports whether a period is assigned to this month.
func (m MonthPeriod) ContainsStartOf(p Period) bool {
	return p.Start.Year() == m.Year && p.Start.Month() == m.Month
}

// =============================================================================
// PARTITIONERS
// =============================================================================
// All partitioning functions are pure and deterministic. They fail only on
// start > end (and periodDays < 1 for the fixed-length variant).

// GeneratePeriods splits [start, end] into consecutive periods of periodDays
// days each; the last period is clipped to end.
func GeneratePeriods(start, end Date, periodDays int) ([]Period, error) {
	if start.After(end) {
		return nil, &RangeError{Start: start, End: end}
	}
	if periodDays < 1 {
		return nil, ErrInvalidPeriodDays
	}

	var periods []Period
	current := start
	for current.BeforeOrEqual(end) {
		periodEnd := minDate(current.AddDays(periodDays-1), end)
		periods = append(periods, NewPeriod(current, periodEnd))
		current = periodEnd.AddDays(1)
	}
	return periods, nil
}

// GenerateWeekdayWeekendPeriods alternates Monday-Thursday and Friday-Sunday
// periods across [start, end], clipped to the range at both boundaries.
func GenerateWeekdayWeekendPeriods(start, end Date) ([]Period, error) {
	if start.After(end) {
		return nil, &RangeError{Start: start, End: end}
	}

	var periods []Period
	current := start
	for current.BeforeOrEqual(end) {
		var periodEnd Date
		switch wd := current.Weekday(); wd {
		case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
			periodEnd = minDate(current.AddDays(int(time.Thursday-wd)), end)
		default:
			// Friday, Saturday or Sunday: run to the coming Sunday.
			periodEnd = minDate(current.AddDays((7-int(wd))%7), end)
		}
		periods = append(periods, NewPeriod(current, periodEnd))
		current = periodEnd.AddDays(1)
	}
	return periods, nil
}

// GenerateMonthlyPeriods produces one MonthPeriod per calendar month touched
// by [start, end], partial months included at both ends.
func GenerateMonthlyPeriods(start, end Date) ([]MonthPeriod, error) {
	if start.After(end) {
		return nil, &RangeError{Start: start, End: end}
	}

	var months []MonthPeriod
	current := StartOfMonth(start.Year(), start.Month())
	last := StartOfMonth(end.Year(), end.Month())
	for current.BeforeOrEqual(last) {
		months = append(months, NewMonthPeriod(current.Year(), current.Month()))
		current = current.AddMonths(1)
	}
	return months, nil
}

// =============================================================================
// MONTH GROUPING
// =============================================================================

// MonthGroup pairs a month with the ordered periods assigned to it.
type MonthGroup struct {
	Month   MonthPeriod
	Periods []Period
}

// GroupPeriodsByMonth partitions periods by the month containing each
// period's start date. Every month from the input list appears in the result,
// possibly with an empty period list.
func GroupPeriodsByMonth(periods []Period, months []MonthPeriod) []MonthGroup {
	groups := make([]MonthGroup, 0, len(months))
	for _, month := range months {
		group := MonthGroup{Month: month}
		for _, p := range periods {
			if month.ContainsStartOf(p) {
				group.Periods = append(group.Periods, p)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// PeriodsInMonth returns the ordered subsequence of periods assigned to the
// given month.
func PeriodsInMonth(periods []Period, month MonthPeriod) []Period {
	var result []Period
	for _, p := range periods {
		if month.ContainsStartOf(p) {
			result = append(result, p)
		}
	}
	return result
}

func minDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

/*
Package report assembles the owner workbook from engine output.

PURPOSE:
  Turns the engine's per-period computations into sheet models: one sheet
  per owner plus a combined "All Apartments" sheet. Each sheet has a header
  of period labels grouped by month, category price rows on top, then one
  row per apartment with its availability status per period and its monthly
  occupancy rate.

LAYOUT:
  | Type                  | 01/10 - 03/10 | ... | October 2025 - Mois complet |
  | Prix moyen - studio   | 55.71         | ... | 60.25                       |
  | Studio A              | Réservé       | ... | 75.0%                       |

  Category rows are summary rows, highlighted by the renderer. Price cells
  are numeric (2 decimals) or empty when a category has no data.

SEE ALSO:
  - workbook.go: excelize rendering and styling
  - engine: the computations behind every cell
*/
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/inventory"
)

// AllApartmentsSheet is the name of the combined sheet closing the workbook.
const AllApartmentsSheet = "All Apartments"

// maxSheetName is the xlsx limit on sheet name length, in characters.
const maxSheetName = 31

// ProgressFunc receives a progress update after each completed sheet.
type ProgressFunc func(current, total int, message string)

// Sheet is one rendered-to-be worksheet. Cells are strings for statuses and
// labels, float64 for price values, nil for empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	// SummaryRows is the number of leading category price rows, which the
	// renderer highlights.
	SummaryRows int
}

// Builder assembles sheets for one report run. All computations go through a
// single cache, so a status or price shared between an owner sheet and the
// combined sheet is computed once.
type Builder struct {
	cache      *engine.Cache
	apartments []engine.Apartment
	categories []string
	periods    []engine.Period
	groups     []engine.MonthGroup
}

// NewBuilder prepares a report over the given tables and period partition.
// Engine options (status filter, price field) apply to every cell.
func NewBuilder(
	apartments []engine.Apartment,
	reservations []engine.Reservation,
	periods []engine.Period,
	months []engine.MonthPeriod,
	opts ...engine.Option,
) *Builder {
	return &Builder{
		cache:      engine.NewCache(engine.New(reservations, opts...)),
		apartments: inventory.SortByName(apartments),
		categories: inventory.Categories(reservations, apartments),
		periods:    periods,
		groups:     engine.GroupPeriodsByMonth(periods, months),
	}
}

// BuildSheets produces one sheet per owner, in owner order, then the combined
// sheet. progress (optional) is invoked after each sheet.
func (b *Builder) BuildSheets(progress ProgressFunc) []Sheet {
	owners := inventory.Owners(b.apartments)
	total := len(owners) + 1

	sheets := make([]Sheet, 0, total)
	for i, owner := range owners {
		sheets = append(sheets, b.buildSheet(sheetName(owner), inventory.ApartmentsForOwner(b.apartments, owner)))
		if progress != nil {
			progress(i+1, total, fmt.Sprintf("Creating sheet: %s", owner))
		}
	}

	sheets = append(sheets, b.buildSheet(AllApartmentsSheet, b.apartments))
	if progress != nil {
		progress(total, total, "Creating '"+AllApartmentsSheet+"' sheet")
	}
	return sheets
}

// =============================================================================
// SHEET ASSEMBLY
// =============================================================================

func (b *Builder) buildSheet(name string, apartments []engine.Apartment) Sheet {
	sheet := Sheet{
		Name:        name,
		Header:      b.header(),
		SummaryRows: len(b.categories),
	}

	for _, category := range b.categories {
		sheet.Rows = append(sheet.Rows, b.categoryRow(category))
	}
	for _, apt := range apartments {
		sheet.Rows = append(sheet.Rows, b.apartmentRow(apt.Name))
	}
	return sheet
}

// header is "Type", then each month's period labels followed by the month's
// own label.
func (b *Builder) header() []string {
	header := []string{"Type"}
	for _, group := range b.groups {
		for _, p := range group.Periods {
			header = append(header, p.Label)
		}
		header = append(header, group.Month.Label)
	}
	return header
}

func (b *Builder) categoryRow(category string) []any {
	row := []any{inventory.CategoryLabel(category)}
	for _, group := range b.groups {
		for _, p := range group.Periods {
			row = append(row, priceCell(b.cache.AveragePrice(category, p)))
		}
		row = append(row, priceCell(b.cache.MonthlyAveragePrice(category, group.Month, b.periods)))
	}
	return row
}

func (b *Builder) apartmentRow(apartment string) []any {
	row := []any{apartment}
	for _, group := range b.groups {
		for _, p := range group.Periods {
			row = append(row, b.cache.Status(apartment, p).String())
		}
		occupancy := b.cache.Engine().MonthlyOccupancy(apartment, group.Month, b.periods)
		row = append(row, fmt.Sprintf("%.1f%%", occupancy))
	}
	return row
}

// AvailabilityCounts builds the per-category availability matrix: one row per
// category, one column per period, cells like "5D/3R" or "5D/3R/1S".
func (b *Builder) AvailabilityCounts() Sheet {
	sheet := Sheet{
		Name:   "Disponibilité",
		Header: []string{"Type"},
	}
	for _, p := range b.periods {
		sheet.Header = append(sheet.Header, p.Label)
	}

	summaries := make([]map[string]engine.CategoryCounts, len(b.periods))
	for i, p := range b.periods {
		summaries[i] = b.cache.Engine().AvailabilitySummary(b.apartments, p)
	}

	for _, category := range b.categories {
		row := []any{"Disponibilité - " + category}
		for i := range b.periods {
			if counts, ok := summaries[i][category]; ok {
				row = append(row, counts.Format())
			} else {
				row = append(row, "")
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// priceCell converts a (value, ok) average into a cell: a 2-decimal float, or
// nil when the category had no data for the span.
func priceCell(value decimal.Decimal, ok bool) any {
	if !ok {
		return nil
	}
	return value.Round(2).InexactFloat64()
}

// sheetName truncates an owner name to the xlsx sheet-name limit.
func sheetName(owner string) string {
	runes := []rune(owner)
	if len(runes) <= maxSheetName {
		return owner
	}
	return string(runes[:maxSheetName])
}

/*
Package loader reads the two input files of a report run.

PURPOSE:
  Turns the raw upload formats into the normalized tables the engine
  consumes: an xlsx workbook mapping apartments to owners and categories,
  and a CSV export of reservations.

INPUT FORMATS:
  Mapping workbook: first sheet, one row per apartment, columns
  "Nom du logement", "Proprio", "catégorie" and optionally "commission".
  Reservations CSV: a title line, a header row, then one row per stay;
  dates in dd/mm/yyyy. Rows whose dates do not parse are dropped and
  counted, never silently ignored.

SEE ALSO:
  - reservations.go: the CSV side
  - inventory: merging the two tables into one annotated set
*/
package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stayline/availability-engine/engine"
)

// ErrMissingColumn indicates a required column was absent from an input file.
var ErrMissingColumn = errors.New("missing required column")

// Mapping column headers, as exported by the property-management tool.
const (
	colApartment  = "Nom du logement"
	colOwner      = "Proprio"
	colCategory   = "catégorie"
	colCommission = "commission"
)

var defaultCommission = decimal.NewFromFloat(0.2)

// =============================================================================
// MAPPING WORKBOOK
// =============================================================================

// LoadMapping reads the apartment mapping from the first sheet of an xlsx
// workbook. Apartment names are trimmed; rows with an empty name are skipped.
// Commission defaults to 0.2 when the column is absent or the cell is empty.
func LoadMapping(r io.Reader) ([]engine.Apartment, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open mapping workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("mapping workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read mapping sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("mapping sheet %q is empty", sheets[0])
	}

	cols, err := indexColumns(rows[0], colApartment, colOwner, colCategory)
	if err != nil {
		return nil, err
	}
	commissionIdx, hasCommission := headerIndex(rows[0], colCommission)

	var apartments []engine.Apartment
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols[colApartment]))
		if name == "" {
			continue
		}
		apt := engine.Apartment{
			Name:       name,
			Owner:      strings.TrimSpace(cell(row, cols[colOwner])),
			Category:   strings.TrimSpace(cell(row, cols[colCategory])),
			Commission: defaultCommission,
		}
		if hasCommission {
			if c, err := decimal.NewFromString(strings.TrimSpace(cell(row, commissionIdx))); err == nil {
				apt.Commission = c
			}
		}
		apartments = append(apartments, apt)
	}
	return apartments, nil
}

// =============================================================================
// HEADER HELPERS
// =============================================================================

// indexColumns locates each required header and returns name -> column index.
func indexColumns(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := headerIndex(header, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func headerIndex(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return 0, false
}

// cell returns row[i], tolerating short rows (trailing empty cells are not
// materialized by either excelize or encoding/csv).
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

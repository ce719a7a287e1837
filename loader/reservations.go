/*
Reservation CSV loading.

PURPOSE:
  Parses the reservation export: a title line, a header row, then one row
  per stay. Dates are dd/mm/yyyy. Rows with unparseable dates are dropped
  and counted in the result so callers can surface the loss.

SEE ALSO:
  - loader.go: mapping workbook and shared header helpers
*/
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayline/availability-engine/engine"
)

// DefaultPriceColumn is the revenue column used when the caller does not
// select one.
const DefaultPriceColumn = "Location avec TVA"

// Reservation CSV column headers.
const (
	colArrival   = "Date d'arrivée"
	colDeparture = "Date de sortie"
	colStatus    = "Statut"
	colNights    = "nuits"
)

const csvDateLayout = "02/01/2006"

// ReservationResult is the outcome of loading a reservation export.
type ReservationResult struct {
	Reservations []engine.Reservation
	// Dropped counts rows removed because a date failed to parse.
	Dropped int
}

// LoadReservations reads the reservation CSV export, using priceColumn as the
// per-stay revenue (DefaultPriceColumn when empty). The first line of the file
// is a title and is skipped. Rows are sorted by arrival date.
func LoadReservations(r io.Reader, priceColumn string) (ReservationResult, error) {
	if priceColumn == "" {
		priceColumn = DefaultPriceColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	// Title line.
	if _, err := cr.Read(); err != nil {
		return ReservationResult{}, fmt.Errorf("read reservations title line: %w", err)
	}
	header, err := cr.Read()
	if err != nil {
		return ReservationResult{}, fmt.Errorf("read reservations header: %w", err)
	}

	cols, err := indexColumns(header, colApartment, colArrival, colDeparture, colStatus, priceColumn)
	if err != nil {
		return ReservationResult{}, err
	}
	nightsIdx, hasNights := headerIndex(header, colNights)

	var result ReservationResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ReservationResult{}, fmt.Errorf("read reservations row: %w", err)
		}

		arrival, errA := parseCSVDate(cell(row, cols[colArrival]))
		departure, errD := parseCSVDate(cell(row, cols[colDeparture]))
		if errA != nil || errD != nil {
			result.Dropped++
			continue
		}

		res := engine.Reservation{
			Apartment: strings.TrimSpace(cell(row, cols[colApartment])),
			Arrival:   arrival,
			Departure: departure,
			Status:    strings.TrimSpace(cell(row, cols[colStatus])),
			Price:     parsePrice(cell(row, cols[priceColumn])),
			Nights:    1,
		}
		if hasNights {
			if n, err := strconv.Atoi(strings.TrimSpace(cell(row, nightsIdx))); err == nil {
				res.Nights = n
			}
		}
		result.Reservations = append(result.Reservations, res)
	}

	sort.SliceStable(result.Reservations, func(i, j int) bool {
		return result.Reservations[i].Arrival.Before(result.Reservations[j].Arrival)
	})
	return result, nil
}

func parseCSVDate(s string) (engine.Date, error) {
	t, err := time.Parse(csvDateLayout, strings.TrimSpace(s))
	if err != nil {
		return engine.Date{}, err
	}
	return engine.DateOf(t), nil
}

// parsePrice tolerates the export's formatting quirks: comma decimal
// separators, currency suffixes, thousands spaces. Unparseable cells become
// zero rather than dropping the stay.
func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return p
}

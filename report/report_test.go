package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/report"
)

// October 22-31 2025 partitioned into 3-day periods:
// 22-24, 25-27, 28-30, 31-31.
func octoberPeriods(t *testing.T) ([]engine.Period, []engine.MonthPeriod) {
	t.Helper()

	start := engine.NewDate(2025, time.October, 22)
	end := engine.NewDate(2025, time.October, 31)

	periods, err := engine.GeneratePeriods(start, end, 3)
	require.NoError(t, err)
	months, err := engine.GenerateMonthlyPeriods(start, end)
	require.NoError(t, err)
	return periods, months
}

func testApartments() []engine.Apartment {
	return []engine.Apartment{
		{Name: "Studio A", Owner: "Durand", Category: "studio"},
		{Name: "Villa Mer", Owner: "Martin", Category: "3 chambres"},
	}
}

func testReservations() []engine.Reservation {
	return []engine.Reservation{
		{
			Apartment: "Studio A",
			Arrival:   engine.NewDate(2025, time.October, 22),
			Departure: engine.NewDate(2025, time.October, 25),
			Status:    "Confirmé",
			Price:     decimal.NewFromInt(150),
			Nights:    3,
			Category:  "studio",
			Owner:     "Durand",
		},
	}
}

func newTestBuilder(t *testing.T) *report.Builder {
	t.Helper()
	periods, months := octoberPeriods(t)
	return report.NewBuilder(testApartments(), testReservations(), periods, months)
}

func TestBuildSheets_OnePerOwnerPlusCombined(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	require.Len(t, sheets, 3)
	assert.Equal(t, "Durand", sheets[0].Name)
	assert.Equal(t, "Martin", sheets[1].Name)
	assert.Equal(t, report.AllApartmentsSheet, sheets[2].Name)
}

func TestBuildSheets_HeaderGroupsPeriodsByMonth(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	expected := []string{
		"Type",
		"22/10 - 24/10",
		"25/10 - 27/10",
		"28/10 - 30/10",
		"31/10 - 31/10",
		"October 2025 - Mois complet",
	}
	assert.Equal(t, expected, sheets[0].Header)
}

func TestBuildSheets_CategoryPriceRows(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	durand := sheets[0]
	require.Equal(t, 2, durand.SummaryRows, "one summary row per category")

	studio := durand.Rows[0]
	assert.Equal(t, "Prix moyen - studio", studio[0])
	assert.Equal(t, 50.0, studio[1], "150 over 3 nights")
	assert.Nil(t, studio[2], "no overlapping stay means an empty cell")
	assert.Equal(t, 50.0, studio[5], "monthly mean of the single priced period")

	villa := durand.Rows[1]
	assert.Equal(t, "Prix moyen - 3 chambres", villa[0])
	assert.Nil(t, villa[1])
}

func TestBuildSheets_ApartmentStatusAndOccupancyRows(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	durand := sheets[0]
	require.Len(t, durand.Rows, 3, "two category rows plus one apartment")

	studioA := durand.Rows[2]
	assert.Equal(t, []any{
		"Studio A",
		"Réservé",
		"Disponible",
		"Disponible",
		"Disponible",
		"25.0%",
	}, studioA)
}

func TestBuildSheets_CombinedSheetListsAllApartments(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	combined := sheets[2]
	require.Len(t, combined.Rows, 4)
	assert.Equal(t, "Studio A", combined.Rows[2][0])
	assert.Equal(t, "Villa Mer", combined.Rows[3][0])
}

func TestBuildSheets_ProgressAfterEachSheet(t *testing.T) {
	var calls []string
	var lastCurrent, lastTotal int

	newTestBuilder(t).BuildSheets(func(current, total int, message string) {
		calls = append(calls, message)
		lastCurrent, lastTotal = current, total
	})

	require.Len(t, calls, 3)
	assert.Equal(t, "Creating sheet: Durand", calls[0])
	assert.Equal(t, "Creating sheet: Martin", calls[1])
	assert.Equal(t, 3, lastCurrent)
	assert.Equal(t, 3, lastTotal)
}

func TestBuildSheets_Idempotent(t *testing.T) {
	b := newTestBuilder(t)
	first := b.BuildSheets(nil)
	second := b.BuildSheets(nil)
	assert.Equal(t, first, second)
}

func TestBuildSheets_LongOwnerNameTruncated(t *testing.T) {
	periods, months := octoberPeriods(t)
	owner := strings.Repeat("é", 40)
	apartments := []engine.Apartment{{Name: "Studio A", Owner: owner, Category: "studio"}}

	sheets := report.NewBuilder(apartments, nil, periods, months).BuildSheets(nil)
	require.Len(t, sheets, 2)
	assert.Equal(t, strings.Repeat("é", 31), sheets[0].Name)
}

func TestAvailabilityCounts_MatrixCells(t *testing.T) {
	sheet := newTestBuilder(t).AvailabilityCounts()

	require.Len(t, sheet.Header, 5, "Type plus four periods")
	require.Len(t, sheet.Rows, 2)

	studio := sheet.Rows[0]
	assert.Equal(t, "Disponibilité - studio", studio[0])
	assert.Equal(t, "0D/1R", studio[1], "the studio is booked in the first period")
	assert.Equal(t, "1D/0R", studio[2])

	villa := sheet.Rows[1]
	assert.Equal(t, "Disponibilité - 3 chambres", villa[0])
	assert.Equal(t, "1D/0R", villa[1])
}

func TestWrite_RoundTripsThroughExcelize(t *testing.T) {
	sheets := newTestBuilder(t).BuildSheets(nil)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sheets))

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Durand", "Martin", report.AllApartmentsSheet}, wb.GetSheetList())

	rows, err := wb.GetRows("Durand")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Type", rows[0][0])
	assert.Equal(t, "Prix moyen - studio", rows[1][0])
	assert.Equal(t, "50", rows[1][1])
	assert.Equal(t, "Réservé", rows[3][1])
	assert.Equal(t, "25.0%", rows[3][5])
}

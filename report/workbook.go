/*
Workbook rendering.

PURPOSE:
  Serializes sheet models into a styled xlsx workbook: bold shaded header,
  thin borders everywhere, centered cells, left-aligned row labels, wide
  label column, highlighted category summary rows.

SEE ALSO:
  - report.go: the sheet models being rendered
*/
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	headerFill  = "D3D3D3"
	summaryFill = "E6F3FF"

	labelColWidth = 35
	dataColWidth  = 12
)

// styleSet holds the style ids registered on one workbook.
type styleSet struct {
	header       int
	body         int
	label        int
	summary      int
	summaryLabel int
}

// Render serializes the sheets into a new workbook, in order.
func Render(sheets []Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := registerStyles(f)
	if err != nil {
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	for _, sheet := range sheets {
		if err := renderSheet(f, sheet, styles); err != nil {
			return nil, fmt.Errorf("render sheet %q: %w", sheet.Name, err)
		}
	}
	if len(sheets) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write renders the sheets and writes the workbook to w.
func Write(w io.Writer, sheets []Sheet) error {
	f, err := Render(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// =============================================================================
// SHEET RENDERING
// =============================================================================

func renderSheet(f *excelize.File, sheet Sheet, styles styleSet) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return err
	}

	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, start, &row); err != nil {
			return err
		}
	}

	return styleSheet(f, sheet, styles)
}

func styleSheet(f *excelize.File, sheet Sheet, styles styleSet) error {
	cols := len(sheet.Header)
	rows := len(sheet.Rows) + 1
	if cols == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheet.Name, "A", "A", labelColWidth); err != nil {
		return err
	}
	if cols > 1 {
		second, err := excelize.ColumnNumberToName(2)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, second, lastCol, dataColWidth); err != nil {
			return err
		}
	}

	// Header row, then summary rows, then the rest.
	if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}
	for row := 2; row <= rows; row++ {
		body, label := styles.body, styles.label
		if row-2 < sheet.SummaryRows {
			body, label = styles.summary, styles.summaryLabel
		}
		n := strconv.Itoa(row)
		if err := f.SetCellStyle(sheet.Name, "A"+n, "A"+n, label); err != nil {
			return err
		}
		if cols > 1 {
			if err := f.SetCellStyle(sheet.Name, "B"+n, lastCol+n, body); err != nil {
				return err
			}
		}
	}
	return nil
}

// =============================================================================
// STYLES
// =============================================================================

func registerStyles(f *excelize.File) (styleSet, error) {
	borders := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}

	var (
		styles styleSet
		err    error
	)
	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: centered,
		Fill:      fill(headerFill),
		Border:    borders,
	})
	if err != nil {
		return styleSet{}, err
	}
	styles.body, err = f.NewStyle(&excelize.Style{Alignment: centered, Border: borders})
	if err != nil {
		return styleSet{}, err
	}
	styles.label, err = f.NewStyle(&excelize.Style{Alignment: left, Border: borders})
	if err != nil {
		return styleSet{}, err
	}
	styles.summary, err = f.NewStyle(&excelize.Style{
		Alignment: centered,
		Fill:      fill(summaryFill),
		Border:    borders,
	})
	if err != nil {
		return styleSet{}, err
	}
	styles.summaryLabel, err = f.NewStyle(&excelize.Style{
		Alignment: left,
		Fill:      fill(summaryFill),
		Border:    borders,
	})
	if err != nil {
		return styleSet{}, err
	}
	return styles, nil
}

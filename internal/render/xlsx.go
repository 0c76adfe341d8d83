package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
)

// SheetName is the worksheet holding the matched rows
const SheetName = "IP Records"

// XLSX renders the table as a single-sheet workbook. Headings, when present,
// sit above the column titles.
func XLSX(table esic.StructuredTable, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	row := 1
	for _, line := range []string{opts.Headings.Main, opts.Headings.Sub} {
		if line == "" {
			continue
		}
		if err := writeRow(f, row, line); err != nil {
			return nil, err
		}
		row++
	}
	if row > 1 {
		row++
	}

	if err := writeRow(f, row, HeaderLabels...); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(SheetName, cellName(1, row), cellName(len(HeaderLabels), row), style)
	}
	row++

	for _, values := range renumber(table) {
		if err := writeRow(f, row, values...); err != nil {
			return nil, err
		}
		row++
	}

	if opts.Footer.PrintedOn != "" {
		row++
		if err := writeRow(f, row, "Printed On: "+opts.Footer.PrintedOn+" "+opts.Footer.PrintedTime); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 10) // serial, disability
	_ = f.SetColWidth(SheetName, "C", "C", 14) // ip number
	_ = f.SetColWidth(SheetName, "D", "D", 32) // name
	_ = f.SetColWidth(SheetName, "E", "G", 14) // amounts
	_ = f.SetColWidth(SheetName, "H", "H", 24) // reason

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRow fills consecutive cells of row starting at column A
func writeRow(f *excelize.File, row int, values ...string) error {
	for i, v := range values {
		cell := cellName(i+1, row)
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("xlsx cell %s: %w", cell, err)
		}
	}
	return nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

package application

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes a header row of column titles and one line per record,
// with join columns already resolved to names.
//
// Values are joined with commas as they are: embedded commas, quotes or
// newlines are not escaped. Reference data is assumed delimiter-free.
func WriteCSV[T any](w io.Writer, list []T, cols []Column[T], refs Refs) error {
	var b strings.Builder
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	b.WriteString(strings.Join(headers, ","))

	cells := make([]string, len(cols))
	for _, rec := range list {
		for i, col := range cols {
			cells[i] = col.Value(rec, refs)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteXLSX writes the same table as WriteCSV into a one-sheet workbook.
func WriteXLSX[T any](w io.Writer, title string, list []T, cols []Column[T], refs Refs) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(title)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}
	for r, rec := range list {
		for i, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, col.Value(rec, refs)); err != nil {
				return err
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetName trims title to Excel's 31 character limit and strips the
// characters sheet names may not contain.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Sheet1"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

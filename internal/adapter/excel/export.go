package excel

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used for exported workbooks.
const DefaultSheet = "generation"

// WriteRecords writes recs to w as an xlsx workbook with one header row of
// workbook column names. Missing values are left as empty cells.
func WriteRecords(w io.Writer, sheet string, recs []domain.Record) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, header := range domain.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(domain.Columns))
	_ = f.SetColWidth(sheet, "A", last, 18)

	for i, rec := range recs {
		row := rowValues(rec)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveRecords writes recs to a workbook file at path.
func SaveRecords(path, sheet string, recs []domain.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRecords(f, sheet, recs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func rowValues(rec domain.Record) []any {
	row := make([]any, len(domain.Columns))
	for i, col := range domain.Columns {
		switch col {
		case domain.ColContinent:
			row[i] = rec.Continent
		case domain.ColCountry:
			row[i] = rec.Country
		case domain.ColYear:
			row[i] = rec.Year
		default:
			if v := rec.Value(col); !math.IsNaN(v) && !math.IsInf(v, 0) {
				row[i] = v
			}
		}
	}
	return row
}

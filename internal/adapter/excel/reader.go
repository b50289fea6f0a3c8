// Package excel reads the generation dataset from an xlsx workbook and
// writes filtered records back out as one.
package excel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Reader streams data rows from one sheet. It implements
// pipeline.BatchExtractor.
type Reader struct {
	file    *excelize.File
	rows    *excelize.Rows
	sheet   string
	index   map[string]int // canonical column name -> cell index
	line    int
	skipped int
	logger  *slog.Logger
}

// Open opens the workbook at path and positions the reader after the header
// row. An empty sheet name selects the first sheet. It fails with
// domain.ErrMissingColumn when a required column is absent.
func Open(path, sheet string, logger *slog.Logger) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	r, err := newReader(f, sheet, logger)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// OpenReader is like Open but reads the workbook from an io.Reader.
func OpenReader(src io.Reader, sheet string, logger *slog.Logger) (*Reader, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	r, err := newReader(f, sheet, logger)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

func newReader(f *excelize.File, sheet string, logger *slog.Logger) (*Reader, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	r := &Reader{file: f, rows: rows, sheet: sheet, logger: logger}
	if err := r.readHeader(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	logger.Info("workbook opened", "sheet", sheet, "columns", len(r.index))
	return r, nil
}

func (r *Reader) readHeader() error {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		return fmt.Errorf("%w: sheet %q is empty", domain.ErrMissingColumn, r.sheet)
	}
	r.line = 1

	cells, err := r.rows.Columns()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(cells))
	for i, c := range cells {
		name := domain.NormalizeColumn(c)
		if name == "" {
			continue
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range domain.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	r.index = index
	return nil
}

// Sheet returns the name of the sheet being read.
func (r *Reader) Sheet() string {
	return r.sheet
}

// ExtractBatch returns up to n rows. Blank rows are skipped. It returns
// io.EOF together with the final rows once the sheet is exhausted.
func (r *Reader) ExtractBatch(ctx context.Context, n int) ([]domain.RawRow, error) {
	batch := make([]domain.RawRow, 0, n)
	for len(batch) < n {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		if !r.rows.Next() {
			if err := r.rows.Error(); err != nil {
				return batch, fmt.Errorf("read sheet %q: %w", r.sheet, err)
			}
			return batch, io.EOF
		}
		r.line++

		cells, err := r.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			r.skipped++
			r.logger.Warn("skipping undecodable row", "sheet", r.sheet, "line", r.line, "error", err)
			continue
		}
		if blank(cells) {
			r.logger.Debug("skipping blank row", "line", r.line)
			continue
		}

		fields := make(map[string]string, len(domain.Columns))
		for _, col := range domain.Columns {
			if i := r.index[col]; i < len(cells) {
				fields[col] = cells[i]
			}
		}
		batch = append(batch, domain.RawRow{Sheet: r.sheet, Line: r.line, Fields: fields})
	}
	return batch, nil
}

// Skipped returns the number of rows that could not be decoded.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Close releases the row iterator and the workbook.
func (r *Reader) Close() error {
	return errors.Join(r.rows.Close(), r.file.Close())
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

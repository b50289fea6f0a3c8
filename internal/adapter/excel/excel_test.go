package excel_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []domain.Record {
	nan := math.NaN()
	return []domain.Record{
		{Continent: "Europe", Country: "France", Year: 2001, Geo: domain.Geo{Lat: 46.2, Lon: 2.2}, Renewables: 75.5, Fossil: 50, PctShare: 13.5, Nuclear: 400, Biofuel: 1, Hydro: 70, Solar: 0.5, Wind: 2, OtherRenewable: 0.25},
		{Continent: "Europe", Country: "Germany", Year: 2001, Geo: domain.NoGeo, Renewables: 37.9, Fossil: nan, PctShare: nan, Nuclear: 171, Biofuel: 4, Hydro: 23, Solar: 0.1, Wind: 10.5, OtherRenewable: nan},
		{Continent: "Asia", Country: "Japan", Year: 2002, Geo: domain.Geo{Lat: 36.2, Lon: 138.25}, Renewables: 100, Fossil: 700, PctShare: 10, Nuclear: 295, Biofuel: 10, Hydro: 85, Solar: 1, Wind: 0.5, OtherRenewable: 3},
	}
}

func writeWorkbook(t *testing.T, header []any, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func readAll(t *testing.T, r *excel.Reader, batch int) []domain.RawRow {
	t.Helper()
	var out []domain.RawRow
	for {
		rows, err := r.ExtractBatch(context.Background(), batch)
		out = append(out, rows...)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, excel.SaveRecords(path, "", sampleRecords()))

	r, err := excel.Open(path, "", slog.Default())
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, excel.DefaultSheet, r.Sheet())

	raws := readAll(t, r, 2)
	require.Len(t, raws, 3)
	assert.Equal(t, 2, raws[0].Line)
	assert.Equal(t, 4, raws[2].Line)

	got := make([]domain.Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := domain.ParseRawRow(raw)
		require.NoError(t, err)
		got = append(got, rec)
	}

	want := sampleRecords()
	for i := range want {
		assert.Equal(t, want[i].Country, got[i].Country)
		assert.Equal(t, want[i].Year, got[i].Year)
		assert.Equal(t, want[i].Geo.Valid(), got[i].Geo.Valid())
		for _, col := range domain.Columns[3:] {
			w, g := want[i].Value(col), got[i].Value(col)
			if math.IsNaN(w) {
				assert.True(t, math.IsNaN(g), "%s row %d", col, i)
				continue
			}
			assert.InDelta(t, w, g, 1e-9, "%s row %d", col, i)
		}
	}
}

func TestOpen_HeaderNormalizationAndExtraColumns(t *testing.T) {
	header := []any{"", " Continent ", "COUNTRY", "Year", "latitude", "longitude",
		"renewables_electricity", "fossil_electricity", "pct_share",
		"nuclear_electricity", "biofuel_electricity", "hydro_electricity",
		"solar_electricity", "wind_electricity", "other_renewable_electricity"}
	path := writeWorkbook(t, header,
		[]any{0, "Europe", "Italy", 2005, 41.9, 12.6, 50, 250, 16, 0, 5, 40, 0.1, 2, 5},
		[]any{},
		[]any{1, "Europe", "Italy", 2006, 41.9, 12.6, 52, 240, 17, 0, 6, 38, 0.2, 3, 5},
	)

	r, err := excel.Open(path, "Sheet1", slog.Default())
	require.NoError(t, err)
	defer r.Close()

	raws := readAll(t, r, 10)
	require.Len(t, raws, 2)
	assert.Equal(t, "Italy", raws[0].Fields[domain.ColCountry])
	assert.Equal(t, "2006", raws[1].Fields[domain.ColYear])
	assert.Equal(t, 4, raws[1].Line)
}

func TestOpen_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, []any{"continent", "country", "year"})

	_, err := excel.Open(path, "", slog.Default())
	require.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "pct_share")
}

func TestOpen_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, []any{"continent"})

	_, err := excel.Open(path, "nope", slog.Default())
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := excel.Open(filepath.Join(t.TempDir(), "absent.xlsx"), "", slog.Default())
	assert.Error(t, err)
}

func TestWriteRecords_OpenReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteRecords(&buf, "export", sampleRecords()[:1]))

	r, err := excel.OpenReader(&buf, "export", slog.Default())
	require.NoError(t, err)
	defer r.Close()

	raws := readAll(t, r, 5)
	require.Len(t, raws, 1)
	assert.Equal(t, "France", raws[0].Fields[domain.ColCountry])
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteRecords(&buf, "", nil))

	r, err := excel.OpenReader(&buf, "", slog.Default())
	require.NoError(t, err)
	defer r.Close()
	assert.Empty(t, readAll(t, r, 5))
}

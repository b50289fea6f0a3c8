package main

import (
	"fmt"
	"math"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// componentTolerance is the absolute TWh slack allowed between the
// renewables total and the sum of its sources.
const componentTolerance = 0.5

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateParse(rows []domain.RawRow) ([]domain.Record, *phase) {
	p := &phase{name: "Rows parse"}
	recs := make([]domain.Record, 0, len(rows))
	for _, raw := range rows {
		rec, err := domain.ParseRawRow(raw)
		if err != nil {
			p.errorf("%v", err)
			continue
		}
		recs = append(recs, rec)
	}
	if len(rows) == 0 {
		p.errorf("workbook has no data rows")
	}
	return recs, p
}

func validateUnique(recs []domain.Record) *phase {
	p := &phase{name: "Unique (country, year)"}
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		key := fmt.Sprintf("%s|%d", r.Country, r.Year)
		if seen[key] {
			p.errorf("%s %d appears more than once", r.Country, r.Year)
		}
		seen[key] = true
	}
	return p
}

func validateRanges(recs []domain.Record) *phase {
	p := &phase{name: "Values in range"}
	for _, r := range recs {
		if r.Geo.Valid() && (math.Abs(r.Geo.Lat) > 90 || math.Abs(r.Geo.Lon) > 180) {
			p.errorf("%s %d: coordinates (%.2f, %.2f) out of range", r.Country, r.Year, r.Geo.Lat, r.Geo.Lon)
		}
		if !math.IsNaN(r.PctShare) && (r.PctShare < 0 || r.PctShare > 100) {
			p.errorf("%s %d: %s=%.2f outside [0, 100]", r.Country, r.Year, domain.ColPctShare, r.PctShare)
		}
		cols := []string{domain.ColRenewables, domain.ColFossil}
		for _, sc := range domain.SourceColumns {
			cols = append(cols, sc.Column)
		}
		for _, col := range cols {
			if v := r.Value(col); v < 0 {
				p.errorf("%s %d: %s=%.2f is negative", r.Country, r.Year, col, v)
			}
		}
	}
	return p
}

// validateComponents checks renewables against the sum of its sources when
// every source is present.
func validateComponents(recs []domain.Record) *phase {
	p := &phase{name: "Renewables match sources"}
	for _, r := range recs {
		if math.IsNaN(r.Renewables) {
			continue
		}
		parts := []float64{r.Biofuel, r.Hydro, r.Solar, r.Wind, r.OtherRenewable}
		var sum float64
		complete := true
		for _, v := range parts {
			if math.IsNaN(v) {
				complete = false
				break
			}
			sum += v
		}
		if complete && math.Abs(sum-r.Renewables) > componentTolerance {
			p.errorf("%s %d: renewables %.2f, sources sum to %.2f", r.Country, r.Year, r.Renewables, sum)
		}
	}
	return p
}

func validateG7(recs []domain.Record) *phase {
	p := &phase{name: "G7 coverage"}
	present := make(map[string]bool)
	for _, r := range recs {
		present[r.Country] = true
	}
	for _, c := range domain.G7 {
		if !present[c] {
			p.errorf("no rows for %s", c)
		}
	}
	return p
}

package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// G7 lists the countries shown in the source heatmap.
var G7 = []string{"Germany", "Canada", "United States", "Japan", "France", "Italy", "United Kingdom"}

// SourceColumns maps the per-source generation columns to their short labels,
// in display order.
var SourceColumns = []struct {
	Column string
	Label  string
}{
	{ColNuclear, "nuclear"},
	{ColBiofuel, "biofuel"},
	{ColHydro, "hydro"},
	{ColSolar, "solar"},
	{ColWind, "wind"},
	{ColOtherRenewable, "other"},
}

// YearRange is the half-open interval [Start, End).
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate rejects ranges whose start is after their end.
func (r YearRange) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%w: start %d is after end %d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Contains reports whether year falls in [Start, End).
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year < r.End
}

// Selection is the state of the dashboard filter controls.
type Selection struct {
	Continent string    `json:"continent"`
	Country   string    `json:"country"`
	Years     YearRange `json:"years"`
}

// EnergyPoint is the renewable/fossil split of one country in one year.
type EnergyPoint struct {
	Year       int
	Renewables float64
	Fossil     float64
}

// SharePoint is the mean renewable share of one country in one year. Share
// is NaN when no row in the group carries a value.
type SharePoint struct {
	Year  int
	Share float64
}

// CountryTotal is one (continent, country, year, location) group of the
// generation map.
type CountryTotal struct {
	Continent  string
	Country    string
	Year       int
	Geo        Geo
	Renewables float64
	Fossil     float64
}

// Total is renewable plus fossil generation.
func (t CountryTotal) Total() float64 { return t.Renewables + t.Fossil }

// SourceMatrix holds per-source generation sums: Values[i][j] is the total
// for Countries[i] and Sources[j].
type SourceMatrix struct {
	Countries []string
	Sources   []string
	Values    [][]float64
}

// EnergyMix sums renewable and fossil generation per year for one country,
// ordered by year.
func (d *Dataset) EnergyMix(continent, country string, years YearRange) []EnergyPoint {
	byYear := make(map[int]*EnergyPoint)
	for _, r := range d.records {
		if r.Continent != continent || r.Country != country || !years.Contains(r.Year) {
			continue
		}
		p, ok := byYear[r.Year]
		if !ok {
			p = &EnergyPoint{Year: r.Year}
			byYear[r.Year] = p
		}
		p.Renewables = addSkipNaN(p.Renewables, r.Renewables)
		p.Fossil = addSkipNaN(p.Fossil, r.Fossil)
	}

	out := make([]EnergyPoint, 0, len(byYear))
	for _, p := range byYear {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b EnergyPoint) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// RenewableShare averages pct_share per year for one country, ordered by year.
func (d *Dataset) RenewableShare(continent, country string, years YearRange) []SharePoint {
	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, r := range d.records {
		if r.Continent != continent || r.Country != country || !years.Contains(r.Year) {
			continue
		}
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{}
			byYear[r.Year] = a
		}
		if !math.IsNaN(r.PctShare) {
			a.sum += r.PctShare
			a.n++
		}
	}

	out := make([]SharePoint, 0, len(byYear))
	for year, a := range byYear {
		share := math.NaN()
		if a.n > 0 {
			share = a.sum / float64(a.n)
		}
		out = append(out, SharePoint{Year: year, Share: share})
	}
	slices.SortFunc(out, func(a, b SharePoint) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// GenerationByCountry sums generation per (continent, country, year,
// location) over the whole dataset. Rows without coordinates are dropped,
// and continent/country filters deliberately do not apply.
func (d *Dataset) GenerationByCountry(years YearRange) []CountryTotal {
	type key struct {
		continent, country string
		year               int
		lat, lon           float64
	}
	groups := make(map[key]*CountryTotal)
	for _, r := range d.records {
		if !years.Contains(r.Year) || !r.Geo.Valid() {
			continue
		}
		k := key{r.Continent, r.Country, r.Year, r.Geo.Lat, r.Geo.Lon}
		t, ok := groups[k]
		if !ok {
			t = &CountryTotal{Continent: r.Continent, Country: r.Country, Year: r.Year, Geo: r.Geo}
			groups[k] = t
		}
		t.Renewables = addSkipNaN(t.Renewables, r.Renewables)
		t.Fossil = addSkipNaN(t.Fossil, r.Fossil)
	}

	out := make([]CountryTotal, 0, len(groups))
	for _, t := range groups {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b CountryTotal) int {
		return cmp.Or(
			cmp.Compare(a.Continent, b.Continent),
			cmp.Compare(a.Country, b.Country),
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Geo.Lat, b.Geo.Lat),
			cmp.Compare(a.Geo.Lon, b.Geo.Lon),
		)
	})
	return out
}

// SourceMix sums each per-source column for the given countries within the
// year range. Countries without matching rows are omitted; the rest are
// sorted by name.
func (d *Dataset) SourceMix(countries []string, years YearRange) SourceMatrix {
	wanted := make(map[string]bool, len(countries))
	for _, c := range countries {
		wanted[c] = true
	}

	sums := make(map[string][]float64)
	for _, r := range d.records {
		if !wanted[r.Country] || !years.Contains(r.Year) {
			continue
		}
		row, ok := sums[r.Country]
		if !ok {
			row = make([]float64, len(SourceColumns))
			sums[r.Country] = row
		}
		for j, sc := range SourceColumns {
			row[j] = addSkipNaN(row[j], r.Value(sc.Column))
		}
	}

	m := SourceMatrix{
		Countries: make([]string, 0, len(sums)),
		Sources:   make([]string, len(SourceColumns)),
	}
	for j, sc := range SourceColumns {
		m.Sources[j] = sc.Label
	}
	for c := range sums {
		m.Countries = append(m.Countries, c)
	}
	slices.Sort(m.Countries)
	m.Values = make([][]float64, len(m.Countries))
	for i, c := range m.Countries {
		m.Values[i] = sums[c]
	}
	return m
}

// RecordsFor returns the raw rows behind a selection. Empty continent or
// country act as wildcards.
func (d *Dataset) RecordsFor(sel Selection) []Record {
	return d.Filter(func(r Record) bool {
		if sel.Continent != "" && r.Continent != sel.Continent {
			return false
		}
		if sel.Country != "" && r.Country != sel.Country {
			return false
		}
		return sel.Years.Contains(r.Year)
	})
}

func addSkipNaN(sum, v float64) float64 {
	if math.IsNaN(v) {
		return sum
	}
	return sum + v
}

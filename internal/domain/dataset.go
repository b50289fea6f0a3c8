package domain

import "time"

// Dataset is the immutable in-memory table built once by the load pipeline.
// Nothing mutates a Dataset after NewDataset returns, so it is safe for
// concurrent readers without locking.
type Dataset struct {
	records    []Record
	continents []string
	countries  map[string][]string
	minYear    int
	maxYear    int
	loadedAt   time.Time
}

// NewDataset indexes records in their original order. The slice is copied.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{
		records:   append([]Record(nil), records...),
		countries: make(map[string][]string),
		loadedAt:  Now(),
	}

	seenContinent := make(map[string]bool)
	seenCountry := make(map[string]map[string]bool)
	for i, r := range d.records {
		if i == 0 || r.Year < d.minYear {
			d.minYear = r.Year
		}
		if i == 0 || r.Year > d.maxYear {
			d.maxYear = r.Year
		}

		if !seenContinent[r.Continent] {
			seenContinent[r.Continent] = true
			d.continents = append(d.continents, r.Continent)
			seenCountry[r.Continent] = make(map[string]bool)
		}
		if !seenCountry[r.Continent][r.Country] {
			seenCountry[r.Continent][r.Country] = true
			d.countries[r.Continent] = append(d.countries[r.Continent], r.Country)
		}
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// LoadedAt returns when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Records returns the underlying records. Callers must not modify the slice.
func (d *Dataset) Records() []Record { return d.records }

// Continents returns the distinct continents in first-appearance order.
func (d *Dataset) Continents() []string {
	return append([]string(nil), d.continents...)
}

// Countries returns the distinct countries of a continent in
// first-appearance order. Unknown or empty continents yield nil.
func (d *Dataset) Countries(continent string) []string {
	return append([]string(nil), d.countries[continent]...)
}

// YearBounds returns the smallest and largest year, or (0, 0) when empty.
func (d *Dataset) YearBounds() (int, int) {
	return d.minYear, d.maxYear
}

// Filter returns the records matching pred, preserving order.
func (d *Dataset) Filter(pred func(Record) bool) []Record {
	var out []Record
	for _, r := range d.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

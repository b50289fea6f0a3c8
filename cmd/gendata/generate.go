package main

import (
	"math"
	"math/rand/v2"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// country is one synthetic country with its starting generation profile in TWh.
type country struct {
	continent string
	name      string
	geo       domain.Geo
	fossil    float64
	nuclear   float64
	biofuel   float64
	hydro     float64
	solar     float64
	wind      float64
	other     float64
}

var catalog = []country{
	{"Europe", "Germany", domain.Geo{Lat: 51.17, Lon: 10.45}, 360, 170, 5, 22, 0.1, 8, 1},
	{"Europe", "France", domain.Geo{Lat: 46.23, Lon: 2.21}, 55, 415, 2, 66, 0.1, 0.1, 0.5},
	{"Europe", "Italy", domain.Geo{Lat: 41.87, Lon: 12.57}, 210, 0, 2, 45, 0.1, 0.5, 5},
	{"Europe", "United Kingdom", domain.Geo{Lat: 55.38, Lon: -3.44}, 280, 85, 3, 5, 0.1, 1, 0.5},
	{"Europe", "Norway", domain.Geo{Lat: 60.47, Lon: 8.47}, 1, 0, 0.2, 120, 0, 0.1, 0},
	{"Europe", "Kosovo", domain.NoGeo, 5, 0, 0, 0.1, 0, 0, 0},
	{"North America", "United States", domain.Geo{Lat: 37.09, Lon: -95.71}, 2700, 750, 60, 280, 1, 5, 20},
	{"North America", "Canada", domain.Geo{Lat: 56.13, Lon: -106.35}, 150, 90, 8, 340, 0, 0.5, 1},
	{"North America", "Mexico", domain.Geo{Lat: 23.63, Lon: -102.55}, 170, 10, 1, 30, 0, 0.1, 6},
	{"Asia", "Japan", domain.Geo{Lat: 36.2, Lon: 138.25}, 600, 290, 10, 85, 1, 0.5, 3},
	{"Asia", "China", domain.Geo{Lat: 35.86, Lon: 104.2}, 1100, 15, 2, 220, 0, 0.5, 0.1},
	{"Asia", "India", domain.Geo{Lat: 20.59, Lon: 78.96}, 420, 17, 1, 75, 0, 1.5, 0.1},
	{"Africa", "South Africa", domain.Geo{Lat: -30.56, Lon: 22.94}, 190, 13, 0.3, 2, 0, 0, 0},
	{"Africa", "Kenya", domain.Geo{Lat: -0.02, Lon: 37.91}, 1, 0, 0.1, 3, 0, 0, 1},
	{"South America", "Brazil", domain.Geo{Lat: -14.24, Lon: -51.93}, 30, 5, 8, 300, 0, 0.1, 0},
	{"Oceania", "Australia", domain.Geo{Lat: -25.27, Lon: 133.78}, 180, 0, 1, 16, 0.1, 0.1, 0},
}

// generate builds one record per catalog country and year in [from, to].
// Renewables grow a few percent a year and fossil generation shrinks slowly.
func generate(from, to int, seed uint64, missingRate float64) []domain.Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	jitter := func(v float64, growth float64, years int) float64 {
		g := v * math.Pow(1+growth, float64(years)) * (0.95 + 0.1*rng.Float64())
		return domain.Round2(g)
	}
	maybe := func(v float64) float64 {
		if rng.Float64() < missingRate {
			return math.NaN()
		}
		return v
	}

	recs := make([]domain.Record, 0, len(catalog)*(to-from+1))
	for year := from; year <= to; year++ {
		n := year - from
		for _, c := range catalog {
			nuclear := jitter(c.nuclear, 0, n)
			biofuel := jitter(c.biofuel, 0.04, n)
			hydro := jitter(c.hydro, 0.005, n)
			solar := jitter(c.solar, 0.3, n)
			wind := jitter(c.wind, 0.15, n)
			other := jitter(c.other, 0.03, n)
			fossil := jitter(c.fossil, -0.01, n)
			renewables := domain.Round2(biofuel + hydro + solar + wind + other)

			share := math.NaN()
			if total := renewables + fossil + nuclear; total > 0 {
				share = domain.Round2(100 * renewables / total)
			}

			recs = append(recs, domain.Record{
				Continent:      c.continent,
				Country:        c.name,
				Year:           year,
				Geo:            c.geo,
				Renewables:     maybe(renewables),
				Fossil:         maybe(fossil),
				PctShare:       maybe(share),
				Nuclear:        maybe(nuclear),
				Biofuel:        maybe(biofuel),
				Hydro:          maybe(hydro),
				Solar:          maybe(solar),
				Wind:           maybe(wind),
				OtherRenewable: maybe(other),
			})
		}
	}
	return recs
}

type continentSummary struct {
	continent  string
	countries  int
	rows       int
	renewables float64
	fossil     float64
}

// summarize totals records per continent in first-appearance order.
func summarize(recs []domain.Record) []continentSummary {
	ds := domain.NewDataset(recs)
	lo, hi := ds.YearBounds()
	years := domain.YearRange{Start: lo, End: hi + 1}

	out := make([]continentSummary, 0, len(ds.Continents()))
	for _, continent := range ds.Continents() {
		s := continentSummary{continent: continent, countries: len(ds.Countries(continent))}
		for _, r := range ds.RecordsFor(domain.Selection{Continent: continent, Years: years}) {
			s.rows++
			if !math.IsNaN(r.Renewables) {
				s.renewables += r.Renewables
			}
			if !math.IsNaN(r.Fossil) {
				s.fossil += r.Fossil
			}
		}
		out = append(out, s)
	}
	return out
}

package domain

import (
	"encoding/json"
	"math"
	"strings"
)

// Column names as they appear in the workbook header.
const (
	ColContinent      = "continent"
	ColCountry        = "country"
	ColYear           = "year"
	ColLatitude       = "latitude"
	ColLongitude      = "longitude"
	ColRenewables     = "renewables_electricity"
	ColFossil         = "fossil_electricity"
	ColPctShare       = "pct_share"
	ColNuclear        = "nuclear_electricity"
	ColBiofuel        = "biofuel_electricity"
	ColHydro          = "hydro_electricity"
	ColSolar          = "solar_electricity"
	ColWind           = "wind_electricity"
	ColOtherRenewable = "other_renewable_electricity"
)

// Columns lists every required column in workbook order.
var Columns = []string{
	ColContinent, ColCountry, ColYear, ColLatitude, ColLongitude,
	ColRenewables, ColFossil, ColPctShare,
	ColNuclear, ColBiofuel, ColHydro, ColSolar, ColWind, ColOtherRenewable,
}

// NormalizeColumn maps a header cell to its canonical column name.
func NormalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RawRow is one unparsed workbook row keyed by canonical column name.
type RawRow struct {
	Sheet  string
	Line   int // 1-based row number in the sheet
	Fields map[string]string
}

// Geo represents a WGS-84 latitude/longitude coordinate pair. NaN marks an
// unknown coordinate.
type Geo struct {
	Lat float64
	Lon float64
}

// Valid reports whether both coordinates are known.
func (g Geo) Valid() bool {
	return !math.IsNaN(g.Lat) && !math.IsNaN(g.Lon)
}

// NoGeo is the unknown location.
var NoGeo = Geo{Lat: math.NaN(), Lon: math.NaN()}

// Record is one parsed row: a country's generation figures for one year.
// All generation values are TWh; PctShare is a percentage.
type Record struct {
	Continent string
	Country   string
	Year      int
	Geo       Geo

	Renewables float64
	Fossil     float64
	PctShare   float64

	Nuclear        float64
	Biofuel        float64
	Hydro          float64
	Solar          float64
	Wind           float64
	OtherRenewable float64

	// GeoSource records how Geo was obtained: "original", "forward",
	// "failed", "not_found" or empty when geocoding is disabled.
	GeoSource string
}

// recordJSON is the wire form of Record; NaN values become null.
type recordJSON struct {
	Continent      string   `json:"continent"`
	Country        string   `json:"country"`
	Year           int      `json:"year"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Renewables     *float64 `json:"renewables_electricity"`
	Fossil         *float64 `json:"fossil_electricity"`
	PctShare       *float64 `json:"pct_share"`
	Nuclear        *float64 `json:"nuclear_electricity"`
	Biofuel        *float64 `json:"biofuel_electricity"`
	Hydro          *float64 `json:"hydro_electricity"`
	Solar          *float64 `json:"solar_electricity"`
	Wind           *float64 `json:"wind_electricity"`
	OtherRenewable *float64 `json:"other_renewable_electricity"`
	GeoSource      string   `json:"geo_source,omitempty"`
}

// MarshalJSON encodes the record with the workbook column names.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Continent:      r.Continent,
		Country:        r.Country,
		Year:           r.Year,
		Latitude:       nullable(r.Geo.Lat),
		Longitude:      nullable(r.Geo.Lon),
		Renewables:     nullable(r.Renewables),
		Fossil:         nullable(r.Fossil),
		PctShare:       nullable(r.PctShare),
		Nuclear:        nullable(r.Nuclear),
		Biofuel:        nullable(r.Biofuel),
		Hydro:          nullable(r.Hydro),
		Solar:          nullable(r.Solar),
		Wind:           nullable(r.Wind),
		OtherRenewable: nullable(r.OtherRenewable),
		GeoSource:      r.GeoSource,
	})
}

// UnmarshalJSON decodes the wire form, restoring null values as NaN.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Record{
		Continent:      w.Continent,
		Country:        w.Country,
		Year:           w.Year,
		Geo:            Geo{Lat: orNaN(w.Latitude), Lon: orNaN(w.Longitude)},
		Renewables:     orNaN(w.Renewables),
		Fossil:         orNaN(w.Fossil),
		PctShare:       orNaN(w.PctShare),
		Nuclear:        orNaN(w.Nuclear),
		Biofuel:        orNaN(w.Biofuel),
		Hydro:          orNaN(w.Hydro),
		Solar:          orNaN(w.Solar),
		Wind:           orNaN(w.Wind),
		OtherRenewable: orNaN(w.OtherRenewable),
		GeoSource:      w.GeoSource,
	}
	return nil
}

// Value returns the numeric field stored under a column name, or NaN for
// identity columns and unknown names.
func (r Record) Value(column string) float64 {
	switch column {
	case ColLatitude:
		return r.Geo.Lat
	case ColLongitude:
		return r.Geo.Lon
	case ColRenewables:
		return r.Renewables
	case ColFossil:
		return r.Fossil
	case ColPctShare:
		return r.PctShare
	case ColNuclear:
		return r.Nuclear
	case ColBiofuel:
		return r.Biofuel
	case ColHydro:
		return r.Hydro
	case ColSolar:
		return r.Solar
	case ColWind:
		return r.Wind
	case ColOtherRenewable:
		return r.OtherRenewable
	case ColYear:
		return float64(r.Year)
	default:
		return math.NaN()
	}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

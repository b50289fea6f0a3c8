package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRawRow converts a workbook row into a Record. Continent, country and
// an integral year are required; numeric columns that are empty or
// unparseable become NaN.
func ParseRawRow(raw RawRow) (Record, error) {
	continent := strings.TrimSpace(raw.Fields[ColContinent])
	country := strings.TrimSpace(raw.Fields[ColCountry])
	if continent == "" || country == "" {
		return Record{}, fmt.Errorf("%w: line %d: continent and country are required", ErrMalformedRow, raw.Line)
	}

	year, err := parseYear(raw.Fields[ColYear])
	if err != nil {
		return Record{}, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, raw.Line, err)
	}

	return Record{
		Continent: continent,
		Country:   country,
		Year:      year,
		Geo: Geo{
			Lat: parseFloatOrNaN(raw.Fields[ColLatitude]),
			Lon: parseFloatOrNaN(raw.Fields[ColLongitude]),
		},
		Renewables:     parseFloatOrNaN(raw.Fields[ColRenewables]),
		Fossil:         parseFloatOrNaN(raw.Fields[ColFossil]),
		PctShare:       parseFloatOrNaN(raw.Fields[ColPctShare]),
		Nuclear:        parseFloatOrNaN(raw.Fields[ColNuclear]),
		Biofuel:        parseFloatOrNaN(raw.Fields[ColBiofuel]),
		Hydro:          parseFloatOrNaN(raw.Fields[ColHydro]),
		Solar:          parseFloatOrNaN(raw.Fields[ColSolar]),
		Wind:           parseFloatOrNaN(raw.Fields[ColWind]),
		OtherRenewable: parseFloatOrNaN(raw.Fields[ColOtherRenewable]),
	}, nil
}

// Years outside [MinYear, MaxYear] are rejected as malformed.
const (
	MinYear = 1
	MaxYear = 9999
)

// parseYear accepts "2001" as well as the "2001.0" that spreadsheet tools
// emit for numeric cells.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("year is required")
	}
	if y, err := strconv.Atoi(s); err == nil {
		if y < MinYear || y > MaxYear {
			return 0, fmt.Errorf("year %d is outside %d-%d", y, MinYear, MaxYear)
		}
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("year %q is not an integer", s)
	}
	if f < MinYear || f > MaxYear {
		return 0, fmt.Errorf("year %q is outside %d-%d", s, MinYear, MaxYear)
	}
	return int(f), nil
}

// parseFloatOrNaN parses a string as float64, returning NaN when the cell is
// empty or not a number.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Round2 rounds to two decimals using round-half-even on the scaled value.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.RoundToEven(v*100) / 100
}

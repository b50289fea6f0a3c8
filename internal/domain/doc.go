// Package domain models the worldwide electricity generation dataset behind
// the dashboard.
//
// # Data Source
//
// The dataset is the Our World in Data energy table, trimmed and reshaped into
// one workbook sheet (World_Energy_Generation_DV_Project.xlsx). Each row is one
// country in one year. The sheet is read once at startup by the load pipeline
// and never written back.
//
// # Columns
//
//	continent, country, year          identity of the row
//	latitude, longitude               country centroid, WGS-84
//	renewables_electricity            TWh from all renewable sources
//	fossil_electricity                TWh from coal, oil and gas
//	pct_share                         renewable share of generation, percent
//	nuclear_electricity               TWh, per-source breakdown ...
//	biofuel_electricity
//	hydro_electricity
//	solar_electricity
//	wind_electricity
//	other_renewable_electricity
//
// Header names are matched case-insensitively after trimming spaces.
//
// # Missing Values
//
// Empty or unparseable numeric cells are stored as NaN. Aggregations follow
// the usual dataframe conventions: sums skip NaN (an all-NaN group sums to
// zero) and means skip NaN (an all-NaN group has a NaN mean, rendered as null).
// Coordinates are NaN when unknown; such rows never reach the map view.
//
// # Year Ranges
//
// Every filter uses a half-open range [start, end): a row matches when
// start <= year < end. A slider set to 2001..2010 therefore shows 2001-2009.
//
// # Rounding
//
// Display values are rounded to two decimals with round-half-even, see [Round2].
package domain

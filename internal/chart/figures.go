package chart

import (
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// Palette and background colours shared by the dashboard views.
const (
	ColorRenewable  = "#ffb703"
	ColorFossil     = "#d62828"
	ColorPanel      = "#010915"
	ColorBackground = "black"
	ColorText       = "white"
)

// Figure titles.
const (
	TitleEnergy  = "Energy Generation by Country"
	TitleShare   = "Share of Renewable Energy by Country"
	TitleMap     = "Worldwide Energy Generation"
	TitleHeatmap = "G7 Renewable Energy Generation (TWh)"
)

// MapColorScale is the discrete choropleth scale from light amber to near
// black.
var MapColorScale = [][2]any{
	{0.0, "#ffba08"},
	{0.1111111111111111, "#ffba08"},
	{0.2222222222222222, "#f48c06"},
	{0.3333333333333333, "#dc2f02"},
	{0.4444444444444444, "#dc2f02"},
	{0.5555555555555556, "#dc2f02"},
	{0.6666666666666666, "#9d0208"},
	{0.7777777777777778, "#9d0208"},
	{0.8888888888888888, "#9d0208"},
	{1.0, "#370617"},
}

// EnergyMix renders renewable and fossil generation as stacked bars per year.
func EnergyMix(points []domain.EnergyPoint) Figure {
	years := make([]int, len(points))
	renew := make(Values, len(points))
	fossil := make(Values, len(points))
	renewText := make(Values, len(points))
	fossilText := make(Values, len(points))
	for i, p := range points {
		years[i] = p.Year
		renew[i] = p.Renewables
		fossil[i] = p.Fossil
		renewText[i] = domain.Round2(p.Renewables)
		fossilText[i] = domain.Round2(p.Fossil)
	}

	return Figure{
		Data: []Trace{
			{
				Type: "bar", Name: "Renewable",
				X: years, Y: renew, Text: renewText, TextPosition: "auto",
				Marker: &Marker{Color: ColorRenewable},
			},
			{
				Type: "bar", Name: "Fossil",
				X: years, Y: fossil, Text: fossilText, TextPosition: "auto",
				Marker: &Marker{Color: ColorFossil},
			},
		},
		Layout: Layout{
			Title:     centeredTitle(TitleEnergy),
			BarMode:   "stack",
			PlotBG:    ColorPanel,
			PaperBG:   ColorPanel,
			HoverMode: "x",
			XAxis:     yearAxis(),
			YAxis:     valueAxis("Energy (TWh)"),
		},
	}
}

// RenewableShare renders the renewable share per year as a smoothed line.
// Years without a share value leave a gap.
func RenewableShare(points []domain.SharePoint) Figure {
	years := make([]int, len(points))
	share := make(Values, len(points))
	for i, p := range points {
		years[i] = p.Year
		share[i] = p.Share
	}

	return Figure{
		Data: []Trace{{
			Type: "scatter", Name: "Renewable share", Mode: "lines+markers",
			X: years, Y: share,
			Line: &Line{Shape: "spline", Smoothing: 1.3, Width: 3, Color: "red"},
			Marker: &Marker{
				Size: 10, Symbol: "circle", Color: ColorText,
				Line: &Line{Color: "#ff00ff", Width: 2},
			},
		}},
		Layout: Layout{
			Title:     Title{Text: TitleShare, XAnchor: "center", YAnchor: "top", Font: titleFont()},
			PlotBG:    ColorPanel,
			PaperBG:   ColorPanel,
			HoverMode: "closest",
			XAxis:     yearAxis(),
			YAxis:     valueAxis("%"),
		},
	}
}

// WorldGeneration renders total generation per country as a choropleth.
// Locations are country names; one entry is emitted per (country, year)
// group in the order given.
func WorldGeneration(totals []domain.CountryTotal) Figure {
	locations := make([]string, len(totals))
	z := make(Values, len(totals))
	for i, t := range totals {
		locations[i] = t.Country
		z[i] = t.Total()
	}

	return Figure{
		Data: []Trace{{
			Type:         "choropleth",
			Locations:    locations,
			LocationMode: "country names",
			Z:            z,
			ColorScale:   MapColorScale,
		}},
		Layout: darkLayout(TitleMap, &Margin{L: 30, R: 20, T: 80, B: 30}),
	}
}

// SourceHeatmap renders per-source generation sums as an annotated heatmap.
func SourceHeatmap(m domain.SourceMatrix) Figure {
	z := make([]Values, len(m.Values))
	for i, row := range m.Values {
		z[i] = make(Values, len(row))
		for j, v := range row {
			z[i][j] = domain.Round2(v)
		}
	}

	return Figure{
		Data: []Trace{{
			Type:         "heatmap",
			X:            append([]string{}, m.Sources...),
			Y:            append([]string{}, m.Countries...),
			Z:            z,
			Text:         z,
			TextTemplate: "%{text}",
			TextFont:     &Font{Size: 10},
			ColorScale:   "solar",
			HoverOnGaps:  ptr(false),
		}},
		Layout: darkLayout(TitleHeatmap, &Margin{L: 120, R: 100, T: 70, B: 70}),
	}
}

func titleFont() *Font {
	return &Font{Color: ColorText, Size: 20}
}

func centeredTitle(text string) Title {
	return Title{
		Text: text, X: ptr(0.5), Y: ptr(0.93),
		XAnchor: "center", YAnchor: "top",
		Font: titleFont(),
	}
}

func yearAxis() *Axis {
	return &Axis{
		Title: AxisTitle{Text: "Year"}, Tick0: ptr(0.0), DTick: 1,
		Color: ColorText, ShowLine: true, ShowGrid: true, LineWidth: 2,
	}
}

func valueAxis(title string) *Axis {
	return &Axis{Title: AxisTitle{Text: title}, Color: ColorText, ShowLine: true, ShowGrid: true}
}

func darkLayout(title string, margin *Margin) Layout {
	return Layout{
		Title:     centeredTitle(title),
		HoverMode: "closest",
		Margin:    margin,
		PaperBG:   ColorBackground,
		PlotBG:    ColorBackground,
		Font:      &Font{Color: ColorText},
		AutoSize:  true,
	}
}

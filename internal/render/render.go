// Package render draws dashboard figures as static PNG images.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Image size of every export.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	renewableColor = color.RGBA{R: 0xff, G: 0xb7, B: 0x03, A: 0xff}
	fossilColor    = color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}
	shareColor     = color.RGBA{R: 0x02, G: 0x30, B: 0x47, A: 0xff}
	mapColor       = color.RGBA{R: 0xdc, G: 0x2f, B: 0x02, A: 0xc0}
)

// EnergyMix draws renewable generation with fossil generation stacked on top,
// one bar per year.
func EnergyMix(w io.Writer, title string, points []domain.EnergyPoint) error {
	p := newPlot(title, "Year", "Energy (TWh)")

	if len(points) > 0 {
		renewables := make(plotter.Values, len(points))
		fossil := make(plotter.Values, len(points))
		years := make([]string, len(points))
		for i, pt := range points {
			renewables[i] = zeroNaN(pt.Renewables)
			fossil[i] = zeroNaN(pt.Fossil)
			years[i] = strconv.Itoa(pt.Year)
		}

		width := vg.Points(20)
		rb, err := plotter.NewBarChart(renewables, width)
		if err != nil {
			return fmt.Errorf("renewable bars: %w", err)
		}
		rb.Color = renewableColor
		rb.LineStyle.Width = vg.Length(0)

		fb, err := plotter.NewBarChart(fossil, width)
		if err != nil {
			return fmt.Errorf("fossil bars: %w", err)
		}
		fb.Color = fossilColor
		fb.LineStyle.Width = vg.Length(0)
		fb.StackOn(rb)

		p.Add(rb, fb)
		p.Legend.Add("Renewable", rb)
		p.Legend.Add("Fossil", fb)
		p.Legend.Top = true
		p.NominalX(years...)
	}

	return encode(p, w)
}

// RenewableShare draws the mean renewable share per year as a line with point
// glyphs. Years without a share are left out.
func RenewableShare(w io.Writer, title string, points []domain.SharePoint) error {
	p := newPlot(title, "Year", "%")

	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if math.IsNaN(pt.Share) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(pt.Year), Y: pt.Share})
	}

	if len(xys) > 0 {
		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("share line: %w", err)
		}
		line.Color = shareColor
		line.Width = vg.Points(2)
		scatter.GlyphStyle.Color = shareColor
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(plotter.NewGrid(), line, scatter)
		p.X.Tick.Marker = yearTicks{}
	}

	return encode(p, w)
}

// WorldGeneration draws one bubble per country at its coordinates, with the
// radius scaled by total generation.
func WorldGeneration(w io.Writer, title string, totals []domain.CountryTotal) error {
	p := newPlot(title, "Longitude", "Latitude")
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90

	if len(totals) > 0 {
		xys := make(plotter.XYs, len(totals))
		maxTotal := 0.0
		for i, t := range totals {
			xys[i] = plotter.XY{X: t.Geo.Lon, Y: t.Geo.Lat}
			maxTotal = math.Max(maxTotal, t.Total())
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("map scatter: %w", err)
		}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  mapColor,
				Shape:  draw.CircleGlyph{},
				Radius: bubbleRadius(totals[i].Total(), maxTotal),
			}
		}
		p.Add(plotter.NewGrid(), scatter)
	}

	return encode(p, w)
}

// SourceHeatmap draws the per-source matrix as a heat map with countries on
// the y axis and sources on the x axis.
func SourceHeatmap(w io.Writer, title string, m domain.SourceMatrix) error {
	p := newPlot(title, "", "")

	if len(m.Countries) > 0 && len(m.Sources) > 0 {
		hm := plotter.NewHeatMap(sourceGrid{m: m}, Palette(255))
		if hm.Min == hm.Max {
			hm.Max = hm.Min + 1
		}
		p.Add(hm)
		p.NominalX(m.Sources...)
		p.NominalY(m.Countries...)
	}

	return encode(p, w)
}

// Palette returns n colours of the heat map scale, low to high.
func Palette(n int) palette.Palette {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)
	return cm.Palette(n)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func encode(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func bubbleRadius(total, maxTotal float64) vg.Length {
	const minR, maxR = 2.0, 18.0
	if maxTotal <= 0 || math.IsNaN(total) {
		return vg.Points(minR)
	}
	// Area, not radius, is proportional to the total.
	return vg.Points(minR + (maxR-minR)*math.Sqrt(total/maxTotal))
}

// sourceGrid adapts a SourceMatrix to plotter.GridXYZ. Rows are countries,
// columns are sources.
type sourceGrid struct {
	m domain.SourceMatrix
}

func (g sourceGrid) Dims() (c, r int) { return len(g.m.Sources), len(g.m.Countries) }
func (g sourceGrid) Z(c, r int) float64 {
	return g.m.Values[r][c]
}
func (g sourceGrid) X(c int) float64 { return float64(c) }
func (g sourceGrid) Y(r int) float64 { return float64(r) }

// yearTicks labels every integer year in the axis range.
type yearTicks struct{}

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(lo); y <= hi; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

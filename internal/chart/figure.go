// Package chart builds Plotly-compatible figure descriptions. A Figure
// marshals to the {"data": [...], "layout": {...}} document that plotly.js
// accepts in Plotly.react.
package chart

import (
	"math"
	"strconv"
)

// Figure is a complete chart description.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the union of the trace attributes used by the dashboard. Only
// attributes relevant to Type are set.
type Trace struct {
	Type         string   `json:"type"`
	Name         string   `json:"name,omitempty"`
	Mode         string   `json:"mode,omitempty"`
	X            any      `json:"x,omitempty"`
	Y            any      `json:"y,omitempty"`
	Z            any      `json:"z,omitempty"`
	Text         any      `json:"text,omitempty"`
	TextPosition string   `json:"textposition,omitempty"`
	TextTemplate string   `json:"texttemplate,omitempty"`
	TextFont     *Font    `json:"textfont,omitempty"`
	Locations    []string `json:"locations,omitempty"`
	LocationMode string   `json:"locationmode,omitempty"`
	ColorScale   any      `json:"colorscale,omitempty"`
	Marker       *Marker  `json:"marker,omitempty"`
	Line         *Line    `json:"line,omitempty"`
	HoverInfo    string   `json:"hoverinfo,omitempty"`
	HoverOnGaps  *bool    `json:"hoverongaps,omitempty"`
}

// Marker styles bars and scatter points.
type Marker struct {
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

// Line styles scatter lines and marker outlines.
type Line struct {
	Shape     string  `json:"shape,omitempty"`
	Smoothing float64 `json:"smoothing,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Font is a text style.
type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Layout holds the figure-level attributes.
type Layout struct {
	Title     Title   `json:"title"`
	BarMode   string  `json:"barmode,omitempty"`
	PlotBG    string  `json:"plot_bgcolor,omitempty"`
	PaperBG   string  `json:"paper_bgcolor,omitempty"`
	HoverMode string  `json:"hovermode,omitempty"`
	XAxis     *Axis   `json:"xaxis,omitempty"`
	YAxis     *Axis   `json:"yaxis,omitempty"`
	Margin    *Margin `json:"margin,omitempty"`
	Font      *Font   `json:"font,omitempty"`
	AutoSize  bool    `json:"autosize,omitempty"`
}

// Title is a positioned figure title.
type Title struct {
	Text    string   `json:"text"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	XAnchor string   `json:"xanchor,omitempty"`
	YAnchor string   `json:"yanchor,omitempty"`
	Font    *Font    `json:"font,omitempty"`
}

// Axis configures one cartesian axis.
type Axis struct {
	Title     AxisTitle `json:"title"`
	Tick0     *float64  `json:"tick0,omitempty"`
	DTick     float64   `json:"dtick,omitempty"`
	Color     string    `json:"color,omitempty"`
	ShowLine  bool      `json:"showline"`
	ShowGrid  bool      `json:"showgrid"`
	LineWidth float64   `json:"linewidth,omitempty"`
}

// AxisTitle is an axis label.
type AxisTitle struct {
	Text string `json:"text"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Values is a numeric series that encodes NaN as null, which plotly.js
// draws as a gap.
type Values []float64

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	b := make([]byte, 0, 8*len(v)+2)
	b = append(b, '[')
	for i, f := range v {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, f, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

func ptr[T any](v T) *T { return &v }

package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFigure is returned for a figure id outside FigureIDs.
	ErrUnknownFigure = errors.New("unknown figure")

	// ErrInvalidSelection is returned when filter values cannot be parsed.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotReady is returned before the dataset has been published.
	ErrNotReady = errors.New("dataset not loaded yet")
)

// FigureID names one of the dashboard charts.
type FigureID string

const (
	FigureEnergy  FigureID = "energy"
	FigureShare   FigureID = "share"
	FigureMap     FigureID = "map"
	FigureHeatmap FigureID = "heatmap"
)

// FigureIDs lists every chart in page order.
var FigureIDs = []FigureID{FigureEnergy, FigureShare, FigureMap, FigureHeatmap}

// ParseFigureID validates s against FigureIDs.
func ParseFigureID(s string) (FigureID, error) {
	for _, id := range FigureIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFigure, s)
}

// GraphID is the element id the page uses for the figure.
func (id FigureID) GraphID() string {
	switch id {
	case FigureEnergy:
		return "bar_line_1"
	case FigureShare:
		return "pie"
	case FigureMap:
		return "map_1"
	case FigureHeatmap:
		return "heat"
	default:
		return ""
	}
}

// usesCountry reports whether the figure depends on the continent and
// country filters. The map and the heatmap only follow the year range.
func (id FigureID) usesCountry() bool {
	return id == FigureEnergy || id == FigureShare
}

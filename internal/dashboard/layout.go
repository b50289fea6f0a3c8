package dashboard

import (
	"context"
	"slices"
	"strconv"

	"github.com/couchcryptid/energy-dashboard-service/internal/chart"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// Page text.
const (
	HeaderTitle    = "WORLD ELECTRICITY GENERATION"
	HeaderSubtitle = "quick look at electricity Generation around the world"
	SourceNote     = "Original dataset by Our World in Data with modifications."
)

// markStep is the spacing of labelled years on the range slider.
const markStep = 4

// Layout is the static page description: header text, the three filter
// controls with their initial values, and the four graphs with their initial
// figures.
type Layout struct {
	Header     Header     `json:"header"`
	YearSlider YearSlider `json:"year_slider"`
	Continent  Dropdown   `json:"continent_dropdown"`
	Country    Dropdown   `json:"country_dropdown"`
	Graphs     []Graph    `json:"graphs"`
}

// Header holds the page title block.
type Header struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Source   string `json:"source"`
}

// YearSlider is a two-handle range slider over the dataset's years.
type YearSlider struct {
	ID    string            `json:"id"`
	Min   int               `json:"min"`
	Max   int               `json:"max"`
	Step  int               `json:"step"`
	Value [2]int            `json:"value"`
	Marks map[string]string `json:"marks"`
}

// Dropdown is a single-select control.
type Dropdown struct {
	ID        string   `json:"id"`
	Options   []Option `json:"options"`
	Value     string   `json:"value"`
	Clearable bool     `json:"clearable"`
}

// Graph is one chart slot on the page.
type Graph struct {
	ID      string       `json:"id"`
	Figure  FigureID     `json:"figure"`
	Title   string       `json:"title"`
	Initial chart.Figure `json:"initial"`
}

// Layout returns the page layout. It is built on the first call after the
// dataset is published and reused afterwards.
func (s *Service) Layout(ctx context.Context) (*Layout, error) {
	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()
	if s.layout != nil {
		return s.layout, nil
	}

	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	sel := s.defaultSelection(ds)
	state, err := s.Update(ctx, sel)
	if err != nil {
		return nil, err
	}

	lo, hi := ds.YearBounds()
	continents := ds.Continents()
	continentOpts := make([]Option, len(continents))
	for i, c := range continents {
		continentOpts[i] = Option{Label: c, Value: c}
	}

	l := &Layout{
		Header: Header{Title: HeaderTitle, Subtitle: HeaderSubtitle, Source: SourceNote},
		YearSlider: YearSlider{
			ID:    "year_slider",
			Min:   lo,
			Max:   hi,
			Step:  1,
			Value: [2]int{state.Selection.Years.Start, state.Selection.Years.End},
			Marks: yearMarks(lo, hi),
		},
		Continent: Dropdown{ID: "continent_dropdown", Options: continentOpts, Value: sel.Continent, Clearable: true},
		Country:   Dropdown{ID: "country_dropdown", Options: state.Countries, Value: state.Selection.Country},
	}
	for _, id := range FigureIDs {
		l.Graphs = append(l.Graphs, Graph{
			ID:      id.GraphID(),
			Figure:  id,
			Title:   figureTitle(id),
			Initial: state.Figures[id.GraphID()],
		})
	}

	s.layout = l
	s.logger.Info("layout built",
		"continents", len(continents),
		"year_min", lo,
		"year_max", hi,
	)
	return l, nil
}

// DefaultSelection is the selection the page starts with.
func (s *Service) DefaultSelection() (domain.Selection, error) {
	ds, err := s.dataset()
	if err != nil {
		return domain.Selection{}, err
	}
	return s.defaultSelection(ds), nil
}

// defaultSelection clamps the configured years into the dataset bounds and
// falls back to the first continent when the configured one is absent.
func (s *Service) defaultSelection(ds *domain.Dataset) domain.Selection {
	lo, hi := ds.YearBounds()
	years := domain.YearRange{
		Start: min(max(s.opts.DefaultYears.Start, lo), hi),
		End:   min(max(s.opts.DefaultYears.End, lo), hi),
	}
	if years.Start > years.End {
		years = domain.YearRange{Start: lo, End: hi}
	}

	continents := ds.Continents()
	continent := s.opts.DefaultContinent
	if !slices.Contains(continents, continent) {
		continent = ""
		if len(continents) > 0 {
			continent = continents[0]
		}
	}

	return domain.Selection{
		Continent: continent,
		Country:   DefaultCountry(countryOptions(ds, continent)),
		Years:     years,
	}
}

// yearMarks labels every markStep-th year from lo up to, not including, hi.
func yearMarks(lo, hi int) map[string]string {
	marks := make(map[string]string)
	for y := lo; y < hi; y += markStep {
		s := strconv.Itoa(y)
		marks[s] = s
	}
	return marks
}

func figureTitle(id FigureID) string {
	switch id {
	case FigureEnergy:
		return chart.TitleEnergy
	case FigureShare:
		return chart.TitleShare
	case FigureMap:
		return chart.TitleMap
	default:
		return chart.TitleHeatmap
	}
}

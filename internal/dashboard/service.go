// Package dashboard implements the dashboard callbacks: country options for a
// continent, the four figures for a selection, and the combined update that
// runs them in dependency order.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/couchcryptid/energy-dashboard-service/internal/chart"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	"github.com/couchcryptid/energy-dashboard-service/internal/render"
	"github.com/jellydator/ttlcache/v3"
)

// DatasetSource yields the published dataset, or false while loading.
type DatasetSource interface {
	Dataset() (*domain.Dataset, bool)
}

// Options configures a Service.
type Options struct {
	DefaultContinent string
	DefaultYears     domain.YearRange
	CacheTTL         time.Duration
	CacheSize        int
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DefaultCountry returns the first option's value, or "" when there are none.
func DefaultCountry(options []Option) string {
	if len(options) == 0 {
		return ""
	}
	return options[0].Value
}

// State is the result of one Update: the resolved selection, the country
// options it was resolved against, and every figure keyed by graph id.
type State struct {
	Selection domain.Selection        `json:"selection"`
	Countries []Option                `json:"countries"`
	Figures   map[string]chart.Figure `json:"figures"`
}

// Service answers dashboard callbacks against the published dataset.
type Service struct {
	source  DatasetSource
	opts    Options
	cache   *ttlcache.Cache[string, chart.Figure]
	metrics *observability.Metrics
	logger  *slog.Logger

	layoutMu sync.Mutex
	layout   *Layout
}

// NewService creates a Service. Call Start to run cache expiry in the
// background and Stop to end it.
func NewService(source DatasetSource, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Service {
	cacheOpts := []ttlcache.Option[string, chart.Figure]{
		ttlcache.WithTTL[string, chart.Figure](opts.CacheTTL),
	}
	if opts.CacheSize > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[string, chart.Figure](uint64(opts.CacheSize)))
	}
	return &Service{
		source:  source,
		opts:    opts,
		cache:   ttlcache.New(cacheOpts...),
		metrics: metrics,
		logger:  logger,
	}
}

// Start runs the cache expiry loop until Stop is called.
func (s *Service) Start() {
	go s.cache.Start()
}

// Stop ends the cache expiry loop.
func (s *Service) Stop() {
	s.cache.Stop()
}

func (s *Service) dataset() (*domain.Dataset, error) {
	ds, ok := s.source.Dataset()
	if !ok {
		return nil, ErrNotReady
	}
	return ds, nil
}

// CountryOptions lists the countries of a continent as dropdown options, in
// first-appearance order.
func (s *Service) CountryOptions(continent string) ([]Option, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return countryOptions(ds, continent), nil
}

func countryOptions(ds *domain.Dataset, continent string) []Option {
	countries := ds.Countries(continent)
	opts := make([]Option, len(countries))
	for i, c := range countries {
		opts[i] = Option{Label: c, Value: c}
	}
	return opts
}

// Figure builds one chart for a selection. Results are cached per figure and
// the part of the selection the figure depends on.
func (s *Service) Figure(_ context.Context, id FigureID, sel domain.Selection) (chart.Figure, error) {
	if _, err := ParseFigureID(string(id)); err != nil {
		return chart.Figure{}, err
	}
	if err := sel.Years.Validate(); err != nil {
		return chart.Figure{}, err
	}
	ds, err := s.dataset()
	if err != nil {
		return chart.Figure{}, err
	}

	key := cacheKey(id, sel)
	if item := s.cache.Get(key); item != nil {
		s.metrics.FigureBuilds.WithLabelValues(string(id), "hit").Inc()
		return item.Value(), nil
	}
	s.metrics.FigureBuilds.WithLabelValues(string(id), "miss").Inc()

	start := time.Now()
	fig := buildFigure(ds, id, sel)
	s.metrics.FigureBuildDuration.WithLabelValues(string(id)).Observe(time.Since(start).Seconds())

	s.cache.Set(key, fig, ttlcache.DefaultTTL)
	return fig, nil
}

func buildFigure(ds *domain.Dataset, id FigureID, sel domain.Selection) chart.Figure {
	switch id {
	case FigureEnergy:
		return chart.EnergyMix(ds.EnergyMix(sel.Continent, sel.Country, sel.Years))
	case FigureShare:
		return chart.RenewableShare(ds.RenewableShare(sel.Continent, sel.Country, sel.Years))
	case FigureMap:
		return chart.WorldGeneration(ds.GenerationByCountry(sel.Years))
	default:
		return chart.SourceHeatmap(ds.SourceMix(domain.G7, sel.Years))
	}
}

func cacheKey(id FigureID, sel domain.Selection) string {
	key := string(id) + "|" + strconv.Itoa(sel.Years.Start) + "|" + strconv.Itoa(sel.Years.End)
	if id.usesCountry() {
		key += "|" + sel.Continent + "|" + sel.Country
	}
	return key
}

// RenderPNG draws one chart for a selection as a PNG image.
func (s *Service) RenderPNG(_ context.Context, w io.Writer, id FigureID, sel domain.Selection) error {
	if _, err := ParseFigureID(string(id)); err != nil {
		return err
	}
	if err := sel.Years.Validate(); err != nil {
		return err
	}
	ds, err := s.dataset()
	if err != nil {
		return err
	}

	switch id {
	case FigureEnergy:
		return render.EnergyMix(w, chart.TitleEnergy, ds.EnergyMix(sel.Continent, sel.Country, sel.Years))
	case FigureShare:
		return render.RenewableShare(w, chart.TitleShare, ds.RenewableShare(sel.Continent, sel.Country, sel.Years))
	case FigureMap:
		return render.WorldGeneration(w, chart.TitleMap, ds.GenerationByCountry(sel.Years))
	default:
		return render.SourceHeatmap(w, chart.TitleHeatmap, ds.SourceMix(domain.G7, sel.Years))
	}
}

// Update resolves the selection the way the page does on a control change:
// the continent picks the country options, the country is kept if it is one
// of them and otherwise replaced by the default, and then every figure is
// rebuilt.
func (s *Service) Update(ctx context.Context, sel domain.Selection) (State, error) {
	if err := sel.Years.Validate(); err != nil {
		return State{}, err
	}
	ds, err := s.dataset()
	if err != nil {
		return State{}, err
	}

	options := countryOptions(ds, sel.Continent)
	if !slices.ContainsFunc(options, func(o Option) bool { return o.Value == sel.Country }) {
		sel.Country = DefaultCountry(options)
	}

	state := State{
		Selection: sel,
		Countries: options,
		Figures:   make(map[string]chart.Figure, len(FigureIDs)),
	}
	for _, id := range FigureIDs {
		fig, err := s.Figure(ctx, id, sel)
		if err != nil {
			return State{}, fmt.Errorf("build %s figure: %w", id, err)
		}
		state.Figures[id.GraphID()] = fig
	}
	return state, nil
}

// Records returns the rows behind a selection for export. Empty continent or
// country select all.
func (s *Service) Records(sel domain.Selection) ([]domain.Record, error) {
	if err := sel.Years.Validate(); err != nil {
		return nil, err
	}
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return ds.RecordsFor(sel), nil
}

package httpadapter

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/energy-dashboard-service/internal/chart"
	"github.com/couchcryptid/energy-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed web/templates/*.html web/static/*
var webFS embed.FS

// Dashboard is the callback surface the server exposes. *dashboard.Service
// implements it.
type Dashboard interface {
	Layout(ctx context.Context) (*dashboard.Layout, error)
	DefaultSelection() (domain.Selection, error)
	CountryOptions(continent string) ([]dashboard.Option, error)
	Figure(ctx context.Context, id dashboard.FigureID, sel domain.Selection) (chart.Figure, error)
	RenderPNG(ctx context.Context, w io.Writer, id dashboard.FigureID, sel domain.Selection) error
	Update(ctx context.Context, sel domain.Selection) (dashboard.State, error)
	Records(sel domain.Selection) ([]domain.Record, error)
}

// Options configures NewServer.
type Options struct {
	Addr               string
	RateLimitPerMinute int // 0 disables API rate limiting
}

// Server serves the dashboard page, its JSON API, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	ready      sharedobs.ReadinessChecker
	metrics    *observability.Metrics
	index      *template.Template
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the page, /api, /healthz, /readyz,
// and /metrics routes.
func NewServer(opts Options, d Dashboard, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: d,
		ready:     ready,
		metrics:   metrics,
		index:     template.Must(template.ParseFS(webFS, "web/templates/index.html")),
		logger:    logger,
	}

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}

	s.handle(mux, "GET /{$}", http.HandlerFunc(s.handleIndex))
	s.handle(mux, "GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.handle(mux, "GET /healthz", sharedobs.LivenessHandler())
	s.handle(mux, "GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	api := http.NewServeMux()
	s.handle(api, "GET /api/layout", http.HandlerFunc(s.handleLayout))
	s.handle(api, "GET /api/countries", http.HandlerFunc(s.handleCountries))
	s.handle(api, "GET /api/figures/{id}", http.HandlerFunc(s.handleFigure))
	s.handle(api, "GET /api/dashboard", http.HandlerFunc(s.handleDashboard))
	s.handle(api, "GET /api/export.xlsx", http.HandlerFunc(s.handleExport))

	var apiHandler http.Handler = s.requireReady(api)
	if opts.RateLimitPerMinute > 0 {
		apiHandler = httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute)(apiHandler)
	}
	mux.Handle("/api/", apiHandler)

	s.httpServer.Handler = requestID(s.logRequests(mux))
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handle registers h on mux and records its latency under the pattern.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, s.instrument(pattern, h))
}

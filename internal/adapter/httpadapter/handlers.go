package httpadapter

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/couchcryptid/energy-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type indexData struct {
	Header dashboard.Header
	Layout *dashboard.Layout
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Header: dashboard.Header{
		Title:    dashboard.HeaderTitle,
		Subtitle: dashboard.HeaderSubtitle,
		Source:   dashboard.SourceNote,
	}}
	// The page polls /api/layout itself while the dataset is still loading.
	if l, err := s.dashboard.Layout(r.Context()); err == nil {
		data.Layout = l
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		s.logger.Error("render index", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.dashboard.Layout(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, l)
}

type countriesResponse struct {
	Options []dashboard.Option `json:"options"`
	Value   string             `json:"value"`
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	opts, err := s.dashboard.CountryOptions(strings.TrimSpace(r.URL.Query().Get("continent")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, countriesResponse{Options: opts, Value: dashboard.DefaultCountry(opts)})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	name, png := strings.CutSuffix(raw, ".png")

	id, err := dashboard.ParseFigureID(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sel, err := s.selection(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if png {
		var buf bytes.Buffer
		if err := s.dashboard.RenderPNG(r.Context(), &buf, id, sel); err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = buf.WriteTo(w)
		return
	}

	fig, err := s.dashboard.Figure(r.Context(), id, sel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, fig)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state, err := s.dashboard.Update(r.Context(), sel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, state)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	recs, err := s.dashboard.Records(sel)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteRecords(&buf, excel.DefaultSheet, recs); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="generation.xlsx"`)
	_, _ = buf.WriteTo(w)
}

// selection parses the filter query parameters on top of the default
// selection.
func (s *Server) selection(r *http.Request) (domain.Selection, error) {
	fallback, err := s.dashboard.DefaultSelection()
	if err != nil {
		return domain.Selection{}, err
	}
	return dashboard.ParseSelection(r.URL.Query(), fallback)
}

// fail maps err to a status code and writes a JSON error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, dashboard.ErrInvalidSelection),
		errors.Is(err, dashboard.ErrUnknownFigure):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, errorResponse{Error: msg})
}

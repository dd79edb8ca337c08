// Package httpapi exposes the submission pipeline over HTTP. It is the
// transport the invitation frontend talks to: session lifecycle, field
// edits, submission and the result notice, plus schema and health
// endpoints and Prometheus metrics.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdvornichenko/birthday/internal/logging"
	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/form"
	"github.com/kdvornichenko/birthday/pkg/session"
)

// Server holds the handler dependencies.
type Server struct {
	manager *session.Manager
	version string
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithVersion sets the version string reported by /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the submission API. Metrics are
// served from /metrics off the given gatherer; pass
// prometheus.DefaultGatherer unless a test needs isolation.
func NewHandler(manager *session.Manager, gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	server := &Server{
		manager: manager,
		version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.getHealth)
	r.Get("/info", server.getInfo)
	r.Get("/schema", server.getSchema)
	r.Post("/sessions", server.startSession)
	r.Get("/sessions/{sessionID}", server.getSession)
	r.Put("/sessions/{sessionID}/fields/{fieldID}", server.setField)
	r.Post("/sessions/{sessionID}/submit", server.submit)
	r.Post("/sessions/{sessionID}/dismiss", server.dismiss)
	r.Delete("/sessions/{sessionID}", server.deleteSession)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSubmissionInFlight):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, form.ErrInputTooLarge),
		errors.Is(err, form.ErrInvalidUTF8):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "invite-api",
		"version": s.version,
		"lang":    s.manager.Schema().Lang,
	})
}

// schemaView is the field catalog served to the frontend.
type schemaView struct {
	Lang   string      `json:"lang"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Label     string       `json:"label"`
	Required  bool         `json:"required"`
	Exclusive string       `json:"exclusive,omitempty"`
	Options   []optionView `json:"options,omitempty"`
}

type optionView struct {
	Value   string `json:"value"`
	Text    string `json:"text"`
	Default bool   `json:"default,omitempty"`
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	sc := s.manager.Schema()
	view := schemaView{Lang: sc.Lang}
	for _, f := range sc.Fields {
		fv := fieldView{
			ID:        f.ID,
			Kind:      string(f.Kind),
			Label:     f.Label,
			Required:  f.Required,
			Exclusive: f.Exclusive,
		}
		for _, o := range f.Options {
			fv.Options = append(fv.Options, optionView{Value: o.Value, Text: o.Text, Default: o.Default})
		}
		view.Fields = append(view.Fields, fv)
	}
	s.writeJSON(w, http.StatusOK, view)
}

// sessionView is the per-session state served to the frontend. Disabled
// and Declining are derived from the answers on every render, never
// stored.
type sessionView struct {
	ID        string                  `json:"id"`
	Answers   domain.Answers          `json:"answers"`
	Declining bool                    `json:"declining"`
	Disabled  []string                `json:"disabled,omitempty"`
	InFlight  bool                    `json:"in_flight"`
	Notice    domain.Notice           `json:"notice"`
	Problems  domain.ValidationResult `json:"problems,omitempty"`
	CreatedAt string                  `json:"created_at"`
	UpdatedAt string                  `json:"updated_at"`
}

func (s *Server) sessionView(resp *domain.Response) sessionView {
	sc := s.manager.Schema()
	return sessionView{
		ID:        resp.ID,
		Answers:   resp.Answers,
		Declining: form.Declining(sc, resp.Answers),
		Disabled:  form.DisabledFields(sc, resp.Answers),
		InFlight:  s.manager.InFlight(resp.ID),
		Notice:    resp.Notice,
		CreatedAt: resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.Start(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, s.sessionView(resp))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionView(resp))
}

// setFieldRequest is the body of a field edit.
type setFieldRequest struct {
	Value string `json:"value"`
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	var body setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.manager.SetField(r.Context(),
		chi.URLParam(r, "sessionID"), chi.URLParam(r, "fieldID"), body.Value)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionView(resp))
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	result, err := s.manager.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	view := s.sessionView(result.Response)
	view.Problems = result.Problems

	switch {
	case len(result.Problems) > 0:
		s.writeJSON(w, http.StatusUnprocessableEntity, view)
	case result.Response.Notice.Status == domain.NoticeFailed:
		s.writeJSON(w, http.StatusBadGateway, view)
	default:
		s.writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.Dismiss(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionView(resp))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

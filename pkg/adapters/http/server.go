// Package http exposes the Inquira service over a JSON REST API: workflow
// CRUD, interactive runs, compilation and batch rule evaluation.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mbarros/inquira"
	"github.com/mbarros/inquira/internal/logging"
	presentation "github.com/mbarros/inquira/internal/presentation/graph"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// Server routes HTTP requests to an inquira.Service.
type Server struct {
	svc    *inquira.Service
	logger *slog.Logger

	registry      *prometheus.Registry
	runsStarted   prometheus.Counter
	runsFinished  prometheus.Counter
	answersTotal  prometheus.Counter
	requestsTotal *prometheus.CounterVec
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the service. Metrics live on a
// per-handler registry so multiple handlers can coexist in one process.
func NewHandler(svc *inquira.Service, opts ...Option) http.Handler {
	s := &Server{
		svc:      svc,
		logger:   logging.NewNop(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	factory := promauto.With(s.registry)
	s.runsStarted = factory.NewCounter(prometheus.CounterOpts{
		Name: "inquira_runs_started_total",
		Help: "Interactive runs started.",
	})
	s.runsFinished = factory.NewCounter(prometheus.CounterOpts{
		Name: "inquira_runs_finished_total",
		Help: "Interactive runs finished.",
	})
	s.answersTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "inquira_answers_total",
		Help: "Answers recorded across all runs.",
	})
	s.requestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "inquira_http_requests_total",
		Help: "HTTP requests by route and status class.",
	}, []string{"route", "status"})

	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.listWorkflows)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", s.saveWorkflow)
			r.Get("/", s.getWorkflow)
			r.Delete("/", s.deleteWorkflow)
			r.Get("/mermaid", s.getMermaid)
			r.Post("/compile", s.compileWorkflow)
		})
	})

	r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.startRun)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getRun)
			r.Post("/answer", s.answer)
			r.Post("/back", s.back)
			r.Post("/restart", s.restart)
			r.Post("/finish", s.finish)
		})
	})

	r.Post("/evaluate", s.evaluate)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// countRequests labels request counts by route pattern and status class.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.requestsTotal.WithLabelValues(route, fmt.Sprintf("%dxx", rec.status/100)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "inquira-http",
		"version": strings.TrimSpace(inquira.Version),
	})
}

type saveWorkflowRequest struct {
	Graph    domain.GraphModel `json:"graph"`
	FormName string            `json:"formName,omitempty"`
}

func (s *Server) saveWorkflow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body saveWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.svc.SaveWorkflow(r.Context(), name, body.Graph, body.FormName); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.svc.Workflows(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if snaps == nil {
		snaps = []domain.WorkflowSnapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Workflow(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteWorkflow(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteWorkflow(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getMermaid(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Workflow(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, presentation.GenerateMermaid(snap.Graph, nil))
}

func (s *Server) compileWorkflow(w http.ResponseWriter, r *http.Request) {
	var base forms.FormDefinition
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&base); err != nil {
			s.writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
			return
		}
	}
	form, err := s.svc.Compile(r.Context(), chi.URLParam(r, "name"), base)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

type startRunRequest struct {
	Workflow string `json:"workflow,omitempty"`
}

func (s *Server) startRun(w http.ResponseWriter, r *http.Request) {
	var body startRunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
			return
		}
	}
	run, err := s.svc.StartRun(r.Context(), body.Workflow)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.runsStarted.Inc()
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.svc.Run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

type answerRequest struct {
	Answer any `json:"answer"`
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	run, err := s.svc.Answer(r.Context(), chi.URLParam(r, "id"), body.Answer)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.answersTotal.Inc()
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) back(w http.ResponseWriter, r *http.Request) {
	run, err := s.svc.Back(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	run, err := s.svc.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Finish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.runsFinished.Inc()
	writeJSON(w, http.StatusOK, resp)
}

type evaluateRequest struct {
	Form    forms.FormDefinition `json:"form"`
	Answers map[string]any       `json:"answers"`
}

type evaluateResponse struct {
	Score   float64            `json:"score"`
	Actions []forms.RuleAction `json:"actions"`
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	score, actions := s.svc.Evaluate(body.Form, body.Answers)
	if actions == nil {
		actions = []forms.RuleAction{}
	}
	writeJSON(w, http.StatusOK, evaluateResponse{Score: score, Actions: actions})
}

// writeDomainError maps domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound), errors.Is(err, domain.ErrRunNotFound):
		s.writeError(w, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrAnswerRequired), errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNoQuestions):
		s.writeError(w, err, http.StatusBadRequest)
	case errors.Is(err, domain.ErrRunCompleted):
		s.writeError(w, err, http.StatusConflict)
	default:
		s.writeError(w, err, http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error, status int) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "error", err, "status", status)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

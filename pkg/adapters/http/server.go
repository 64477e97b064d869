package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// Server exposes machines and runs over HTTP.
type Server struct {
	Runner  *runner.Runner
	Streams *StreamManager
	Logger  *slog.Logger
	Version string

	metrics http.Handler
}

// Option configures the HTTP server.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithVersion sets the version reported by GET /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// RunRequest is the body of POST /machines/{name}/runs.
// Inputs, when set, runs a batch and the response is a list of records.
type RunRequest struct {
	Input    string   `json:"input"`
	Inputs   []string `json:"inputs,omitempty"`
	MaxSteps int      `json:"max_steps,omitempty"`
}

// MachineSummary is one entry of GET /machines.
type MachineSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tapes       int    `json:"tapes"`
	Transitions int    `json:"transitions"`
	Error       string `json:"error,omitempty"`
}

// NewHandler creates the HTTP handler for r.
func NewHandler(r *runner.Runner, opts ...Option) http.Handler {
	s := &Server{
		Runner:  r,
		Streams: NewStreamManager(),
		Version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	mux := chi.NewRouter()
	mux.Get("/health", s.GetHealth)
	mux.Get("/events", s.SubscribeEvents)
	mux.Route("/machines", func(mux chi.Router) {
		mux.Get("/", s.ListMachines)
		mux.Get("/{name}", s.GetMachine)
		mux.Get("/{name}/graph", s.GetGraph)
		mux.Post("/{name}/runs", s.CreateRun)
	})
	mux.Route("/runs", func(mux chi.Router) {
		mux.Get("/", s.ListRuns)
		mux.Get("/{id}", s.GetRun)
		mux.Delete("/{id}", s.DeleteRun)
	})
	if s.metrics != nil {
		mux.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return enableCORS(mux)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

// ListMachines handles GET /machines. Definitions that fail to load or compile are
// listed with their error.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Runner.Loader.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]MachineSummary, 0, len(names))
	for _, name := range names {
		summary := MachineSummary{Name: name}
		def, err := s.Runner.Loader.Load(r.Context(), name)
		if err != nil {
			summary.Error = err.Error()
			out = append(out, summary)
			continue
		}
		summary.Description = def.Description
		summary.Tapes = def.Tapes
		summary.Transitions = len(def.Transitions)
		if _, err := s.Runner.Machine(r.Context(), name); err != nil {
			summary.Error = err.Error()
		}
		out = append(out, summary)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	def, err := s.Runner.Loader.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// GetGraph handles GET /machines/{name}/graph, answering with a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	m, err := s.Runner.Machine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(m, nil))
}

// CreateRun handles POST /machines/{name}/runs.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateRun: invalid request body", "error", err)
		return
	}
	if body.MaxSteps < 0 {
		s.writeError(w, fmt.Errorf("%w: %d", domain.ErrInvalidStepBound, body.MaxSteps))
		return
	}

	if len(body.Inputs) > 0 {
		records, err := s.Runner.RunBatch(r.Context(), name, body.Inputs, body.MaxSteps)
		if err != nil {
			s.writeError(w, err)
			return
		}
		for _, rec := range records {
			s.Streams.Broadcast(rec)
		}
		s.writeJSON(w, http.StatusCreated, records)
		return
	}

	rec, err := s.Runner.Run(r.Context(), name, body.Input, body.MaxSteps)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Broadcast(rec)
	s.writeJSON(w, http.StatusCreated, rec)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store == nil {
		http.Error(w, "run persistence is disabled", http.StatusNotImplemented)
		return
	}
	ids, err := s.Runner.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	sort.Strings(ids)
	s.writeJSON(w, http.StatusOK, ids)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store == nil {
		http.Error(w, "run persistence is disabled", http.StatusNotImplemented)
		return
	}
	rec, err := s.Runner.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store == nil {
		http.Error(w, "run persistence is disabled", http.StatusNotImplemented)
		return
	}
	if err := s.Runner.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStepBound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDefinition),
		errors.Is(err, domain.ErrUnmatchingSizes),
		errors.Is(err, domain.ErrIndeterminancy),
		errors.Is(err, domain.ErrTapeCount),
		errors.Is(err, domain.ErrTransitionSizes),
		errors.Is(err, domain.ErrUnknownDirection),
		errors.Is(err, domain.ErrInvalidSymbol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

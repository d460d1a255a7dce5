package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quantafold/hybrid-core/internal/driver"
	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/internal/resolve"
	"github.com/quantafold/hybrid-core/internal/store"
	"github.com/quantafold/hybrid-core/pkg/config"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

// Server exposes the driver over a JSON HTTP API: component listing and
// synchronous run submission with recorded history.
type Server struct {
	driver *driver.Driver
	runs   store.Store
	log    *slog.Logger
	router *mux.Router
}

// New creates a server over a driver and a run store.
func New(d *driver.Driver, runs store.Store, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Default
	}
	s := &Server{driver: d, runs: runs, log: log}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/components", s.handleComponents).Methods(http.MethodGet)
	api.HandleFunc("/runs", s.handleCreateRun).Methods(http.MethodPost)
	api.HandleFunc("/runs", s.handleListRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods(http.MethodGet)
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	roleFilter := r.URL.Query().Get("role")
	components := map[string][]string{}
	for _, role := range registry.Roles() {
		if roleFilter != "" && roleFilter != string(role) {
			continue
		}
		components[string(role)] = s.driver.Registry().List(role)
	}
	if roleFilter != "" && !registry.Role(roleFilter).Valid() {
		writeError(w, http.StatusBadRequest, "unknown role: "+roleFilter)
		return
	}
	writeJSON(w, http.StatusOK, components)
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	raw, err := config.ParseYAML(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	execution, err := s.driver.Run(r.Context(), raw, nil, true)
	if err != nil {
		s.recordFailure(r, id, raw, err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	record := store.Record{
		ID:        id,
		Algorithm: execution.Algorithm,
		Status:    store.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	if data, err := json.Marshal(execution.Resolved); err == nil {
		record.Config = data
	}
	if data, err := json.Marshal(execution.Result); err == nil {
		record.Result = data
	}
	if err := s.runs.SaveRun(r.Context(), record); err != nil {
		s.log.Warn("failed to record run", "run_id", id, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"algorithm": execution.Algorithm,
		"result":    execution.Result,
	})
}

func (s *Server) recordFailure(r *http.Request, id string, raw config.RawConfiguration, runErr error) {
	record := store.Record{
		ID:        id,
		Status:    store.StatusFailed,
		CreatedAt: time.Now().UTC(),
		Error:     runErr.Error(),
	}
	if data, err := json.Marshal(raw); err == nil {
		record.Config = data
	}
	if err := s.runs.SaveRun(r.Context(), record); err != nil {
		s.log.Warn("failed to record failed run", "run_id", id, "error", err)
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	records, err := s.runs.ListRuns(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, ok, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "run not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// statusFor maps configuration and selection failures to 400 and everything
// else to 500.
func statusFor(err error) int {
	var confErr *resolve.ConfigurationError
	var notFound *registry.ComponentNotFoundError
	var cycle *resolve.DependencyCycleError
	var unresolved *resolve.DependencyResolutionError
	var instantiation *factory.InstantiationError
	switch {
	case errors.As(err, &confErr),
		errors.As(err, &notFound),
		errors.As(err, &cycle),
		errors.As(err, &unresolved),
		errors.As(err, &instantiation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

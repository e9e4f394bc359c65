// Package httpapi exposes the skill registry over HTTP alongside health and
// metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/kma-weather-skills/internal/skill"
)

// SkillRunner is the consumer-side view of the skill runner.
type SkillRunner interface {
	Skills() []skill.Skill
	Skill(name string) (skill.Skill, bool)
	Ready() bool
	Run(ctx context.Context, name string, p skill.Params) (skill.Result, error)
}

// Server exposes the skill API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	runner     SkillRunner
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, runner SkillRunner, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/skills", s.handleListSkills)
	mux.HandleFunc("GET /v1/skills/{name}", s.handleGetSkill)
	mux.HandleFunc("POST /v1/skills/{name}/run", s.handleRunSkill)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.runner.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleListSkills(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"skills": s.runner.Skills()})
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sk, ok := s.runner.Skill(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown skill: "+name)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

func (s *Server) handleRunSkill(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var params skill.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), name, params)
	if err != nil {
		s.writeRunError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeRunError maps runner errors to status codes. Upstream failures come
// back as 502 since the service itself is fine.
func (s *Server) writeRunError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, skill.ErrUnknownSkill):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, skill.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, skill.ErrNewsDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("skill run failed", "skill", name, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

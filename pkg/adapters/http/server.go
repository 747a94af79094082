// Package http exposes the resolution engine as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdict-dev/verdict/internal/presentation/graph"
	"github.com/verdict-dev/verdict/pkg/domain"
)

// Engine defines the interface for the Verdict resolution core.
type Engine interface {
	ResolveValues(values map[string]any) (domain.Outcome, error)
	States() []domain.StateInfo
}

// Server wires the engine into HTTP handlers.
type Server struct {
	Engine Engine
}

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	Metadata map[string]any `json:"metadata"`
}

// ResolveResponse is the body of a resolution reply. Error is set for
// ambiguous outcomes alongside the outcome itself.
type ResolveResponse struct {
	domain.Outcome
	Error string `json:"error,omitempty"`
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}

	r := chi.NewRouter()
	r.Post("/resolve", server.Resolve)
	r.Get("/states", server.States)
	r.Get("/graph", server.Graph)
	r.Handle("/metrics", promhttp.Handler())
	return enableCORS(r)
}

// Resolve handles the POST /resolve request.
//
// Ambiguity is a semantic verdict, not a transport failure: it replies
// 409 with the outcome so clients can inspect the contenders. Metadata
// that cannot be interpreted replies 422.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Resolve: invalid request body", "error", err)
		return
	}

	outcome, err := s.Engine.ResolveValues(body.Metadata)
	resp := ResolveResponse{Outcome: outcome}

	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		var ambErr *domain.AmbiguousStateError
		if errors.As(err, &ambErr) {
			status = http.StatusConflict
		} else {
			status = http.StatusUnprocessableEntity
			slog.Warn("Resolve failed", "error", err)
		}
	}
	writeJSON(w, status, resp)
}

// States handles the GET /states request.
func (s *Server) States(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.States())
}

// Graph handles the GET /graph request, replying with Mermaid text.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(s.Engine.States(), nil)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

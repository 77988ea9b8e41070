// Package chi is the HTTP transport: one search endpoint plus health
// and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/domain"
	logpkg "github.com/kunstwinkel/zoeker/internal/logger"
	searchuc "github.com/kunstwinkel/zoeker/internal/search"
)

// Searcher is the query engine contract consumed by the transport.
type Searcher interface {
	Search(ctx context.Context, query string) (*searchuc.Response, error)
}

// Pinger checks a dependency's connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers.
type Server struct {
	search        Searcher
	store         Pinger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(search Searcher, store Pinger, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		store:  store,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrEmbeddingRateLimited, http.StatusTooManyRequests),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusBadGateway),
	}
	return s
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

type searchRequest struct {
	Query string `json:"query"`
}

// handleSearch handles POST /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDomainError walks the handler chain; unmatched errors become
// 500. The request-scoped logger carries the request ID.
func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}

	logpkg.FromContextOr(ctx, s.logger).Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// sentinelHandler maps one domain sentinel to an HTTP status.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

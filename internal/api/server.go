package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"barcode_lookup/internal/domain"
)

type Lookuper interface {
	HandleScannedBarcode(ctx context.Context, raw string) *domain.LookupOutcome
}

type Promoter interface {
	PromoteByID(ctx context.Context, cacheID, userID uuid.UUID, overrides *domain.PromotionOverrides) (uuid.UUID, error)
}

type CacheReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CacheRow, error)
}

// Pinger reports backend readiness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	router   chi.Router
	lookup   Lookuper
	promoter Promoter
	cache    CacheReader
	db       Pinger
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewServer wires the HTTP routes. db may be nil, in which case the health
// endpoint always reports ok.
func NewServer(
	lookup Lookuper,
	promoter Promoter,
	cache CacheReader,
	db Pinger,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		lookup:   lookup,
		promoter: promoter,
		cache:    cache,
		db:       db,
		gatherer: gatherer,
		logger:   logger.With("component", "api"),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/barcodes/{code}", s.handleLookup)
		r.Post("/cache/{id}/promote", s.handlePromote)
		r.Get("/cache/{id}/nutrition", s.handleNutrition)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"dur", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
